package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sotopay/walletd/internal/adapter/http/dto"
	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/infrastructure/auth"
	"github.com/sotopay/walletd/internal/usecase"
)

type userServiceStub struct {
	registerFn     func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	authenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
}

func (s *userServiceStub) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *userServiceStub) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, email, password)
}

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", time.Hour)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	var captured usecase.RegisterInput
	handler := NewAuthHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			captured = input
			return &domain.User{
				ID:       "user-1",
				Email:    input.Email,
				WalletID: "wallet-1",
			}, nil
		},
	}, testJWTManager())

	body, _ := json.Marshal(dto.RegisterRequest{
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "ada@example.com",
		PhoneNumber: "+2348012345678",
		Password:    "Sup3rSecret",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Email != "ada@example.com" || captured.FirstName != "Ada" {
		t.Fatalf("unexpected input: %+v", captured)
	}

	var resp struct {
		Data dto.AuthResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("expected a session token")
	}
	if resp.Data.User == nil || resp.Data.User.WalletID != "wallet-1" {
		t.Fatalf("expected user with wallet, got %+v", resp.Data.User)
	}

	claims, err := testJWTManager().Verify(resp.Data.Token)
	if err != nil {
		t.Fatalf("token should verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected user-1 in claims, got %s", claims.UserID)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}, testJWTManager())

	body, _ := json.Marshal(dto.RegisterRequest{Email: "ada@example.com", Password: "Sup3rSecret"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			t.Fatal("Register should not be called for invalid payload")
			return nil, nil
		},
	}, testJWTManager())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("{invalid"))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{
		authenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			if email != "ada@example.com" || password != "Sup3rSecret" {
				return nil, domain.ErrUnauthorized
			}
			return &domain.User{ID: "user-1", Email: email}, nil
		},
	}, testJWTManager())

	body, _ := json.Marshal(dto.LoginRequest{Email: "ada@example.com", Password: "Sup3rSecret"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data dto.AuthResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("expected a session token")
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{
		authenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return nil, domain.ErrUnauthorized
		},
	}, testJWTManager())

	body, _ := json.Marshal(dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
