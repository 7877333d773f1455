package domain

import "time"

// PinLength is the fixed length of a transaction pin.
const PinLength = 4

// TransactionPin authorizes transfers and withdrawals. It is created once
// per user and never changed afterwards.
type TransactionPin struct {
	ID        string
	UserID    string
	Pin       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidatePinFormat checks that a submitted pin has the expected shape.
func ValidatePinFormat(pin string) error {
	if len(pin) != PinLength {
		return ErrIncorrectPin
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return ErrIncorrectPin
		}
	}
	return nil
}
