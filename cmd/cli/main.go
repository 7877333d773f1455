package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "walletd-cli",
		Short: "Walletd CLI tool",
		Long:  `A command line interface for interacting with the walletd API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the walletd API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated endpoints")

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Run: func(cmd *cobra.Command, args []string) {
			checkHealth()
		},
	}
	rootCmd.AddCommand(healthCmd)

	// Bank commands
	banksCmd := &cobra.Command{
		Use:   "banks",
		Short: "Bank directory operations",
	}

	banksListCmd := &cobra.Command{
		Use:   "list",
		Short: "List payout banks",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/banks/")
		},
	}

	banksResolveCmd := &cobra.Command{
		Use:   "resolve <account-number> <bank-code>",
		Short: "Resolve a bank account to its holder name",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			get(fmt.Sprintf("/api/v1/banks/verify?account_number=%s&bank_code=%s", args[0], args[1]))
		},
	}

	banksCmd.AddCommand(banksListCmd, banksResolveCmd)
	rootCmd.AddCommand(banksCmd)

	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Show your wallet balance",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/wallet/")
		},
	}
	rootCmd.AddCommand(walletCmd)

	// Transaction commands
	txCmd := &cobra.Command{
		Use:   "transactions",
		Short: "Transaction operations",
	}

	txVerifyCmd := &cobra.Command{
		Use:   "verify <reference>",
		Short: "Verify a transaction's provider-side status",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/transactions/verify/" + args[0])
		},
	}

	txListCmd := &cobra.Command{
		Use:   "list",
		Short: "List your transactions",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/transactions/")
		},
	}

	txCmd.AddCommand(txVerifyCmd, txListCmd)
	rootCmd.AddCommand(txCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func checkHealth() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/ready")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Health check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Println("Health check PASSED")
}

func get(path string) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty map[string]any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return
	}

	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}
