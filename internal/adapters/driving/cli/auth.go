package cli

import (
	"bufio"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driven/evidenceapi"
)

var authToken string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the backend bearer token",
	Long: `Store, inspect, and remove the bearer token sent to the evidence backend.

JWT tokens are checked locally for expiry so an expired token fails fast
instead of after a round trip.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token",
	Long: `Store a bearer token. Without --token the token is read from stdin
without echo.`,
	RunE: runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored token",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	RunE:  runAuthLogout,
}

func init() {
	authLoginCmd.Flags().StringVar(&authToken, "token", "", "bearer token")
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	token := authToken
	if token == "" {
		cmd.Print("Token: ")
		in := cmd.InOrStdin()
		token = readPassword(in, bufio.NewReader(in))
		cmd.Println()
	}
	if token == "" {
		return errors.New("no token given")
	}

	info := evidenceapi.InspectToken(token)
	if info.Expired(time.Now()) {
		return fmt.Errorf("token expired at %s", info.ExpiresAt.Format(time.RFC3339))
	}

	if err := settingsService.SetAPI("", token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	cmd.Println("Token stored.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	cmd.Printf("Backend: %s\n", valueOrUnset(settings.API.BaseURL))
	if settings.API.Token == "" {
		cmd.Println("Token: (not set)")
		return nil
	}
	cmd.Printf("Token: %s\n", maskAPIKey(settings.API.Token))

	info := evidenceapi.InspectToken(settings.API.Token)
	if !info.IsJWT {
		cmd.Println("Type: opaque")
		return nil
	}
	cmd.Println("Type: JWT")
	if info.Subject != "" {
		cmd.Printf("Subject: %s\n", info.Subject)
	}
	if !info.ExpiresAt.IsZero() {
		state := "valid"
		if info.Expired(time.Now()) {
			state = "EXPIRED"
		}
		cmd.Printf("Expires: %s (%s)\n", info.ExpiresAt.Format(time.RFC3339), state)
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.ClearToken(); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	cmd.Println("Token removed.")
	return nil
}
