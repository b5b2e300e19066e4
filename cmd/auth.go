package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/pkg/genius"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Save a Genius API access token",
	Long: `Store a Genius client access token for the metadata commands.

1. Create an API client at https://genius.com/api-clients
2. Generate a client access token on that page
3. Paste it here; it is checked with a test search and saved to your config file

Fetching lyrics by URL does not need a token.`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("Genius Authentication")
	fmt.Println("=====================")
	fmt.Println()
	fmt.Println("You can create an API client at: https://genius.com/api-clients")
	fmt.Println()

	if cfg.Genius.AccessToken != "" {
		fmt.Printf("Found existing access token: %s\n", maskToken(cfg.Genius.AccessToken))
		fmt.Print("\nReplace it? [y/N]: ")
		response, err := reader.ReadString('\n')
		if err != nil {
			response = "n"
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			return nil
		}
	}

	fmt.Print("Enter your client access token: ")
	token, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read access token: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("access token is required")
	}

	fmt.Println("\nVerifying token...")
	cfg.Genius.AccessToken = token
	if err := verifyToken(cfg); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath := config.GetConfigDir()
	fmt.Printf("\n✓ Token verified\n")
	fmt.Printf("✓ Access token saved to %s/config.yaml\n", configPath)
	fmt.Println("\nTry 'verses search <query>' or 'verses now'.")

	return nil
}

// verifyToken runs a cheap search with the configured token
func verifyToken(cfg *config.Config) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = client.Search().Songs(ctx, "Genius")
	var apiErr *genius.Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return fmt.Errorf("token rejected by Genius: %s", apiErr.Message)
	}
	if err != nil {
		return fmt.Errorf("failed to verify token: %w", err)
	}
	return nil
}

// maskToken shows only the last four characters of a token
func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
