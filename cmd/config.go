package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/dt-pm-tools/confluence-md/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure Confluence and Gemini connection settings",
	Long:  `Interactively set up the Confluence URL, username, API token, and Gemini API key. Settings are saved to ~/.confluence-md.yaml. Environment variables override the file at runtime.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		// Load existing config for defaults
		existing, _ := config.Load(cfgFile)

		// URL
		defaultURL := existing.URL
		if defaultURL != "" {
			fmt.Printf("Confluence URL [%s]: ", defaultURL)
		} else {
			fmt.Print("Confluence URL (e.g., https://your-org.atlassian.net/wiki): ")
		}
		url, _ := reader.ReadString('\n')
		url = strings.TrimSpace(url)
		if url == "" {
			url = defaultURL
		}

		// Username
		defaultUsername := existing.Username
		if defaultUsername != "" {
			fmt.Printf("Username [%s]: ", defaultUsername)
		} else {
			fmt.Print("Username: ")
		}
		username, _ := reader.ReadString('\n')
		username = strings.TrimSpace(username)
		if username == "" {
			username = defaultUsername
		}

		// Token (masked input)
		fmt.Print("Confluence API token (input hidden): ")
		tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // newline after hidden input
		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}
		token := strings.TrimSpace(string(tokenBytes))
		if token == "" {
			token = existing.Token
		}

		// Gemini key (masked input, optional)
		fmt.Print("Gemini API key (input hidden, optional): ")
		keyBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading Gemini key: %w", err)
		}
		geminiKey := strings.TrimSpace(string(keyBytes))
		if geminiKey == "" {
			geminiKey = existing.GeminiKey
		}

		cfg := config.Config{
			URL:       url,
			Username:  username,
			Token:     token,
			GeminiKey: geminiKey,
			GeminiURL: existing.GeminiURL,
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}

		if err := config.Save(cfg, path); err != nil {
			return err
		}

		fmt.Printf("Configuration saved to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
