package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/routerchat/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth [api-key]",
	Short: "Store or inspect the OpenRouter API key",
	Long: `Store an OpenRouter API key for use by routerchat.

The key is written to the credentials file with owner-only permissions.
Without an argument, shows the current key status. Keys created at
https://openrouter.ai/keys start with "sk-or-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runAuthStatus()
		}
		return runAuthSet(args[0])
	},
}

func runAuthSet(key string) error {
	if err := config.SaveAPIKey(key); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	credPath, _ := config.GetCredentialsPath()
	okStyle := lipgloss.NewStyle().Foreground(colorSuccess)
	fmt.Println(okStyle.Render("✓ API key stored"))
	fmt.Printf("  %s\n", credPath)
	return nil
}

func runAuthStatus() error {
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)
	okStyle := lipgloss.NewStyle().Foreground(colorSuccess)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))

	key, err := config.LoadAPIKey()
	if err != nil {
		fmt.Println(errStyle.Render("✗ No API key configured"))
		fmt.Println(dimStyle.Render("  Set " + config.EnvAPIKey + " or run 'routerchat auth <key>'"))
		fmt.Println(dimStyle.Render("  Create a key at https://openrouter.ai/keys"))
		return err
	}

	fmt.Println(okStyle.Render("✓ API key configured: " + config.MaskKey(key)))
	credPath, _ := config.GetCredentialsPath()
	fmt.Println(dimStyle.Render("  File: " + credPath))
	fmt.Println(dimStyle.Render("  Env:  " + config.EnvAPIKey))
	return nil
}
