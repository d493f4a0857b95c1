package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/routerchat/internal/api"
	"github.com/diogo/routerchat/internal/chat"
	"github.com/diogo/routerchat/internal/config"
	"github.com/diogo/routerchat/internal/models"
	"github.com/diogo/routerchat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with an OpenRouter model.

The chat keeps conversation context within the session and sends the
most recent exchanges with every request. Type 'exit', 'quit', or press
Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	// No key, no session. The error carries the remedy.
	apiKey, err := config.LoadAPIKey()
	if err != nil {
		fmt.Println(tui.FormatError(err))
		return err
	}

	modelID := getModel()

	client, err := api.NewClient(apiKey,
		api.WithModel(models.ModelFromID(modelID)),
		api.WithIdentification(cfg.Referrer, cfg.AppTitle),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	session := chat.NewSession(modelID)

	return tui.RunChat(client, session, cfg, config.MaskKey(apiKey))
}
