package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/routerchat/internal/models"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available models",
	Long: `List the model catalogue known to routerchat.

Any OpenRouter model ID can be passed with --model; the catalogue only
covers the models offered in the interactive selector.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModels()
	},
}

func runModels() error {
	titleStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	idStyle := lipgloss.NewStyle().Foreground(colorText)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)
	freeStyle := lipgloss.NewStyle().Foreground(colorSuccess)

	fmt.Println(titleStyle.Render("Available models"))
	fmt.Println()

	for _, m := range models.AllModels() {
		line := "  " + idStyle.Render(fmt.Sprintf("%-32s", m.ID))
		if m.Free {
			line += freeStyle.Render(" [free]")
		}
		if m.ID == models.DefaultModel.ID {
			line += dimStyle.Render(" (default)")
		}
		fmt.Println(line)
		fmt.Println(dimStyle.Render("    " + m.Description))
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("Keys:    https://openrouter.ai/keys"))
	fmt.Println(dimStyle.Render("Credits: https://openrouter.ai/settings/credits"))
	fmt.Println(dimStyle.Render("Docs:    https://openrouter.ai/docs"))
	return nil
}
