// Package commands provides CLI commands for routerchat.
package commands

import (
	"testing"

	"github.com/diogo/routerchat/internal/models"
)

func TestRootCommand_Help(t *testing.T) {
	cmd := rootCmd
	if cmd.Use != "routerchat [prompt]" {
		t.Errorf("Expected use 'routerchat [prompt]', got %s", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestRootCommand_Args(t *testing.T) {
	// Argument validation (cobra.MaximumNArgs(1)) is handled by Cobra;
	// just check it is configured
	if rootCmd.Args == nil {
		t.Error("Args validation should be configured")
	}
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	// Model flag is a PersistentFlag (inherited by subcommands)
	t.Run("model flag (persistent)", func(t *testing.T) {
		flag := rootCmd.PersistentFlags().Lookup("model")
		if flag == nil {
			t.Error("PersistentFlag model not found")
		}
	})

	localFlags := []string{"output", "file", "version"}
	for _, flagName := range localFlags {
		t.Run(flagName+" flag", func(t *testing.T) {
			flag := rootCmd.Flags().Lookup(flagName)
			if flag == nil {
				t.Errorf("Flag %s not found", flagName)
			}
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	expectedSubcommands := []string{"chat", "config", "auth", "models"}

	for _, sub := range expectedSubcommands {
		t.Run("subcommand "+sub, func(t *testing.T) {
			found := false
			for _, cmd := range rootCmd.Commands() {
				if cmd.Name() == sub {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Subcommand %s not found", sub)
			}
		})
	}
}

func TestGetModel(t *testing.T) {
	t.Run("flag takes precedence", func(t *testing.T) {
		old := modelFlag
		modelFlag = "openrouter/auto"
		defer func() { modelFlag = old }()

		if got := getModel(); got != "openrouter/auto" {
			t.Errorf("getModel() = %q, want %q", got, "openrouter/auto")
		}
	})

	t.Run("falls back to default", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		old := modelFlag
		modelFlag = ""
		defer func() { modelFlag = old }()

		if got := getModel(); got != models.DefaultModel.ID {
			t.Errorf("getModel() = %q, want %q", got, models.DefaultModel.ID)
		}
	})
}

func TestRunQuery_EmptyPrompt(t *testing.T) {
	if err := runQuery("   ", true); err == nil {
		t.Error("expected error for empty prompt")
	}
}

func TestRunQuery_MissingCredential(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENROUTER_API_KEY", "")

	if err := runQuery("hello", true); err == nil {
		t.Error("expected error when no API key is configured")
	}
}
