package models

import "testing"

func TestModelFromID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		wantID   string
		wantName string
	}{
		{
			name:     "known model",
			id:       "openai/gpt-3.5-turbo",
			wantID:   "openai/gpt-3.5-turbo",
			wantName: "GPT-3.5 Turbo",
		},
		{
			name:     "free model",
			id:       "mistralai/mistral-7b-instruct",
			wantID:   "mistralai/mistral-7b-instruct",
			wantName: "Mistral 7B",
		},
		{
			name:     "unknown model passes through",
			id:       "anthropic/claude-3-haiku",
			wantID:   "anthropic/claude-3-haiku",
			wantName: "anthropic/claude-3-haiku",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ModelFromID(tt.id)
			if got.ID != tt.wantID {
				t.Errorf("ModelFromID(%q).ID = %q, want %q", tt.id, got.ID, tt.wantID)
			}
			if got.Name != tt.wantName {
				t.Errorf("ModelFromID(%q).Name = %q, want %q", tt.id, got.Name, tt.wantName)
			}
		})
	}
}

func TestAllModels(t *testing.T) {
	all := AllModels()
	if len(all) == 0 {
		t.Fatal("AllModels() returned empty list")
	}

	seen := map[string]bool{}
	for _, m := range all {
		if m.ID == "" {
			t.Errorf("model %q has empty ID", m.Name)
		}
		if seen[m.ID] {
			t.Errorf("duplicate model ID %q", m.ID)
		}
		seen[m.ID] = true
	}

	if !seen[DefaultModel.ID] {
		t.Errorf("default model %q not in catalogue", DefaultModel.ID)
	}
}

func TestDefaultHeaders(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		h := DefaultHeaders("", "")
		if h["Content-Type"] != "application/json" {
			t.Errorf("Content-Type = %q", h["Content-Type"])
		}
		if h["HTTP-Referer"] != DefaultReferrer {
			t.Errorf("HTTP-Referer = %q, want %q", h["HTTP-Referer"], DefaultReferrer)
		}
		if h["X-Title"] != DefaultAppTitle {
			t.Errorf("X-Title = %q, want %q", h["X-Title"], DefaultAppTitle)
		}
	})

	t.Run("custom identification", func(t *testing.T) {
		h := DefaultHeaders("https://example.com", "My App")
		if h["HTTP-Referer"] != "https://example.com" {
			t.Errorf("HTTP-Referer = %q", h["HTTP-Referer"])
		}
		if h["X-Title"] != "My App" {
			t.Errorf("X-Title = %q", h["X-Title"])
		}
	})
}
