// Package models contains data types and constants for the OpenRouter API.
package models

// Endpoints for the OpenRouter API
const (
	EndpointBase            = "https://openrouter.ai/api/v1"
	EndpointChatCompletions = "https://openrouter.ai/api/v1/chat/completions"
)

// Identification defaults sent with every request. OpenRouter uses these
// to attribute traffic to an application.
const (
	DefaultReferrer = "http://localhost:8501"
	DefaultAppTitle = "AI Chat Assistant"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Model represents an OpenRouter model with its routing identifier
type Model struct {
	ID          string
	Name        string
	Description string
	Free        bool
}

// Available models
var (
	// ModelGPT35Turbo is the default paid model
	ModelGPT35Turbo = Model{
		ID:          "openai/gpt-3.5-turbo",
		Name:        "GPT-3.5 Turbo",
		Description: "OpenAI GPT-3.5 Turbo via OpenRouter",
	}

	ModelLlama270B = Model{
		ID:          "meta-llama/llama-2-70b-chat",
		Name:        "Meta Llama 2 70B",
		Description: "Meta Llama 2 70B chat model",
		Free:        true,
	}

	ModelMistral7B = Model{
		ID:          "mistralai/mistral-7b-instruct",
		Name:        "Mistral 7B",
		Description: "Mistral 7B instruct model",
		Free:        true,
	}

	ModelAuto = Model{
		ID:          "openrouter/auto",
		Name:        "OpenRouter Auto",
		Description: "Automatic model routing by OpenRouter",
		Free:        true,
	}

	// DefaultModel is used when no model is configured
	DefaultModel = ModelGPT35Turbo
)

// AllModels returns the known model catalogue
func AllModels() []Model {
	return []Model{ModelGPT35Turbo, ModelLlama270B, ModelMistral7B, ModelAuto}
}

// ModelFromID returns a Model by its routing identifier. Unknown identifiers
// are passed through verbatim so users can select any model OpenRouter hosts.
func ModelFromID(id string) Model {
	for _, m := range AllModels() {
		if m.ID == id {
			return m
		}
	}
	return Model{ID: id, Name: id}
}

// DefaultHeaders returns the fixed headers for chat-completion requests.
// Authorization is set separately by the client.
func DefaultHeaders(referrer, appTitle string) map[string]string {
	if referrer == "" {
		referrer = DefaultReferrer
	}
	if appTitle == "" {
		appTitle = DefaultAppTitle
	}
	return map[string]string{
		"Content-Type": "application/json",
		"HTTP-Referer": referrer,
		"X-Title":      appTitle,
	}
}
