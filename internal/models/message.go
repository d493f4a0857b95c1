package models

// Message is a single {role, content} entry in the context window sent to
// the API. Token counts are session bookkeeping and are never sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the JSON body of a chat-completion request
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// ChatReply is the parsed result of a successful chat-completion response
type ChatReply struct {
	// Text is choices[0].message.content
	Text string
	// TotalTokens is usage.total_tokens, 0 when the usage field is absent
	TotalTokens int
	// Model echoes the model id reported by the server, if any
	Model string
}
