package interfaces

import "context"

// Message represents a single message in a generation conversation.
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// ContentRequest is a provider-agnostic content generation request.
type ContentRequest struct {
	Messages          []Message
	Model             string
	Temperature       float32
	MaxTokens         int
	SystemInstruction string
}

// ContentResponse is a provider-agnostic content generation response.
type ContentResponse struct {
	Text     string
	Provider string
	Model    string
}

// GenerationService defines the contract for AI text generation. A call is
// failed when the transport errors, the context expires, or the returned
// text is empty; implementations never return empty Text with a nil error.
type GenerationService interface {
	GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error)
	Close() error
}
