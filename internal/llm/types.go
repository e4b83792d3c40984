package llm

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams holds parameters for chat completion requests.
type ChatParams struct {
	// Temperature controls the randomness of the output. Default is 0.7.
	Temperature float64

	// MaxTokens specifies the maximum number of tokens to generate.
	// If 0, a default of 2000 is applied.
	MaxTokens int

	// JSONMode requests a JSON object response from the provider.
	JSONMode bool
}
