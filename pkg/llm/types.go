package llm

// Request is a single documentation generation request. It is built per
// submission and discarded once the call settles.
type Request struct {
	Input             string
	SystemInstruction string
	Config            GenerationConfig
}

// GenerationConfig carries the sampling parameters sent with every request.
type GenerationConfig struct {
	Temperature      float64
	TopP             float64
	TopK             int
	MaxOutputTokens  int
	ResponseMIMEType string
}

// DefaultGenerationConfig returns the fixed parameters of the prompt contract.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:      1,
		TopP:             0.95,
		TopK:             64,
		MaxOutputTokens:  32768,
		ResponseMIMEType: "text/plain",
	}
}
