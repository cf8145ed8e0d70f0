package promptrefiner

// RefineRequest asks for an enhanced video generation prompt.
type RefineRequest struct {
	Prompt   string `json:"prompt"`
	Feedback string `json:"feedback,omitempty"` // e.g. "make it more dramatic"
	Style    string `json:"style,omitempty"`
}

// RefineResponse carries the refined prompt. Source is "gemini" when the LLM
// produced it and "passthrough" when the refiner is unavailable.
type RefineResponse struct {
	RefinedPrompt string `json:"refined_prompt"`
	Source        string `json:"source"`
	Error         string `json:"error,omitempty"`
}
