package domain

// GenerationRequest carries the inputs for one commit-message generation.
type GenerationRequest struct {
	CodeDiff        string `json:"code_diff"`
	UserInstruction string `json:"user_instruction"`
}

// GenerationResponse is the assembled commit message returned to the caller.
type GenerationResponse struct {
	Response string `json:"response"`
}
