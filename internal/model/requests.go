package model

// SetFilterRequest is the payload for changing the practice filter.
// Weight 0 selects all weights.
type SetFilterRequest struct {
	Weight int    `json:"weight" binding:"min=0"`
	Mode   string `json:"mode" binding:"required,oneof=normal attention unanswered"`
}

// NavigateRequest moves the practice cursor.
type NavigateRequest struct {
	Direction string `json:"direction" binding:"required,oneof=next prev"`
}

// AnswerRequest is the payload for submitting an answer in either mode.
type AnswerRequest struct {
	Alternative int `json:"alternative" binding:"min=0"`
}

// StartTestRequest is the payload for requesting a new real test.
// DiscardPrevious is the explicit consent required when a finished
// session's results are still viewable.
type StartTestRequest struct {
	DiscardPrevious bool `json:"discard_previous"`
}

// JumpRequest moves the session cursor to an arbitrary 1-based position.
type JumpRequest struct {
	Position int `json:"position" binding:"required,min=1"`
}

// FinishTestRequest is the payload for finishing a real test.
// AcknowledgeUnanswered must be true to finish with gaps; the gaps
// score as incorrect.
type FinishTestRequest struct {
	AcknowledgeUnanswered bool `json:"acknowledge_unanswered"`
}
