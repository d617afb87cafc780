package model

// ScoreReport is the immutable result of a finished real-test session.
type ScoreReport struct {
	TotalCorrect  int     `json:"total_correct"`
	WeightedScore int     `json:"weighted_score"`
	Percentage    float64 `json:"percentage"`
	CLBLevel      int     `json:"clb_level"`
	CEFRBand      string  `json:"cefr_band"`
	// NotReached marks a weighted score below the lowest banding range:
	// the candidate is reported at the lowest CLB level without having
	// reached its threshold. This is scoring-domain behavior, not an error.
	NotReached bool `json:"not_reached"`
}
