package response

// ScoreUpdateResponse is the response for a successful score delta
type ScoreUpdateResponse struct {
	Success     bool   `json:"success"`
	Username    string `json:"username"`
	NewScore    int64  `json:"new_score"`
	ScoreChange int64  `json:"score_change"`
}
