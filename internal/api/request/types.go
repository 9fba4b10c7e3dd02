package request

// ScoreUpdateRequest is the request body for applying a score delta.
// ScoreChange is a pointer so a missing field is distinguishable from an
// explicit zero.
type ScoreUpdateRequest struct {
	Username    string `json:"username"`
	ScoreChange *int64 `json:"score_change"`
}
