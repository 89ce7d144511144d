package executions

// RunSubmissionRequest represents a request to execute code against a challenge
type RunSubmissionRequest struct {
	ChallengeID string `json:"challengeId"`
	UserID      string `json:"userId,omitempty"`
	Code        string `json:"code"`
	Language    string `json:"language"`
	Stdin       string `json:"stdin,omitempty"`
}
