package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token    string `json:"token"`
	UID      uint   `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// BatchReleaseResponse aggregates the outcome of a batch decision release.
// Successes are committed independently; failures never roll them back.
type BatchReleaseResponse struct {
	Released int                 `json:"released"`
	Failed   int                 `json:"failed"`
	Results  []BatchReleaseEntry `json:"results"`
}

type BatchReleaseEntry struct {
	ApplicationID uint   `json:"application_id"`
	Status        string `json:"status,omitempty"`
	Error         string `json:"error,omitempty"`
}
