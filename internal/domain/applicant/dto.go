package applicant

// SaveApplicationInput carries a partial form update. Only the sections
// present are written; absent sections are left untouched.
type SaveApplicationInput struct {
	PersonalInfo *PersonalInfo `json:"personalInfo"`
	Essays       *Essays       `json:"essays"`
	Misc         *Misc         `json:"misc"`
}

type DecisionInput struct {
	Decision string `json:"decision" binding:"required,oneof=accepted rejected waitlisted"`
}

type NoteInput struct {
	Content string `json:"content" binding:"required"`
}

type BatchReleaseInput struct {
	ApplicationIDs []uint `json:"application_ids" binding:"required,min=1"`
}

// ReleaseResult is the per-application outcome inside a batch release.
type ReleaseResult struct {
	ApplicationID uint
	Status        Status
	Err           error
}

// StatsDTO backs the admin dashboard counters.
type StatsDTO struct {
	Total       int64 `json:"total"`
	Draft       int64 `json:"draft"`
	Submitted   int64 `json:"submitted"`
	UnderReview int64 `json:"under_review"`
	Accepted    int64 `json:"accepted"`
	Rejected    int64 `json:"rejected"`
	Waitlisted  int64 `json:"waitlisted"`
	Enrolled    int64 `json:"enrolled"`
}
