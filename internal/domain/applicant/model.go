package applicant

import (
	"time"

	"gorm.io/datatypes"
)

// PersonalInfo is the identity and study-details section of the form.
type PersonalInfo struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone,omitempty"`
	DateOfBirth  string   `json:"dateOfBirth,omitempty"`
	Nationality  string   `json:"nationality,omitempty"`
	Gender       string   `json:"gender,omitempty"`
	University   string   `json:"university"`
	College      string   `json:"college,omitempty"`
	Department   string   `json:"department,omitempty"`
	Programme    string   `json:"programme,omitempty"`
	YearOfStudy  string   `json:"yearOfStudy,omitempty"`
	Subjects     []string `json:"subjects,omitempty"`
	OtherSubject string   `json:"otherSubject,omitempty"`
}

type Essays struct {
	Motivation     string `json:"motivation,omitempty"`
	Experience     string `json:"experience,omitempty"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}

type Misc struct {
	Availability        []string `json:"availability,omitempty"`
	DietaryRestrictions string   `json:"dietaryRestrictions,omitempty"`
	ReferralSource      string   `json:"referralSource,omitempty"`
	AgreedToTerms       bool     `json:"agreedToTerms"`
}

// Note is an append-only administrator comment. Notes are never edited
// or deleted once written.
type Note struct {
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

// Application is the single per-user record holding form answers, the
// public status and administrative metadata. InternalDecision is the
// admin-only draft verdict; it has no effect on what the applicant sees
// until released.
type Application struct {
	ID                 uint                              `gorm:"primaryKey;column:a_id" json:"id"`
	UserID             uint                              `gorm:"uniqueIndex;not null" json:"user_id"`
	Status             Status                            `gorm:"type:application_status;default:'draft';not null" json:"status"`
	PersonalInfo       datatypes.JSONType[PersonalInfo]  `json:"personalInfo"`
	Essays             datatypes.JSONType[Essays]        `json:"essays"`
	Misc               datatypes.JSONType[Misc]          `json:"misc"`
	InternalDecision   *Decision                         `gorm:"type:internal_decision" json:"internalDecision,omitempty"`
	Notes              datatypes.JSONSlice[Note]         `json:"notes,omitempty"`
	CreatedAt          time.Time                         `gorm:"column:create_at;autoCreateTime" json:"createdAt"`
	SubmittedAt        *time.Time                        `json:"submittedAt,omitempty"`
	LastUpdatedAt      time.Time                         `gorm:"column:update_at;autoUpdateTime" json:"lastUpdatedAt"`
	DecisionReleasedAt *time.Time                        `json:"decisionReleasedAt,omitempty"`
}

// OwnerView strips the fields the applicant must never see: the
// unreleased internal decision and the admin notes.
func (a Application) OwnerView() Application {
	a.InternalDecision = nil
	a.Notes = nil
	return a
}

// ApplicantName joins the name fields for emails and the offer letter.
func (a *Application) ApplicantName() string {
	info := a.PersonalInfo.Data()
	name := info.FirstName
	if info.LastName != "" {
		if name != "" {
			name += " "
		}
		name += info.LastName
	}
	if name == "" {
		return "Applicant"
	}
	return name
}

// Email returns the address notifications are sent to.
func (a *Application) Email() string {
	return a.PersonalInfo.Data().Email
}
