package models

// Status is the recruiting pipeline state of a candidate.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusHold       Status = "hold"
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
)

// AllStatuses lists the valid statuses in display order.
var AllStatuses = []Status{StatusInProgress, StatusHold, StatusAccepted, StatusRejected}

// NormalizeStatus maps a server-provided status to one of the four known
// values. Older records may omit the field entirely, in which case they are
// treated as in-progress.
func NormalizeStatus(s Status) Status {
	if IsValidStatus(s) {
		return s
	}
	return StatusInProgress
}

// IsValidStatus reports whether s is one of the four known statuses.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusInProgress, StatusHold, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// WorkExperience is a single entry in a candidate's work history.
type WorkExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description"`
}

// Candidate represents one parsed resume as stored by the HireAI backend.
// The client only ever reads candidates, patches their status locally, or
// removes them after a confirmed delete.
type Candidate struct {
	ID              string           `json:"_id"`
	FullName        string           `json:"fullName"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	Location        string           `json:"location,omitempty"`
	LinkedinProfile string           `json:"linkedinProfile,omitempty"`
	CurrentTitle    string           `json:"currentTitle,omitempty"`
	Experience      string           `json:"experience,omitempty"`
	Education       string           `json:"education,omitempty"`
	Certifications  string           `json:"certifications,omitempty"`
	RoleApplied     string           `json:"roleApplied,omitempty"`
	Summary         string           `json:"summary,omitempty"`
	WorkExperience  []WorkExperience `json:"workExperience,omitempty"`
	TechnicalSkills []string         `json:"technicalSkills,omitempty"`
	SoftSkills      []string         `json:"softSkills,omitempty"`
	CreatedAt       string           `json:"createdAt,omitempty"`
	Status          Status           `json:"status,omitempty"`
}

// Role is one entry of the interview role/skill catalog.
type Role struct {
	ID     string   `json:"id"`
	Role   string   `json:"role"`
	Skills []string `json:"skills"`
}

// GeneratedQuestion is a single interview question returned by the backend.
// Questions are immutable once received.
type GeneratedQuestion struct {
	Question       string   `json:"question"`
	Type           string   `json:"type"`
	Complexity     string   `json:"complexity"`
	ExpectedAnswer string   `json:"expectedAnswer"`
	Skills         []string `json:"skills,omitempty"`
}

// GenerationRequest is the configuration submitted to the question generator.
// Role and at least one skill are required before submission.
type GenerationRequest struct {
	Role       string   `validate:"required"`
	Skills     []string `validate:"required,min=1"`
	Complexity int      `validate:"min=0,max=100"`
	Count      int      `validate:"min=1,max=20"`
	FilePath   string
}

// Pagination describes the server-side paging of a candidate listing.
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// CandidateListResponse is the envelope of the paged listing endpoint.
type CandidateListResponse struct {
	Data       []Candidate `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// CandidateSearchResponse is the envelope of the keyword search endpoint.
type CandidateSearchResponse struct {
	Data []Candidate `json:"data"`
}

// DeleteResponse is the envelope of the delete endpoint.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RoleCatalogResponse is the envelope of the role/skill catalog endpoint.
type RoleCatalogResponse struct {
	Data []Role `json:"data"`
}

// GenerateResponse is the envelope of the question generation endpoint.
type GenerateResponse struct {
	Data struct {
		Questions []GeneratedQuestion `json:"questions"`
	} `json:"data"`
}
