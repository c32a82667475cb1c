package materialspec

import "time"

// Material spec statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Spec is a material specification submitted for approval. Unlike shop
// drawings there is no revision loop: a rejected spec is resubmitted as
// a new entry.
type Spec struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	ProjectID    int64      `json:"project_id" gorm:"column:project_id;not null;index"`
	SpecNo       string     `json:"spec_no" gorm:"column:spec_no;not null"`
	Name         string     `json:"name" gorm:"not null"`
	Manufacturer string     `json:"manufacturer"`
	Model        string     `json:"model"`
	UnitCost     *int64     `json:"unit_cost,omitempty" gorm:"column:unit_cost"`
	Status       string     `json:"status" gorm:"default:pending"`
	SubmittedBy  int64      `json:"submitted_by" gorm:"column:submitted_by"`
	ReviewedBy   *int64     `json:"reviewed_by,omitempty" gorm:"column:reviewed_by"`
	ReviewNote   *string    `json:"review_note,omitempty" gorm:"column:review_note"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty" gorm:"column:reviewed_at"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Spec) TableName() string {
	return "material_specs"
}

func (s *Spec) CanBeReviewed() bool {
	return s.Status == StatusPending
}

func (s *Spec) applyDecision(status string, reviewerID int64, note string) {
	now := time.Now()
	s.Status = status
	s.ReviewedBy = &reviewerID
	s.ReviewedAt = &now
	s.UpdatedAt = now
	if note != "" {
		s.ReviewNote = &note
	}
}

func (s *Spec) Approve(reviewerID int64, note string) {
	s.applyDecision(StatusApproved, reviewerID, note)
}

func (s *Spec) Reject(reviewerID int64, note string) {
	s.applyDecision(StatusRejected, reviewerID, note)
}

// RedactFinancials returns a copy with the unit cost cleared. Part of
// the permissions.Redactor contract.
func (s *Spec) RedactFinancials() *Spec {
	clone := *s
	clone.UnitCost = nil
	return &clone
}
