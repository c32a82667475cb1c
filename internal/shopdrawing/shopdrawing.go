package shopdrawing

import "time"

// Shop drawing statuses.
const (
	StatusPendingReview     = "pending_review"
	StatusApproved          = "approved"
	StatusRejected          = "rejected"
	StatusRevisionRequested = "revision_requested"
)

// Drawing is one entry of the shop drawing register. A drawing cycles
// between pending_review and revision_requested until a reviewer
// approves or rejects it; both of those are terminal.
type Drawing struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	ProjectID   int64      `json:"project_id" gorm:"column:project_id;not null;index"`
	DrawingNo   string     `json:"drawing_no" gorm:"column:drawing_no;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Discipline  string     `json:"discipline"`
	Revision    int        `json:"revision" gorm:"default:0"`
	Status      string     `json:"status" gorm:"default:pending_review"`
	SubmittedBy int64      `json:"submitted_by" gorm:"column:submitted_by"`
	ReviewedBy  *int64     `json:"reviewed_by,omitempty" gorm:"column:reviewed_by"`
	ReviewNote  *string    `json:"review_note,omitempty" gorm:"column:review_note"`
	SubmittedAt time.Time  `json:"submitted_at" gorm:"column:submitted_at;default:now()"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty" gorm:"column:reviewed_at"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Drawing) TableName() string {
	return "shop_drawings"
}

func (d *Drawing) CanBeReviewed() bool {
	return d.Status == StatusPendingReview
}

func (d *Drawing) CanBeResubmitted() bool {
	return d.Status == StatusRevisionRequested
}

func (d *Drawing) applyDecision(status string, reviewerID int64, note string) {
	now := time.Now()
	d.Status = status
	d.ReviewedBy = &reviewerID
	d.ReviewedAt = &now
	d.UpdatedAt = now
	if note != "" {
		d.ReviewNote = &note
	}
}

func (d *Drawing) Approve(reviewerID int64, note string) {
	d.applyDecision(StatusApproved, reviewerID, note)
}

func (d *Drawing) Reject(reviewerID int64, note string) {
	d.applyDecision(StatusRejected, reviewerID, note)
}

func (d *Drawing) RequestRevision(reviewerID int64, note string) {
	d.applyDecision(StatusRevisionRequested, reviewerID, note)
}

// Resubmit puts a revision-requested drawing back in the review queue
// with a bumped revision number.
func (d *Drawing) Resubmit() {
	now := time.Now()
	d.Revision++
	d.Status = StatusPendingReview
	d.ReviewedBy = nil
	d.ReviewedAt = nil
	d.ReviewNote = nil
	d.SubmittedAt = now
	d.UpdatedAt = now
}
