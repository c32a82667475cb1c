package notification

import "time"

// Notification kinds.
const (
	KindDrawingReviewed = "drawing_reviewed"
	KindSpecReviewed    = "spec_reviewed"
	KindTaskAssigned    = "task_assigned"
)

// Notification is an in-app message for one user. ReadAt doubles as
// the read flag.
type Notification struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	UserID    int64      `json:"user_id" gorm:"column:user_id;not null;index"`
	Kind      string     `json:"kind" gorm:"not null"`
	Title     string     `json:"title" gorm:"not null"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty" gorm:"column:read_at"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

func (n *Notification) MarkRead() {
	now := time.Now()
	n.ReadAt = &now
}
