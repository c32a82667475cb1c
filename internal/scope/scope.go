package scope

import "time"

// Scope item statuses.
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in_progress"
	StatusInstalled  = "installed"
	StatusVerified   = "verified"
)

// Item is one line of a project's scope list. Unit and total prices are
// financial fields and subject to redaction.
type Item struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	ProjectID   int64     `json:"project_id" gorm:"column:project_id;not null;index"`
	ItemNo      string    `json:"item_no" gorm:"column:item_no;not null"`
	Description string    `json:"description" gorm:"not null"`
	Quantity    float64   `json:"quantity" gorm:"not null"`
	Unit        string    `json:"unit" gorm:"not null"`
	UnitPrice   *int64    `json:"unit_price,omitempty" gorm:"column:unit_price"`
	TotalPrice  *int64    `json:"total_price,omitempty" gorm:"column:total_price"`
	Status      string    `json:"status" gorm:"default:planned"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Item) TableName() string {
	return "scope_items"
}

// RedactFinancials returns a copy with price fields cleared. Part of
// the permissions.Redactor contract.
func (i *Item) RedactFinancials() *Item {
	clone := *i
	clone.UnitPrice = nil
	clone.TotalPrice = nil
	return &clone
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPlanned, StatusInProgress, StatusInstalled, StatusVerified:
		return true
	}
	return false
}
