package project

import (
	"time"
)

// Project statuses.
const (
	StatusPlanning  = "planning"
	StatusActive    = "active"
	StatusOnHold    = "on_hold"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var statusTransitions = map[string][]string{
	StatusPlanning:  {StatusActive, StatusCancelled},
	StatusActive:    {StatusOnHold, StatusCompleted, StatusCancelled},
	StatusOnHold:    {StatusActive, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Project is a construction project. Budget and ActualCost are
// financial fields; list and detail payloads clear them for callers
// without the view-financial-data capability.
type Project struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	Code       string     `json:"code" gorm:"column:code;uniqueIndex;not null"`
	Name       string     `json:"name" gorm:"not null"`
	ClientName string     `json:"client_name" gorm:"column:client_name"`
	Status     string     `json:"status" gorm:"default:planning"`
	Budget     *int64     `json:"budget,omitempty" gorm:"column:budget"`
	ActualCost *int64     `json:"actual_cost,omitempty" gorm:"column:actual_cost"`
	StartDate  *time.Time `json:"start_date,omitempty" gorm:"column:start_date;type:date"`
	TargetDate *time.Time `json:"target_date,omitempty" gorm:"column:target_date;type:date"`
	CreatedBy  int64      `json:"created_by" gorm:"column:created_by"`
	CreatedAt  time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Project) TableName() string {
	return "projects"
}

// RedactFinancials returns a copy with the financial fields cleared.
// Part of the permissions.Redactor contract.
func (p *Project) RedactFinancials() *Project {
	clone := *p
	clone.Budget = nil
	clone.ActualCost = nil
	return &clone
}

func (p *Project) CanTransitionTo(status string) bool {
	for _, next := range statusTransitions[p.Status] {
		if next == status {
			return true
		}
	}
	return false
}
