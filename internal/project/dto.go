package project

import "time"

type CreateProjectDTO struct {
	Code       string     `json:"code" validate:"required,max=32"`
	Name       string     `json:"name" validate:"required,max=200"`
	ClientName string     `json:"client_name" validate:"max=200"`
	Budget     *int64     `json:"budget,omitempty" validate:"omitempty,min=0"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	TargetDate *time.Time `json:"target_date,omitempty"`
}

type UpdateProjectDTO struct {
	Name       *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	ClientName *string    `json:"client_name,omitempty" validate:"omitempty,max=200"`
	Budget     *int64     `json:"budget,omitempty" validate:"omitempty,min=0"`
	ActualCost *int64     `json:"actual_cost,omitempty" validate:"omitempty,min=0"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	TargetDate *time.Time `json:"target_date,omitempty"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=planning active on_hold completed cancelled"`
}
