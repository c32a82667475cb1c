package scope

type CreateItemDTO struct {
	ItemNo      string  `json:"item_no" validate:"required,max=32"`
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	Unit        string  `json:"unit" validate:"required,max=16"`
	UnitPrice   *int64  `json:"unit_price,omitempty" validate:"omitempty,min=0"`
}

type UpdateItemDTO struct {
	Description *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	Quantity    *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Unit        *string  `json:"unit,omitempty" validate:"omitempty,max=16"`
	UnitPrice   *int64   `json:"unit_price,omitempty" validate:"omitempty,min=0"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=planned in_progress installed verified"`
}
