package materialspec

type SubmitSpecDTO struct {
	SpecNo       string `json:"spec_no" validate:"required,max=64"`
	Name         string `json:"name" validate:"required,max=200"`
	Manufacturer string `json:"manufacturer" validate:"max=120"`
	Model        string `json:"model" validate:"max=120"`
	UnitCost     *int64 `json:"unit_cost,omitempty" validate:"omitempty,min=0"`
}

type ReviewDTO struct {
	Note string `json:"note" validate:"max=1000"`
}
