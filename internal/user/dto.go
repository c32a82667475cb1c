package user

// ProfileDTO is the current-user payload. The capability booleans are
// derived server side so clients never interpret the raw bitmask.
type ProfileDTO struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	RoleLabel     string `json:"role_label"`
	CapabilitySet uint64 `json:"capability_set"`

	CanCreateProjects    bool `json:"can_create_projects"`
	CanViewFinancialData bool `json:"can_view_financial_data"`
	CanApproveDrawings   bool `json:"can_approve_drawings"`
	CanApproveSpecs      bool `json:"can_approve_specs"`
	CanManageUsers       bool `json:"can_manage_users"`
	IsAdmin              bool `json:"is_admin"`
}

type CreateUserDTO struct {
	Email        string `json:"email" validate:"required,email"`
	Name         string `json:"name" validate:"required,max=120"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	RoleTemplate string `json:"role_template" validate:"required"`
}

type AssignRoleDTO struct {
	RoleTemplate string `json:"role_template" validate:"required"`
}

type PermissionDTO struct {
	Permission string `json:"permission" validate:"required"`
}

type SetActiveDTO struct {
	IsActive bool `json:"is_active"`
}
