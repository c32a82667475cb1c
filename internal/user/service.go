package user

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/permissions"
)

type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	List(limit, offset int) ([]*User, error)
	Update(u *User) error
}

// SessionInvalidator drops a user's cached session so capability
// changes take effect on the next request instead of at session expiry.
type SessionInvalidator interface {
	InvalidateUser(ctx context.Context, userID int64) error
}

type Service struct {
	repo       Repository
	sessions   SessionInvalidator
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, sessions SessionInvalidator, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Profile builds the current-user payload with derived capability
// booleans.
func (s *Service) Profile(id int64) (*ProfileDTO, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	set := u.CapabilitySet
	return &ProfileDTO{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		RoleLabel:     permissions.EstimateRoleLabel(set),
		CapabilitySet: uint64(set),

		CanCreateProjects:    permissions.Has(set, "create_projects"),
		CanViewFinancialData: permissions.CanViewFinancialData(set),
		CanApproveDrawings:   permissions.CanApproveDrawings(set),
		CanApproveSpecs:      permissions.CanApproveSpecs(set),
		CanManageUsers:       permissions.CanManageUsers(set),
		IsAdmin:              permissions.IsAdmin(set),
	}, nil
}

func (s *Service) ListUsers(limit, offset int) ([]*User, error) {
	users, err := s.repo.List(limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return users, nil
}

func (s *Service) GetUser(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

// CreateUser provisions an account seeded from a role template.
func (s *Service) CreateUser(dto CreateUserDTO) (*User, error) {
	mask, ok := permissions.TemplateByName(dto.RoleTemplate)
	if !ok {
		return nil, internal.ErrUnknownRoleTemplate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	u := &User{
		Email:         dto.Email,
		Name:          dto.Name,
		PasswordHash:  string(hash),
		IsActive:      true,
		CapabilitySet: mask,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "role_template", dto.RoleTemplate)
	return u, nil
}

// AssignRoleTemplate replaces the user's capability set with the
// template mask and drops their cached session.
func (s *Service) AssignRoleTemplate(ctx context.Context, id int64, templateName string) (*User, error) {
	mask, ok := permissions.TemplateByName(templateName)
	if !ok {
		return nil, internal.ErrUnknownRoleTemplate
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	u.CapabilitySet = mask
	u.UpdatedAt = time.Now()
	if err := s.repo.Update(u); err != nil {
		return nil, internal.NewInternalError("failed to assign role", err)
	}

	s.invalidateSession(ctx, id)
	s.logger.Info("role template assigned", "user_id", id, "role_template", templateName)
	return u, nil
}

// GrantPermission flips a single capability bit on.
func (s *Service) GrantPermission(ctx context.Context, id int64, permission string) (*User, error) {
	return s.flipPermission(ctx, id, permission, permissions.CapabilitySet.With)
}

// RevokePermission flips a single capability bit off.
func (s *Service) RevokePermission(ctx context.Context, id int64, permission string) (*User, error) {
	return s.flipPermission(ctx, id, permission, permissions.CapabilitySet.Without)
}

func (s *Service) flipPermission(ctx context.Context, id int64, permission string, apply func(permissions.CapabilitySet, permissions.Flag) permissions.CapabilitySet) (*User, error) {
	flag, ok := permissions.FlagFor(permission)
	if !ok {
		return nil, internal.ErrUnknownPermission
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	u.CapabilitySet = apply(u.CapabilitySet, flag)
	u.UpdatedAt = time.Now()
	if err := s.repo.Update(u); err != nil {
		return nil, internal.NewInternalError("failed to update permissions", err)
	}

	s.invalidateSession(ctx, id)
	s.logger.Info("permission updated",
		"user_id", id,
		"permission", permission,
		"capability_set", uint64(u.CapabilitySet))
	return u, nil
}

// SetActive enables or disables the account. Deactivation also drops
// the session so the user is locked out immediately.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	u.IsActive = active
	u.UpdatedAt = time.Now()
	if err := s.repo.Update(u); err != nil {
		return nil, internal.NewInternalError("failed to update user", err)
	}

	if !active {
		s.invalidateSession(ctx, id)
	}
	s.logger.Info("user active flag changed", "user_id", id, "is_active", active)
	return u, nil
}

func (s *Service) invalidateSession(ctx context.Context, id int64) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.InvalidateUser(ctx, id); err != nil {
		s.logger.Warn("failed to invalidate session", "error", err, "user_id", id)
	}
}

// RoleTemplateInfo describes one preset for the admin UI.
type RoleTemplateInfo struct {
	Name          string `json:"name"`
	CapabilitySet uint64 `json:"capability_set"`
}

// RoleTemplates lists the available presets.
func (s *Service) RoleTemplates() []RoleTemplateInfo {
	infos := make([]RoleTemplateInfo, 0, len(permissions.RoleTemplates))
	for _, tpl := range permissions.RoleTemplates {
		infos = append(infos, RoleTemplateInfo{
			Name:          tpl.Name,
			CapabilitySet: uint64(tpl.Mask),
		})
	}
	return infos
}
