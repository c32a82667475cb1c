package auth

import (
	"context"

	"github.com/mwicaksana/construction-management/internal/permissions"
)

type ctxKey string

const contextUserKey ctxKey = "user"

// User is the authenticated principal attached to request contexts. The
// capability set is the persisted bitmask snapshot loaded at token
// validation time; permission checks receive it explicitly and never
// reach back into session state.
type User struct {
	ID            int64                     `json:"id"`
	Email         string                    `json:"email"`
	Name          string                    `json:"name"`
	IsActive      bool                      `json:"is_active"`
	CapabilitySet permissions.CapabilitySet `json:"capability_set"`
}

func (u *User) Has(name string) bool {
	return permissions.Has(u.CapabilitySet, name)
}

func (u *User) HasAny(names []string) bool {
	return permissions.HasAny(u.CapabilitySet, names)
}

func (u *User) HasAll(names []string) bool {
	return permissions.HasAll(u.CapabilitySet, names)
}

func (u *User) IsAdmin() bool {
	return permissions.IsAdmin(u.CapabilitySet)
}

func (u *User) IsManagement() bool {
	return permissions.IsManagement(u.CapabilitySet)
}

func (u *User) RoleLabel() string {
	return permissions.EstimateRoleLabel(u.CapabilitySet)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextUserKey, u)
}
