// Package permissions implements the capability bitmask that gates
// every privileged operation. A user's capability set is a single
// uint64 column; each capability occupies one bit, so membership checks
// are a mask-and-compare and role templates are plain integer
// constants.
package permissions

// Flag is a single capability bit.
type Flag uint64

// Capability bits. The positions are persisted in the users table, so
// they are append-only: never reorder or reuse a bit.
const (
	FlagViewProjects       Flag = 1 << iota // 1
	FlagCreateProjects                      // 2
	FlagEditProjects                        // 4
	FlagDeleteProjects                      // 8
	FlagManageTasks                         // 16
	FlagManageScope                         // 32
	FlagViewFinancialData                   // 64
	FlagApproveShopDrawings                 // 128
	FlagApproveMaterialSpecs                // 256
	FlagManageUsers                         // 512
	FlagViewReports                         // 1024
	FlagManageNotifications                 // 2048
	FlagAdmin                               // 4096
)

// AllFlags is every defined capability bit set at once.
const AllFlags = FlagViewProjects | FlagCreateProjects | FlagEditProjects |
	FlagDeleteProjects | FlagManageTasks | FlagManageScope |
	FlagViewFinancialData | FlagApproveShopDrawings | FlagApproveMaterialSpecs |
	FlagManageUsers | FlagViewReports | FlagManageNotifications | FlagAdmin

// CapabilitySet is a user's full set of capability bits.
type CapabilitySet uint64

func (c CapabilitySet) HasFlag(f Flag) bool {
	return uint64(c)&uint64(f) == uint64(f)
}

// With returns a copy of the set with the flag granted.
func (c CapabilitySet) With(f Flag) CapabilitySet {
	return c | CapabilitySet(f)
}

// Without returns a copy of the set with the flag revoked.
func (c CapabilitySet) Without(f Flag) CapabilitySet {
	return c &^ CapabilitySet(f)
}
