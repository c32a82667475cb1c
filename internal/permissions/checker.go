package permissions

import "log/slog"

// Has reports whether the set grants the named permission. Unknown
// names fail closed: the check logs and denies rather than guessing at
// a bit.
func Has(set CapabilitySet, name string) bool {
	flag, ok := nameToFlag[name]
	if !ok {
		slog.Warn("permission check against unknown name", "permission", name)
		return false
	}
	return set.HasFlag(flag)
}

// HasAny reports whether the set grants at least one of the named
// permissions. An empty list grants nothing.
func HasAny(set CapabilitySet, names []string) bool {
	for _, name := range names {
		if Has(set, name) {
			return true
		}
	}
	return false
}

// HasAll reports whether the set grants every named permission. An
// empty list is vacuously satisfied.
func HasAll(set CapabilitySet, names []string) bool {
	for _, name := range names {
		if !Has(set, name) {
			return false
		}
	}
	return true
}

func IsAdmin(set CapabilitySet) bool {
	return set.HasFlag(FlagAdmin)
}

func CanViewFinancialData(set CapabilitySet) bool {
	return set.HasFlag(FlagViewFinancialData) || IsAdmin(set)
}

func CanApproveDrawings(set CapabilitySet) bool {
	return set.HasFlag(FlagApproveShopDrawings) || IsAdmin(set)
}

func CanApproveSpecs(set CapabilitySet) bool {
	return set.HasFlag(FlagApproveMaterialSpecs) || IsAdmin(set)
}

func CanManageUsers(set CapabilitySet) bool {
	return set.HasFlag(FlagManageUsers) || IsAdmin(set)
}

// IsManagement reports whether the set carries the full management
// bundle: user administration, financial visibility and reports.
func IsManagement(set CapabilitySet) bool {
	if IsAdmin(set) {
		return true
	}
	management := FlagManageUsers | FlagViewFinancialData | FlagViewReports
	return set.HasFlag(management)
}

// Checker is the capability-check surface services depend on, so tests
// can substitute a fixed-answer implementation.
type Checker interface {
	Has(set CapabilitySet, name string) bool
	IsAdmin(set CapabilitySet) bool
	CanViewFinancialData(set CapabilitySet) bool
	CanApproveDrawings(set CapabilitySet) bool
	CanApproveSpecs(set CapabilitySet) bool
	CanManageUsers(set CapabilitySet) bool
}

// DefaultChecker delegates to the package-level check functions.
type DefaultChecker struct{}

func NewChecker() Checker { return DefaultChecker{} }

func (DefaultChecker) Has(set CapabilitySet, name string) bool { return Has(set, name) }
func (DefaultChecker) IsAdmin(set CapabilitySet) bool          { return IsAdmin(set) }
func (DefaultChecker) CanViewFinancialData(set CapabilitySet) bool {
	return CanViewFinancialData(set)
}
func (DefaultChecker) CanApproveDrawings(set CapabilitySet) bool { return CanApproveDrawings(set) }
func (DefaultChecker) CanApproveSpecs(set CapabilitySet) bool    { return CanApproveSpecs(set) }
func (DefaultChecker) CanManageUsers(set CapabilitySet) bool     { return CanManageUsers(set) }
