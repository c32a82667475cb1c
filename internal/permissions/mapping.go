package permissions

// nameToFlag resolves the permission names used in route gates, stored
// policies and API payloads to capability bits. Several names alias the
// same bit; older clients still send the long forms.
var nameToFlag = map[string]Flag{
	"view_projects":   FlagViewProjects,
	"create_projects": FlagCreateProjects,
	"edit_projects":   FlagEditProjects,
	"delete_projects": FlagDeleteProjects,

	"manage_tasks": FlagManageTasks,
	"edit_tasks":   FlagManageTasks,
	"assign_tasks": FlagManageTasks,

	"manage_scope": FlagManageScope,
	"edit_scope":   FlagManageScope,

	"view_financial_data": FlagViewFinancialData,
	"view_project_costs":  FlagViewFinancialData,
	"view_costs":          FlagViewFinancialData,

	"approve_shop_drawings": FlagApproveShopDrawings,
	"approve_drawings":      FlagApproveShopDrawings,

	"approve_material_specs": FlagApproveMaterialSpecs,
	"approve_specs":          FlagApproveMaterialSpecs,

	"manage_users": FlagManageUsers,

	"view_reports":   FlagViewReports,
	"view_dashboard": FlagViewReports,

	"manage_notifications": FlagManageNotifications,

	"admin": FlagAdmin,
}

// FlagFor resolves a permission name to its capability bit.
func FlagFor(name string) (Flag, bool) {
	f, ok := nameToFlag[name]
	return f, ok
}

// KnownName reports whether the permission name resolves to a bit.
func KnownName(name string) bool {
	_, ok := nameToFlag[name]
	return ok
}

// KnownNames returns every resolvable permission name, for the
// admin-facing permission catalog endpoint.
func KnownNames() []string {
	names := make([]string, 0, len(nameToFlag))
	for name := range nameToFlag {
		names = append(names, name)
	}
	return names
}
