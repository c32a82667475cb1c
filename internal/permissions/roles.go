package permissions

// RoleLabelCustom is returned when a capability set matches no
// template exactly.
const RoleLabelCustom = "custom"

// RoleTemplate is a named preset capability mask. Assigning a template
// copies the mask into the user row; the user keeps no link back to the
// template, so later grants and revokes simply flip bits.
type RoleTemplate struct {
	Name string
	Mask CapabilitySet
}

// RoleTemplates are the presets offered in user administration, ordered
// from most to least privileged.
var RoleTemplates = []RoleTemplate{
	{
		Name: "admin",
		Mask: CapabilitySet(AllFlags),
	},
	{
		Name: "general_manager",
		Mask: CapabilitySet(FlagViewProjects | FlagCreateProjects | FlagEditProjects |
			FlagViewFinancialData | FlagManageUsers | FlagViewReports),
	},
	{
		Name: "project_manager",
		Mask: CapabilitySet(FlagViewProjects | FlagCreateProjects | FlagEditProjects |
			FlagManageTasks | FlagManageScope | FlagViewFinancialData | FlagViewReports),
	},
	{
		Name: "architect",
		Mask: CapabilitySet(FlagViewProjects | FlagApproveShopDrawings | FlagApproveMaterialSpecs),
	},
	{
		Name: "field_supervisor",
		Mask: CapabilitySet(FlagViewProjects | FlagManageTasks | FlagManageScope),
	},
	{
		Name: "client",
		Mask: CapabilitySet(FlagViewProjects | FlagViewReports),
	},
}

// TemplateByName looks up a role template's mask by name.
func TemplateByName(name string) (CapabilitySet, bool) {
	for _, tpl := range RoleTemplates {
		if tpl.Name == name {
			return tpl.Mask, true
		}
	}
	return 0, false
}

// EstimateRoleLabel names the template whose mask equals the set
// exactly. Any deviation, extra bits included, is reported as custom:
// a label is a display hint, never an authorization input, and a wrong
// guess would mislead administrators about what a user can do.
func EstimateRoleLabel(set CapabilitySet) string {
	for _, tpl := range RoleTemplates {
		if tpl.Mask == set {
			return tpl.Name
		}
	}
	return RoleLabelCustom
}
