package permissions_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mwicaksana/construction-management/internal/permissions"
)

func TestPermissions(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permissions Suite")
}

var _ = Describe("Capability flags", func() {
	It("keeps the persisted bit positions stable", func() {
		Expect(uint64(permissions.FlagViewProjects)).To(Equal(uint64(1)))
		Expect(uint64(permissions.FlagCreateProjects)).To(Equal(uint64(2)))
		Expect(uint64(permissions.FlagViewFinancialData)).To(Equal(uint64(64)))
		Expect(uint64(permissions.FlagAdmin)).To(Equal(uint64(4096)))
	})

	It("assigns every flag a distinct power of two", func() {
		flags := []permissions.Flag{
			permissions.FlagViewProjects,
			permissions.FlagCreateProjects,
			permissions.FlagEditProjects,
			permissions.FlagDeleteProjects,
			permissions.FlagManageTasks,
			permissions.FlagManageScope,
			permissions.FlagViewFinancialData,
			permissions.FlagApproveShopDrawings,
			permissions.FlagApproveMaterialSpecs,
			permissions.FlagManageUsers,
			permissions.FlagViewReports,
			permissions.FlagManageNotifications,
			permissions.FlagAdmin,
		}
		var union uint64
		for _, f := range flags {
			v := uint64(f)
			Expect(v & (v - 1)).To(BeZero(), "flag %d is not a power of two", v)
			Expect(union & v).To(BeZero(), "flag %d overlaps another flag", v)
			union |= v
		}
		Expect(union).To(Equal(uint64(permissions.AllFlags)))
	})

	It("grants and revokes individual bits", func() {
		set := permissions.CapabilitySet(0)
		set = set.With(permissions.FlagManageTasks)
		Expect(set.HasFlag(permissions.FlagManageTasks)).To(BeTrue())

		set = set.Without(permissions.FlagManageTasks)
		Expect(set.HasFlag(permissions.FlagManageTasks)).To(BeFalse())
		Expect(set).To(Equal(permissions.CapabilitySet(0)))
	})
})

var _ = Describe("Permission checks", func() {
	// create_projects (2) plus view_financial_data (64).
	set := permissions.CapabilitySet(66)

	Describe("Has", func() {
		It("resolves granted names", func() {
			Expect(permissions.Has(set, "create_projects")).To(BeTrue())
			Expect(permissions.Has(set, "view_financial_data")).To(BeTrue())
		})

		It("denies names whose bit is absent", func() {
			Expect(permissions.Has(set, "delete_projects")).To(BeFalse())
			Expect(permissions.Has(set, "admin")).To(BeFalse())
		})

		It("fails closed on unknown names", func() {
			Expect(permissions.Has(set, "launch_rockets")).To(BeFalse())
			Expect(permissions.Has(set, "")).To(BeFalse())
		})

		It("resolves aliases to the same bit", func() {
			Expect(permissions.Has(set, "view_project_costs")).To(BeTrue())
			Expect(permissions.Has(set, "view_costs")).To(BeTrue())
		})
	})

	Describe("HasAny", func() {
		It("passes when at least one name is granted", func() {
			Expect(permissions.HasAny(set, []string{"delete_projects", "create_projects"})).To(BeTrue())
		})

		It("denies when no name is granted", func() {
			Expect(permissions.HasAny(set, []string{"delete_projects", "manage_users"})).To(BeFalse())
		})

		It("denies on an empty list", func() {
			Expect(permissions.HasAny(set, nil)).To(BeFalse())
			Expect(permissions.HasAny(set, []string{})).To(BeFalse())
		})

		It("ignores unknown names when a granted one is present", func() {
			Expect(permissions.HasAny(set, []string{"launch_rockets", "create_projects"})).To(BeTrue())
		})
	})

	Describe("HasAll", func() {
		It("passes only when every name is granted", func() {
			Expect(permissions.HasAll(set, []string{"create_projects", "view_financial_data"})).To(BeTrue())
			Expect(permissions.HasAll(set, []string{"create_projects", "delete_projects"})).To(BeFalse())
		})

		It("is vacuously satisfied by an empty list", func() {
			Expect(permissions.HasAll(set, nil)).To(BeTrue())
			Expect(permissions.HasAll(set, []string{})).To(BeTrue())
		})

		It("denies when any name is unknown", func() {
			Expect(permissions.HasAll(set, []string{"create_projects", "launch_rockets"})).To(BeFalse())
		})

		It("implies HasAny for non-empty granted lists", func() {
			names := []string{"create_projects", "view_financial_data"}
			Expect(permissions.HasAll(set, names)).To(BeTrue())
			Expect(permissions.HasAny(set, names)).To(BeTrue())
		})
	})

	Describe("derived checks", func() {
		It("treats admin as a superset", func() {
			admin := permissions.CapabilitySet(permissions.FlagAdmin)
			Expect(permissions.IsAdmin(admin)).To(BeTrue())
			Expect(permissions.CanViewFinancialData(admin)).To(BeTrue())
			Expect(permissions.CanApproveDrawings(admin)).To(BeTrue())
			Expect(permissions.CanApproveSpecs(admin)).To(BeTrue())
			Expect(permissions.CanManageUsers(admin)).To(BeTrue())
			Expect(permissions.IsManagement(admin)).To(BeTrue())
		})

		It("grants financial visibility with just the financial bit", func() {
			Expect(permissions.CanViewFinancialData(set)).To(BeTrue())
			Expect(permissions.IsAdmin(set)).To(BeFalse())
		})

		It("requires the full management bundle for IsManagement", func() {
			partial := permissions.CapabilitySet(permissions.FlagManageUsers | permissions.FlagViewReports)
			Expect(permissions.IsManagement(partial)).To(BeFalse())

			full := partial.With(permissions.FlagViewFinancialData)
			Expect(permissions.IsManagement(full)).To(BeTrue())
		})
	})
})

var _ = Describe("Role templates", func() {
	It("labels exact template matches", func() {
		for _, tpl := range permissions.RoleTemplates {
			Expect(permissions.EstimateRoleLabel(tpl.Mask)).To(Equal(tpl.Name))
		}
	})

	It("labels any deviation as custom", func() {
		mask, ok := permissions.TemplateByName("field_supervisor")
		Expect(ok).To(BeTrue())

		extra := mask.With(permissions.FlagViewFinancialData)
		Expect(permissions.EstimateRoleLabel(extra)).To(Equal(permissions.RoleLabelCustom))

		reduced := mask.Without(permissions.FlagManageScope)
		Expect(permissions.EstimateRoleLabel(reduced)).To(Equal(permissions.RoleLabelCustom))

		Expect(permissions.EstimateRoleLabel(0)).To(Equal(permissions.RoleLabelCustom))
	})

	It("rejects unknown template names", func() {
		_, ok := permissions.TemplateByName("intern")
		Expect(ok).To(BeFalse())
	})

	It("gives the admin template every flag", func() {
		mask, ok := permissions.TemplateByName("admin")
		Expect(ok).To(BeTrue())
		Expect(mask).To(Equal(permissions.CapabilitySet(permissions.AllFlags)))
	})
})

var _ = Describe("FilterSensitiveFields", func() {
	rows := func() []map[string]any {
		return []map[string]any{
			{"id": 1, "cost": 500, "name": "Panel"},
			{"id": 2, "unit_price": 1200, "name": "Conduit", "budget": 9000},
		}
	}

	It("strips financial keys for callers without the capability", func() {
		out := permissions.FilterSensitiveFields(rows(), permissions.CapabilitySet(permissions.FlagViewProjects), nil)
		Expect(out[0]).To(Equal(map[string]any{"id": 1, "name": "Panel"}))
		Expect(out[1]).To(Equal(map[string]any{"id": 2, "name": "Conduit"}))
	})

	It("returns the input unchanged for capability holders", func() {
		in := rows()
		out := permissions.FilterSensitiveFields(in, permissions.CapabilitySet(permissions.FlagViewFinancialData), nil)
		Expect(out).To(Equal(in))
		Expect(out[0]).To(HaveKey("cost"))
	})

	It("does not mutate the input rows", func() {
		in := rows()
		permissions.FilterSensitiveFields(in, 0, nil)
		Expect(in[0]).To(HaveKey("cost"))
		Expect(in[1]).To(HaveKey("unit_price"))
	})

	It("honors a caller-supplied field list", func() {
		out := permissions.FilterSensitiveFields(rows(), 0, []string{"name"})
		Expect(out[0]).To(Equal(map[string]any{"id": 1, "cost": 500}))
	})

	It("is idempotent", func() {
		once := permissions.FilterSensitiveFields(rows(), 0, nil)
		twice := permissions.FilterSensitiveFields(once, 0, nil)
		Expect(twice).To(Equal(once))
	})
})
