package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/scope"
	scopePostgres "github.com/mwicaksana/construction-management/internal/scope/postgres"
)

func TestScopePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Scope Postgres Suite")
}

// SQLiteScopeItem mirrors the scope_items table with SQLite-compatible
// column types.
type SQLiteScopeItem struct {
	ID          int64     `gorm:"primaryKey"`
	ProjectID   int64     `gorm:"column:project_id;not null;index"`
	ItemNo      string    `gorm:"column:item_no;not null"`
	Description string    `gorm:"column:description;not null"`
	Quantity    float64   `gorm:"column:quantity;not null"`
	Unit        string    `gorm:"column:unit;not null"`
	UnitPrice   *int64    `gorm:"column:unit_price"`
	TotalPrice  *int64    `gorm:"column:total_price"`
	Status      string    `gorm:"column:status;default:planned"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (SQLiteScopeItem) TableName() string {
	return "scope_items"
}

var _ = Describe("Scope PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo scope.Repository
	)

	unitPrice := int64(150_000)

	newItem := func(projectID int64, itemNo string) *scope.Item {
		return &scope.Item{
			ProjectID:   projectID,
			ItemNo:      itemNo,
			Description: "Install aluminum window frames",
			Quantity:    12,
			Unit:        "pcs",
			UnitPrice:   &unitPrice,
			Status:      scope.StatusPlanned,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteScopeItem{})
		Expect(err).NotTo(HaveOccurred())

		repo = scopePostgres.NewScopeRepository(db)
	})

	Describe("Create", func() {
		It("persists a scope item and assigns an id", func() {
			item := newItem(1, "SC-001")

			err := repo.Create(item)
			Expect(err).NotTo(HaveOccurred())
			Expect(item.ID).To(BeNumerically(">", 0))
		})
	})

	Describe("GetByID", func() {
		It("returns the stored item with its prices", func() {
			item := newItem(1, "SC-001")
			Expect(repo.Create(item)).To(Succeed())

			got, err := repo.GetByID(item.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ItemNo).To(Equal("SC-001"))
			Expect(got.UnitPrice).NotTo(BeNil())
			Expect(*got.UnitPrice).To(Equal(unitPrice))
		})

		It("returns the sentinel error for missing items", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(MatchError(internal.ErrScopeItemNotFound))
		})
	})

	Describe("ListByProject", func() {
		It("scopes the listing to one project, ordered by item number", func() {
			Expect(repo.Create(newItem(1, "SC-002"))).To(Succeed())
			Expect(repo.Create(newItem(1, "SC-001"))).To(Succeed())
			Expect(repo.Create(newItem(2, "SC-001"))).To(Succeed())

			items, err := repo.ListByProject(1, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(2))
			Expect(items[0].ItemNo).To(Equal("SC-001"))
			Expect(items[1].ItemNo).To(Equal("SC-002"))
		})

		It("paginates", func() {
			Expect(repo.Create(newItem(1, "SC-001"))).To(Succeed())
			Expect(repo.Create(newItem(1, "SC-002"))).To(Succeed())
			Expect(repo.Create(newItem(1, "SC-003"))).To(Succeed())

			items, err := repo.ListByProject(1, 2, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(2))
			Expect(items[0].ItemNo).To(Equal("SC-002"))
		})
	})

	Describe("Update", func() {
		It("saves changed fields and bumps updated_at", func() {
			item := newItem(1, "SC-001")
			Expect(repo.Create(item)).To(Succeed())
			before := item.UpdatedAt

			item.Status = scope.StatusInstalled
			Expect(repo.Update(item)).To(Succeed())

			got, err := repo.GetByID(item.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(scope.StatusInstalled))
			Expect(got.UpdatedAt).To(BeTemporally(">=", before))
		})
	})

	Describe("Delete", func() {
		It("removes the item", func() {
			item := newItem(1, "SC-001")
			Expect(repo.Create(item)).To(Succeed())

			Expect(repo.Delete(item.ID)).To(Succeed())

			_, err := repo.GetByID(item.ID)
			Expect(err).To(MatchError(internal.ErrScopeItemNotFound))
		})
	})
})
