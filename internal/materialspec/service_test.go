package materialspec_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/core/events"
	"github.com/mwicaksana/construction-management/internal/materialspec"
	"github.com/mwicaksana/construction-management/internal/permissions"
)

func TestMaterialSpec(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "MaterialSpec Suite")
}

type mockSpecRepository struct {
	specs  map[int64]*materialspec.Spec
	nextID int64
}

func newMockSpecRepository() *mockSpecRepository {
	return &mockSpecRepository{
		specs:  make(map[int64]*materialspec.Spec),
		nextID: 1,
	}
}

func (m *mockSpecRepository) Create(s *materialspec.Spec) error {
	s.ID = m.nextID
	m.nextID++
	m.specs[s.ID] = s
	return nil
}

func (m *mockSpecRepository) GetByID(id int64) (*materialspec.Spec, error) {
	s, ok := m.specs[id]
	if !ok {
		return nil, errors.New("spec not found")
	}
	clone := *s
	return &clone, nil
}

func (m *mockSpecRepository) ListByProject(projectID int64, status string, limit, offset int) ([]*materialspec.Spec, error) {
	var out []*materialspec.Spec
	for _, s := range m.specs {
		if s.ProjectID == projectID && (status == "" || s.Status == status) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSpecRepository) ListPending(limit, offset int) ([]*materialspec.Spec, error) {
	var out []*materialspec.Spec
	for _, s := range m.specs {
		if s.Status == materialspec.StatusPending {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSpecRepository) Update(s *materialspec.Spec) error {
	m.specs[s.ID] = s
	return nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.events...)
}

var _ = Describe("MaterialSpec Service", func() {
	var (
		repo    *mockSpecRepository
		bus     *recordingBus
		service *materialspec.Service
		ctx     context.Context
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	approverSet := permissions.CapabilitySet(permissions.FlagViewProjects | permissions.FlagApproveMaterialSpecs | permissions.FlagViewFinancialData)
	plainSet := permissions.CapabilitySet(permissions.FlagViewProjects)

	unitCost := int64(75_000)

	submit := func() *materialspec.Spec {
		s, err := service.SubmitSpec(1, materialspec.SubmitSpecDTO{
			SpecNo:       "MS-001",
			Name:         "Tempered glass panel 10mm",
			Manufacturer: "Asahi",
			UnitCost:     &unitCost,
		}, 10)
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockSpecRepository()
		bus = &recordingBus{}
		service = materialspec.NewService(repo, permissions.NewChecker(), bus, testLogger)
	})

	Describe("GetSpec", func() {
		It("clears the unit cost for callers without financial visibility", func() {
			s := submit()

			got, err := service.GetSpec(s.ID, plainSet)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.UnitCost).To(BeNil())
			Expect(got.Name).To(Equal("Tempered glass panel 10mm"))
		})

		It("keeps the unit cost for capability holders", func() {
			s := submit()

			got, err := service.GetSpec(s.ID, approverSet)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.UnitCost).NotTo(BeNil())
			Expect(*got.UnitCost).To(Equal(unitCost))
		})
	})

	Describe("ApproveSpec", func() {
		It("approves with the capability and publishes the decision", func() {
			s := submit()

			approved, err := service.ApproveSpec(ctx, s.ID, 20, "matches structural calc", approverSet)
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal(materialspec.StatusApproved))
			Expect(*approved.ReviewedBy).To(Equal(int64(20)))

			published := bus.published()
			Expect(published).To(HaveLen(1))
			Expect(published[0].EventType()).To(Equal(events.EventTypeSpecApproved))
		})

		It("denies callers without the capability", func() {
			s := submit()

			_, err := service.ApproveSpec(ctx, s.ID, 20, "", plainSet)
			Expect(err).To(MatchError(internal.ErrPermissionDenied))
			Expect(bus.published()).To(BeEmpty())
		})

		It("refuses to re-review a decided spec", func() {
			s := submit()
			_, err := service.RejectSpec(ctx, s.ID, 20, "wrong grade", approverSet)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ApproveSpec(ctx, s.ID, 20, "", approverSet)
			Expect(err).To(MatchError(internal.ErrSpecNotReviewable))
		})

		It("reports missing specs", func() {
			_, err := service.ApproveSpec(ctx, 404, 20, "", approverSet)
			Expect(err).To(MatchError(internal.ErrMaterialSpecNotFound))
		})
	})

	Describe("ListPending", func() {
		It("requires the approval capability and redacts per caller", func() {
			submit()

			_, err := service.ListPending(plainSet, 20, 0)
			Expect(err).To(MatchError(internal.ErrPermissionDenied))

			queue, err := service.ListPending(approverSet, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(queue).To(HaveLen(1))
			Expect(queue[0].UnitCost).NotTo(BeNil())
		})

		It("redacts unit costs for approvers without financial visibility", func() {
			submit()
			blindApprover := permissions.CapabilitySet(permissions.FlagApproveMaterialSpecs)

			queue, err := service.ListPending(blindApprover, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(queue).To(HaveLen(1))
			Expect(queue[0].UnitCost).To(BeNil())
		})
	})
})
