package shopdrawing_test

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
	"github.com/mwicaksana/construction-management/internal/permissions"
	"github.com/mwicaksana/construction-management/internal/shopdrawing"
)

func TestShopDrawing(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ShopDrawing Suite")
}

type mockDrawingRepository struct {
	drawings    map[int64]*shopdrawing.Drawing
	createError error
	updateError error
	nextID      int64
}

func newMockDrawingRepository() *mockDrawingRepository {
	return &mockDrawingRepository{
		drawings: make(map[int64]*shopdrawing.Drawing),
		nextID:   1,
	}
}

func (m *mockDrawingRepository) Create(d *shopdrawing.Drawing) error {
	if m.createError != nil {
		return m.createError
	}
	d.ID = m.nextID
	m.nextID++
	m.drawings[d.ID] = d
	return nil
}

func (m *mockDrawingRepository) GetByID(id int64) (*shopdrawing.Drawing, error) {
	d, ok := m.drawings[id]
	if !ok {
		return nil, errors.New("drawing not found")
	}
	copy := *d
	return &copy, nil
}

func (m *mockDrawingRepository) ListByProject(projectID int64, status string, limit, offset int) ([]*shopdrawing.Drawing, error) {
	var out []*shopdrawing.Drawing
	for _, d := range m.drawings {
		if d.ProjectID == projectID && (status == "" || d.Status == status) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDrawingRepository) ListPendingReview(limit, offset int) ([]*shopdrawing.Drawing, error) {
	var out []*shopdrawing.Drawing
	for _, d := range m.drawings {
		if d.Status == shopdrawing.StatusPendingReview {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDrawingRepository) Update(d *shopdrawing.Drawing) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.drawings[d.ID] = d
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

var _ = Describe("ShopDrawing Service", func() {
	var (
		repo    *mockDrawingRepository
		bus     *recordingBus
		service *shopdrawing.Service
		ctx     context.Context
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	reviewerSet := permissions.CapabilitySet(permissions.FlagViewProjects | permissions.FlagApproveShopDrawings)
	submitterSet := permissions.CapabilitySet(permissions.FlagViewProjects)
	adminSet := permissions.CapabilitySet(permissions.FlagAdmin)

	const (
		submitterID = int64(10)
		reviewerID  = int64(20)
	)

	submit := func() *shopdrawing.Drawing {
		d, err := service.SubmitDrawing(1, shopdrawing.SubmitDrawingDTO{
			DrawingNo:  "SD-001",
			Title:      "Facade panel layout",
			Discipline: "architectural",
		}, submitterID)
		Expect(err).NotTo(HaveOccurred())
		return d
	}

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockDrawingRepository()
		bus = &recordingBus{}
		service = shopdrawing.NewService(repo, permissions.NewChecker(), bus, testLogger)
	})

	Describe("SubmitDrawing", func() {
		It("creates a pending drawing at revision zero", func() {
			d := submit()
			Expect(d.ID).To(BeNumerically(">", 0))
			Expect(d.Status).To(Equal(shopdrawing.StatusPendingReview))
			Expect(d.Revision).To(Equal(0))
			Expect(d.SubmittedBy).To(Equal(submitterID))
		})
	})

	Describe("ApproveDrawing", func() {
		It("approves with the approval capability and publishes the decision", func() {
			d := submit()

			approved, err := service.ApproveDrawing(ctx, d.ID, reviewerID, "looks good", reviewerSet)
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal(shopdrawing.StatusApproved))
			Expect(*approved.ReviewedBy).To(Equal(reviewerID))
			Expect(*approved.ReviewNote).To(Equal("looks good"))

			published := bus.published()
			Expect(published).To(HaveLen(1))
			Expect(published[0].EventType()).To(Equal(events.EventTypeDrawingApproved))

			event := published[0].(*events.DrawingReviewedEvent)
			Expect(event.DrawingID).To(Equal(d.ID))
			Expect(event.SubmittedBy).To(Equal(submitterID))
			Expect(event.ReviewedBy).To(Equal(reviewerID))
		})

		It("lets admins approve without the drawing bit", func() {
			d := submit()

			approved, err := service.ApproveDrawing(ctx, d.ID, reviewerID, "", adminSet)
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal(shopdrawing.StatusApproved))
		})

		It("denies reviewers without the capability and publishes nothing", func() {
			d := submit()

			_, err := service.ApproveDrawing(ctx, d.ID, reviewerID, "", submitterSet)
			Expect(err).To(MatchError(internal.ErrPermissionDenied))
			Expect(bus.published()).To(BeEmpty())

			stored, _ := repo.GetByID(d.ID)
			Expect(stored.Status).To(Equal(shopdrawing.StatusPendingReview))
		})

		It("refuses to re-review a decided drawing", func() {
			d := submit()
			_, err := service.ApproveDrawing(ctx, d.ID, reviewerID, "", reviewerSet)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.RejectDrawing(ctx, d.ID, reviewerID, "", reviewerSet)
			Expect(err).To(MatchError(internal.ErrDrawingNotReviewable))
		})

		It("returns not found for missing drawings", func() {
			_, err := service.ApproveDrawing(ctx, 999, reviewerID, "", reviewerSet)
			Expect(err).To(MatchError(internal.ErrDrawingNotFound))
		})
	})

	Describe("RequestRevision and Resubmit", func() {
		It("cycles a drawing back through the review queue with a bumped revision", func() {
			d := submit()

			revised, err := service.RequestRevision(ctx, d.ID, reviewerID, "dimension missing", reviewerSet)
			Expect(err).NotTo(HaveOccurred())
			Expect(revised.Status).To(Equal(shopdrawing.StatusRevisionRequested))

			resubmitted, err := service.ResubmitDrawing(d.ID, submitterID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resubmitted.Status).To(Equal(shopdrawing.StatusPendingReview))
			Expect(resubmitted.Revision).To(Equal(1))
			Expect(resubmitted.ReviewedBy).To(BeNil())
			Expect(resubmitted.ReviewNote).To(BeNil())
		})

		It("only lets the original submitter resubmit", func() {
			d := submit()
			_, err := service.RequestRevision(ctx, d.ID, reviewerID, "", reviewerSet)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ResubmitDrawing(d.ID, reviewerID)
			Expect(err).To(MatchError(internal.ErrUnauthorizedAccess))
		})

		It("rejects resubmitting a drawing that is not awaiting revision", func() {
			d := submit()

			_, err := service.ResubmitDrawing(d.ID, submitterID)
			Expect(err).To(MatchError(internal.ErrDrawingNotReviewable))
		})
	})

	Describe("ListPendingReview", func() {
		It("requires the approval capability", func() {
			submit()

			_, err := service.ListPendingReview(submitterSet, 20, 0)
			Expect(err).To(MatchError(internal.ErrPermissionDenied))

			queue, err := service.ListPendingReview(reviewerSet, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(queue).To(HaveLen(1))
		})
	})
})
