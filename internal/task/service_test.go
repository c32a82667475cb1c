package task_test

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
	"github.com/mwicaksana/construction-management/internal/task"
)

func TestTask(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Task Suite")
}

type mockTaskRepository struct {
	tasks  map[int64]*task.Task
	nextID int64
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{
		tasks:  make(map[int64]*task.Task),
		nextID: 1,
	}
}

func (m *mockTaskRepository) Create(t *task.Task) error {
	t.ID = m.nextID
	m.nextID++
	m.tasks[t.ID] = t
	return nil
}

func (m *mockTaskRepository) GetByID(id int64) (*task.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, errors.New("task not found")
	}
	clone := *t
	return &clone, nil
}

func (m *mockTaskRepository) ListByProject(projectID int64, limit, offset int) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range m.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTaskRepository) ListByAssignee(assigneeID int64, limit, offset int) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range m.tasks {
		if t.AssigneeID != nil && *t.AssigneeID == assigneeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTaskRepository) Update(t *task.Task) error {
	m.tasks[t.ID] = t
	return nil
}

func (m *mockTaskRepository) Delete(id int64) error {
	delete(m.tasks, id)
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

var _ = Describe("Task Service", func() {
	var (
		repo    *mockTaskRepository
		bus     *recordingBus
		service *task.Service
		ctx     context.Context
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockTaskRepository()
		bus = &recordingBus{}
		service = task.NewService(repo, bus, testLogger)
	})

	Describe("CreateTask", func() {
		It("defaults to medium priority and the todo status", func() {
			created, err := service.CreateTask(ctx, 1, task.CreateTaskDTO{
				Title: "Pour foundation slab",
			}, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Status).To(Equal(task.StatusTodo))
			Expect(created.Priority).To(Equal(task.PriorityMedium))
			Expect(created.CreatedBy).To(Equal(int64(5)))
		})

		It("does not publish when the task has no assignee", func() {
			_, err := service.CreateTask(ctx, 1, task.CreateTaskDTO{Title: "Unassigned work"}, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(bus.published()).To(BeEmpty())
		})

		It("publishes an assignment event when created with an assignee", func() {
			assignee := int64(12)
			created, err := service.CreateTask(ctx, 1, task.CreateTaskDTO{
				Title:      "Install rebar",
				AssigneeID: &assignee,
				Priority:   task.PriorityHigh,
			}, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Priority).To(Equal(task.PriorityHigh))

			published := bus.published()
			Expect(published).To(HaveLen(1))
			event, ok := published[0].(*events.TaskAssignedEvent)
			Expect(ok).To(BeTrue())
			Expect(event.TaskID).To(Equal(created.ID))
			Expect(event.AssigneeID).To(Equal(assignee))
			Expect(event.Title).To(Equal("Install rebar"))
		})
	})

	Describe("Assign", func() {
		It("sets the assignee and notifies them", func() {
			created, err := service.CreateTask(ctx, 1, task.CreateTaskDTO{Title: "Survey site"}, 5)
			Expect(err).NotTo(HaveOccurred())

			assigned, err := service.Assign(ctx, created.ID, 12)
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned.AssigneeID).NotTo(BeNil())
			Expect(*assigned.AssigneeID).To(Equal(int64(12)))

			published := bus.published()
			Expect(published).To(HaveLen(1))
			Expect(published[0].EventType()).To(Equal(events.EventTypeTaskAssigned))
		})

		It("reports missing tasks", func() {
			_, err := service.Assign(ctx, 404, 12)
			Expect(err).To(MatchError(internal.ErrTaskNotFound))
		})
	})

	Describe("Transition", func() {
		var created *task.Task

		BeforeEach(func() {
			var err error
			created, err = service.CreateTask(ctx, 1, task.CreateTaskDTO{Title: "Frame walls"}, 5)
			Expect(err).NotTo(HaveOccurred())
		})

		It("walks the board forward", func() {
			for _, status := range []string{task.StatusInProgress, task.StatusReview, task.StatusDone} {
				updated, err := service.Transition(created.ID, status)
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.Status).To(Equal(status))
			}
		})

		It("allows moving back from review to in progress", func() {
			_, err := service.Transition(created.ID, task.StatusInProgress)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Transition(created.ID, task.StatusReview)
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Transition(created.ID, task.StatusInProgress)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(task.StatusInProgress))
		})

		It("rejects skipping straight to done", func() {
			_, err := service.Transition(created.ID, task.StatusDone)
			Expect(err).To(MatchError(internal.ErrInvalidTransition))
		})

		It("rejects unknown statuses", func() {
			_, err := service.Transition(created.ID, "parked")
			Expect(err).To(MatchError(internal.ErrInvalidTransition))
		})

		It("treats done as terminal", func() {
			for _, status := range []string{task.StatusInProgress, task.StatusReview, task.StatusDone} {
				_, err := service.Transition(created.ID, status)
				Expect(err).NotTo(HaveOccurred())
			}

			_, err := service.Transition(created.ID, task.StatusInProgress)
			Expect(err).To(MatchError(internal.ErrInvalidTransition))
		})
	})

	Describe("UpdateTask", func() {
		It("applies only the provided fields", func() {
			created, err := service.CreateTask(ctx, 1, task.CreateTaskDTO{
				Title:       "Frame walls",
				Description: "Ground floor",
			}, 5)
			Expect(err).NotTo(HaveOccurred())

			priority := task.PriorityHigh
			updated, err := service.UpdateTask(created.ID, task.UpdateTaskDTO{Priority: &priority})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Priority).To(Equal(task.PriorityHigh))
			Expect(updated.Title).To(Equal("Frame walls"))
			Expect(updated.Description).To(Equal("Ground floor"))
		})

		It("reports missing tasks", func() {
			title := "whatever"
			_, err := service.UpdateTask(404, task.UpdateTaskDTO{Title: &title})
			Expect(err).To(MatchError(internal.ErrTaskNotFound))
		})
	})

	Describe("DeleteTask", func() {
		It("removes the task", func() {
			created, err := service.CreateTask(ctx, 1, task.CreateTaskDTO{Title: "Temp works"}, 5)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteTask(created.ID)).To(Succeed())

			_, err = service.GetTask(created.ID)
			Expect(err).To(MatchError(internal.ErrTaskNotFound))
		})

		It("reports missing tasks", func() {
			Expect(service.DeleteTask(404)).To(MatchError(internal.ErrTaskNotFound))
		})
	})
})
