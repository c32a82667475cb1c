package project_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/permissions"
	"github.com/mwicaksana/construction-management/internal/project"
)

func TestProject(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Project Suite")
}

type mockProjectRepository struct {
	projects    map[int64]*project.Project
	createError error
	updateError error
	nextID      int64
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{
		projects: make(map[int64]*project.Project),
		nextID:   1,
	}
}

func (m *mockProjectRepository) Create(p *project.Project) error {
	if m.createError != nil {
		return m.createError
	}
	p.ID = m.nextID
	m.nextID++
	m.projects[p.ID] = p
	return nil
}

func (m *mockProjectRepository) GetByID(id int64) (*project.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, errors.New("project not found")
	}
	clone := *p
	return &clone, nil
}

func (m *mockProjectRepository) List(limit, offset int) ([]*project.Project, error) {
	out := make([]*project.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProjectRepository) Update(p *project.Project) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.projects[p.ID] = p
	return nil
}

func (m *mockProjectRepository) Delete(id int64) error {
	delete(m.projects, id)
	return nil
}

var _ = Describe("Project Service", func() {
	var (
		repo    *mockProjectRepository
		service *project.Service
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	financialSet := permissions.CapabilitySet(permissions.FlagViewProjects | permissions.FlagViewFinancialData)
	plainSet := permissions.CapabilitySet(permissions.FlagViewProjects | permissions.FlagEditProjects)

	budget := int64(5_000_000_00)

	create := func() *project.Project {
		p, err := service.CreateProject(project.CreateProjectDTO{
			Code:       "PRJ-001",
			Name:       "Harbor Office Tower",
			ClientName: "PT Maju Bersama",
			Budget:     &budget,
		}, 1)
		Expect(err).NotTo(HaveOccurred())
		return p
	}

	BeforeEach(func() {
		repo = newMockProjectRepository()
		service = project.NewService(repo, testLogger)
	})

	Describe("GetProject", func() {
		It("returns financials to capability holders", func() {
			p := create()

			got, err := service.GetProject(p.ID, financialSet)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Budget).NotTo(BeNil())
			Expect(*got.Budget).To(Equal(budget))
		})

		It("clears financials for everyone else", func() {
			p := create()

			got, err := service.GetProject(p.ID, plainSet)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Budget).To(BeNil())
			Expect(got.ActualCost).To(BeNil())
			Expect(got.Name).To(Equal("Harbor Office Tower"))
		})

		It("leaves the stored row intact after redaction", func() {
			p := create()

			_, err := service.GetProject(p.ID, plainSet)
			Expect(err).NotTo(HaveOccurred())

			stored, _ := repo.GetByID(p.ID)
			Expect(stored.Budget).NotTo(BeNil())
		})
	})

	Describe("ListProjects", func() {
		It("redacts every row per the caller's capability set", func() {
			create()

			redacted, err := service.ListProjects(plainSet, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(redacted).To(HaveLen(1))
			Expect(redacted[0].Budget).To(BeNil())

			visible, err := service.ListProjects(financialSet, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(visible[0].Budget).NotTo(BeNil())
		})
	})

	Describe("UpdateProject", func() {
		It("denies budget edits without financial visibility", func() {
			p := create()
			newBudget := int64(999)

			_, err := service.UpdateProject(p.ID, project.UpdateProjectDTO{Budget: &newBudget}, plainSet)
			Expect(err).To(MatchError(internal.ErrPermissionDenied))
		})

		It("applies budget edits for capability holders", func() {
			p := create()
			newBudget := int64(999)

			updated, err := service.UpdateProject(p.ID, project.UpdateProjectDTO{Budget: &newBudget}, financialSet)
			Expect(err).NotTo(HaveOccurred())
			Expect(*updated.Budget).To(Equal(newBudget))
		})

		It("allows non-financial edits without the capability", func() {
			p := create()
			name := "Harbor Office Tower Phase 2"

			updated, err := service.UpdateProject(p.ID, project.UpdateProjectDTO{Name: &name}, plainSet)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal(name))
			Expect(updated.Budget).To(BeNil())
		})
	})

	Describe("UpdateStatus", func() {
		It("walks the allowed transitions", func() {
			p := create()
			Expect(p.Status).To(Equal(project.StatusPlanning))

			updated, err := service.UpdateStatus(p.ID, project.StatusActive)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(project.StatusActive))

			updated, err = service.UpdateStatus(p.ID, project.StatusCompleted)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(project.StatusCompleted))
		})

		It("rejects transitions outside the state machine", func() {
			p := create()

			_, err := service.UpdateStatus(p.ID, project.StatusCompleted)
			Expect(err).To(MatchError(internal.ErrInvalidTransition))

			_, err = service.UpdateStatus(p.ID, "demolished")
			Expect(err).To(MatchError(internal.ErrInvalidTransition))
		})

		It("treats completed as terminal", func() {
			p := create()
			_, err := service.UpdateStatus(p.ID, project.StatusActive)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.UpdateStatus(p.ID, project.StatusCompleted)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.UpdateStatus(p.ID, project.StatusActive)
			Expect(err).To(MatchError(internal.ErrInvalidTransition))
		})
	})

	Describe("DeleteProject", func() {
		It("deletes existing projects", func() {
			p := create()
			Expect(service.DeleteProject(p.ID)).To(Succeed())

			_, err := service.GetProject(p.ID, financialSet)
			Expect(err).To(MatchError(internal.ErrProjectNotFound))
		})

		It("reports missing projects", func() {
			Expect(service.DeleteProject(42)).To(MatchError(internal.ErrProjectNotFound))
		})
	})
})
