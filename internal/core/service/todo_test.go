package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	sqliterepo "todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/pkg/test"
)

var ctx = context.Background()

type TodoServiceTestSuite struct {
	suite.Suite
	Service port.TodoService
}

func (s *TodoServiceTestSuite) SetupTest() {
	db := test.InitTestDB(s.T())
	repo := sqliterepo.NewTodoRepository(db)

	s.Service = service.NewTodoService(repo, nil)
}

func TestTodoServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoServiceTestSuite))
}

func updateParams(s *TodoServiceTestSuite, body string) request.UpdateTodoRequest {
	var params request.UpdateTodoRequest

	err := json.Unmarshal([]byte(body), &params)
	Expect(err).To(BeNil())

	return params
}

func (s *TodoServiceTestSuite) TestCreate_DefaultsStatusToPending() {
	todo, err := s.Service.Create(ctx, request.CreateTodoRequest{Title: "No status given"})

	Expect(err).To(BeNil())
	Expect(todo.Status).To(Equal(domain.StatusPending))
}

func (s *TodoServiceTestSuite) TestCreate_TrimsTitleAndStampsTimestamps() {
	before := time.Now().UTC().Add(-time.Second)

	todo, err := s.Service.Create(ctx, request.CreateTodoRequest{
		Title:  "  padded title  ",
		Status: "in_progress",
	})

	Expect(err).To(BeNil())
	Expect(todo.Title).To(Equal("padded title"))
	Expect(todo.Status).To(Equal(domain.StatusInProgress))
	Expect(todo.CreatedAt).To(BeTemporally(">", before))
	Expect(todo.UpdatedAt).To(BeTemporally("~", todo.CreatedAt, time.Second))
}

func (s *TodoServiceTestSuite) TestCreate_RejectsUnknownStatus() {
	_, err := s.Service.Create(ctx, request.CreateTodoRequest{
		Title:  "Bad status",
		Status: "archived",
	})

	Expect(err).To(HaveOccurred())
}

func (s *TodoServiceTestSuite) TestUpdate_PartialMergeKeepsOmittedFields() {
	desc := "keep me"
	created, err := s.Service.Create(ctx, request.CreateTodoRequest{
		Title:       "Original",
		Description: &desc,
	})
	Expect(err).To(BeNil())

	updated, err := s.Service.Update(ctx, created.ID, updateParams(s, `{"status": "completed"}`))

	Expect(err).To(BeNil())
	Expect(updated.Status).To(Equal(domain.StatusCompleted))
	Expect(updated.Title).To(Equal("Original"))
	Expect(updated.Description).ToNot(BeNil())
	Expect(*updated.Description).To(Equal("keep me"))
}

func (s *TodoServiceTestSuite) TestUpdate_NullDescriptionClearsIt() {
	desc := "to be removed"
	created, err := s.Service.Create(ctx, request.CreateTodoRequest{
		Title:       "With notes",
		Description: &desc,
	})
	Expect(err).To(BeNil())

	updated, err := s.Service.Update(ctx, created.ID, updateParams(s, `{"description": null}`))

	Expect(err).To(BeNil())
	Expect(updated.Description).To(BeNil())
	Expect(updated.Title).To(Equal("With notes"))
}

func (s *TodoServiceTestSuite) TestUpdate_NotFound() {
	_, err := s.Service.Update(ctx, 9999, updateParams(s, `{"title": "ghost"}`))

	Expect(err).To(MatchError(domain.ErrTodoNotFound))
}

func (s *TodoServiceTestSuite) TestUpdate_BumpsUpdatedAtOnly() {
	created, err := s.Service.Create(ctx, request.CreateTodoRequest{Title: "Timestamped"})
	Expect(err).To(BeNil())

	time.Sleep(1100 * time.Millisecond)

	updated, err := s.Service.Update(ctx, created.ID, updateParams(s, `{"title": "Timestamped v2"}`))

	Expect(err).To(BeNil())
	Expect(updated.CreatedAt.Unix()).To(Equal(created.CreatedAt.Unix()))
	Expect(updated.UpdatedAt.After(updated.CreatedAt)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestDelete_ThenGetByIDFails() {
	created, err := s.Service.Create(ctx, request.CreateTodoRequest{Title: "Short lived"})
	Expect(err).To(BeNil())

	Expect(s.Service.Delete(ctx, created.ID)).To(Succeed())

	_, err = s.Service.GetByID(ctx, created.ID)
	Expect(err).To(MatchError(domain.ErrTodoNotFound))
}

func (s *TodoServiceTestSuite) TestStats() {
	for _, status := range []string{"pending", "pending", "completed"} {
		_, err := s.Service.Create(ctx, request.CreateTodoRequest{Title: "t", Status: status})
		Expect(err).To(BeNil())
	}

	stats, err := s.Service.Stats(ctx)

	Expect(err).To(BeNil())
	Expect(stats.Total).To(Equal(3))
	Expect(stats.ByStatus["pending"]).To(Equal(2))
	Expect(stats.ByStatus["completed"]).To(Equal(1))
	Expect(stats.ByStatus).ToNot(HaveKey("in_progress"))
}

func (s *TodoServiceTestSuite) TestStats_Empty() {
	stats, err := s.Service.Stats(ctx)

	Expect(err).To(BeNil())
	Expect(stats.Total).To(Equal(0))
	Expect(stats.ByStatus).To(BeEmpty())
}
