package repository_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/pkg/test"
	factory "todoapi/pkg/test/factory"
)

var ctx = context.Background()

type TodoRepositoryTestSuite struct {
	suite.Suite
	TodoRepo port.TodoRepository
}

func (s *TodoRepositoryTestSuite) SetupTest() {
	db := test.InitTestDB(s.T())

	s.TodoRepo = repository.NewTodoRepository(db)
}

func TestTodoRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoRepositoryTestSuite))
}

func (s *TodoRepositoryTestSuite) createTodo(title string, status domain.Status, description *string) domain.Todo {
	now := time.Now().UTC().Truncate(time.Second)

	todo, err := s.TodoRepo.Create(ctx, factory.NewTodo[domain.Todo](map[string]any{
		"ID":          0,
		"Title":       title,
		"Status":      status,
		"Description": description,
		"CreatedAt":   now,
		"UpdatedAt":   now,
	}))

	Expect(err).To(BeNil())

	return todo
}

func ptr(s string) *string {
	return &s
}

func (s *TodoRepositoryTestSuite) TestRepository_List_Empty() {
	todos, err := s.TodoRepo.List(ctx, 0, 10)

	Expect(err).To(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoRepositoryTestSuite) TestRepository_CreateAndGetByID() {
	created := s.createTodo("Buy milk", domain.StatusPending, ptr("Two liters"))

	Expect(created.ID).To(BeNumerically(">", 0))

	found, err := s.TodoRepo.GetByID(ctx, created.ID)

	Expect(err).To(BeNil())
	Expect(found.Title).To(Equal("Buy milk"))
	Expect(found.Status).To(Equal(domain.StatusPending))
	Expect(found.Description).ToNot(BeNil())
	Expect(*found.Description).To(Equal("Two liters"))
}

func (s *TodoRepositoryTestSuite) TestRepository_Create_NilDescription() {
	created := s.createTodo("No notes", domain.StatusPending, nil)

	found, err := s.TodoRepo.GetByID(ctx, created.ID)

	Expect(err).To(BeNil())
	Expect(found.Description).To(BeNil())
}

func (s *TodoRepositoryTestSuite) TestRepository_GetByID_NotFound() {
	_, err := s.TodoRepo.GetByID(ctx, 9999)

	Expect(err).To(MatchError(domain.ErrTodoNotFound))
}

func (s *TodoRepositoryTestSuite) TestRepository_List_Pagination() {
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		s.createTodo(title, domain.StatusPending, nil)
	}

	firstPage, err := s.TodoRepo.List(ctx, 0, 2)
	Expect(err).To(BeNil())
	Expect(firstPage).To(HaveLen(2))

	secondPage, err := s.TodoRepo.List(ctx, 2, 2)
	Expect(err).To(BeNil())
	Expect(secondPage).To(HaveLen(2))

	lastPage, err := s.TodoRepo.List(ctx, 4, 2)
	Expect(err).To(BeNil())
	Expect(lastPage).To(HaveLen(1))

	seen := map[int]bool{}

	for _, page := range [][]domain.Todo{firstPage, secondPage, lastPage} {
		for _, todo := range page {
			Expect(seen[todo.ID]).To(BeFalse())
			seen[todo.ID] = true
		}
	}

	Expect(seen).To(HaveLen(5))
}

func (s *TodoRepositoryTestSuite) TestRepository_List_CreationOrder() {
	first := s.createTodo("first", domain.StatusPending, nil)
	second := s.createTodo("second", domain.StatusPending, nil)

	todos, err := s.TodoRepo.List(ctx, 0, 10)

	Expect(err).To(BeNil())
	Expect(todos).To(HaveLen(2))
	Expect(todos[0].ID).To(Equal(first.ID))
	Expect(todos[1].ID).To(Equal(second.ID))
}

func (s *TodoRepositoryTestSuite) TestRepository_ListByStatus() {
	s.createTodo("pending one", domain.StatusPending, nil)
	s.createTodo("done one", domain.StatusCompleted, nil)
	s.createTodo("pending two", domain.StatusPending, nil)

	pending, err := s.TodoRepo.ListByStatus(ctx, domain.StatusPending)

	Expect(err).To(BeNil())
	Expect(pending).To(HaveLen(2))

	inProgress, err := s.TodoRepo.ListByStatus(ctx, domain.StatusInProgress)

	Expect(err).To(BeNil())
	Expect(inProgress).To(BeEmpty())
}

func (s *TodoRepositoryTestSuite) TestRepository_Search_CaseInsensitive() {
	s.createTodo("Buy GROCERIES", domain.StatusPending, nil)
	s.createTodo("Call dentist", domain.StatusPending, ptr("about groceries bill"))
	s.createTodo("Unrelated", domain.StatusPending, nil)

	todos, err := s.TodoRepo.Search(ctx, "groceries")

	Expect(err).To(BeNil())
	Expect(todos).To(HaveLen(2))
}

func (s *TodoRepositoryTestSuite) TestRepository_Search_NoMatches() {
	s.createTodo("Buy milk", domain.StatusPending, nil)

	todos, err := s.TodoRepo.Search(ctx, "zzz")

	Expect(err).To(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoRepositoryTestSuite) TestRepository_Update() {
	created := s.createTodo("Initial", domain.StatusPending, ptr("old notes"))

	created.Title = "Renamed"
	created.Status = domain.StatusCompleted
	created.Description = nil
	created.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	updated, err := s.TodoRepo.Update(ctx, created)

	Expect(err).To(BeNil())
	Expect(updated.ID).To(Equal(created.ID))
	Expect(updated.Title).To(Equal("Renamed"))
	Expect(updated.Status).To(Equal(domain.StatusCompleted))
	Expect(updated.Description).To(BeNil())
}

func (s *TodoRepositoryTestSuite) TestRepository_Update_NotFound() {
	missing := factory.NewTodo[domain.Todo](map[string]any{
		"ID":          424242,
		"Title":       "ghost",
		"Status":      domain.StatusPending,
		"Description": (*string)(nil),
		"CreatedAt":   time.Now().UTC(),
		"UpdatedAt":   time.Now().UTC(),
	})

	_, err := s.TodoRepo.Update(ctx, missing)

	Expect(err).To(MatchError(domain.ErrTodoNotFound))
}

func (s *TodoRepositoryTestSuite) TestRepository_Delete() {
	created := s.createTodo("Disposable", domain.StatusPending, nil)

	err := s.TodoRepo.Delete(ctx, created.ID)
	Expect(err).To(BeNil())

	_, err = s.TodoRepo.GetByID(ctx, created.ID)
	Expect(err).To(MatchError(domain.ErrTodoNotFound))
}

func (s *TodoRepositoryTestSuite) TestRepository_Delete_NotFound() {
	err := s.TodoRepo.Delete(ctx, 9999)

	Expect(err).To(MatchError(domain.ErrTodoNotFound))
}

func (s *TodoRepositoryTestSuite) TestRepository_CountAndCountByStatus() {
	s.createTodo("a", domain.StatusPending, nil)
	s.createTodo("b", domain.StatusPending, nil)
	s.createTodo("c", domain.StatusInProgress, nil)
	s.createTodo("d", domain.StatusCompleted, nil)

	total, err := s.TodoRepo.Count(ctx)

	Expect(err).To(BeNil())
	Expect(total).To(Equal(4))

	grouped, err := s.TodoRepo.CountByStatus(ctx)

	Expect(err).To(BeNil())
	Expect(grouped[domain.StatusPending]).To(Equal(2))
	Expect(grouped[domain.StatusInProgress]).To(Equal(1))
	Expect(grouped[domain.StatusCompleted]).To(Equal(1))

	sum := 0

	for _, count := range grouped {
		sum += count
	}

	Expect(sum).To(Equal(total))
}

func (s *TodoRepositoryTestSuite) TestRepository_Ping() {
	Expect(s.TodoRepo.Ping(ctx)).To(Succeed())
}
