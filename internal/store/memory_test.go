package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/MKhiriev/task-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemory(t *testing.T) *Storages {
	t.Helper()
	return NewMemoryStorages(NewMemoryDB())
}

func seedUser(t *testing.T, s *Storages, id, email string) models.User {
	t.Helper()
	user, err := s.Users.CreateUser(context.Background(), models.User{ID: id, Name: "N", Email: email, Password: "hash"})
	require.NoError(t, err)
	return user
}

func TestMemoryUsers_CreateAndFind(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	created := seedUser(t, s, "u-1", "a@example.com")
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := s.Users.FindUserByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", byID.Email)

	byEmail, err := s.Users.FindUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", byEmail.ID)

	_, err = s.Users.FindUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.Users.CreateUser(ctx, models.User{ID: "u-2", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestMemoryUsers_UpdateKeepsEmailIndex(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()
	seedUser(t, s, "u-1", "a@example.com")
	seedUser(t, s, "u-2", "b@example.com")

	_, err := s.Users.UpdateUser(ctx, models.User{ID: "u-1", Name: "N", Email: "b@example.com"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	updated, err := s.Users.UpdateUser(ctx, models.User{ID: "u-1", Name: "M", Email: "c@example.com", Age: 3, Password: "hash2"})
	require.NoError(t, err)
	assert.Equal(t, "c@example.com", updated.Email)

	_, err = s.Users.FindUserByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.Users.UpdateUser(ctx, models.User{ID: "nope", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryUsers_DeleteCascades(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()
	seedUser(t, s, "u-1", "a@example.com")
	seedUser(t, s, "u-2", "b@example.com")

	_, err := s.Tasks.CreateTask(ctx, models.Task{ID: "t-1", Description: "mine", Owner: "u-1"})
	require.NoError(t, err)
	_, err = s.Tasks.CreateTask(ctx, models.Task{ID: "t-2", Description: "theirs", Owner: "u-2"})
	require.NoError(t, err)
	require.NoError(t, s.Tokens.AddToken(ctx, "u-1", "tok", 0))

	require.NoError(t, s.Users.DeleteUser(ctx, "u-1"))

	_, err = s.Users.FindUserByID(ctx, "u-1")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = s.Tasks.FindTask(ctx, "u-1", "t-1")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	ok, err := s.Tokens.HasToken(ctx, "u-1", "tok")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Tasks.FindTask(ctx, "u-2", "t-2")
	assert.NoError(t, err)

	assert.ErrorIs(t, s.Users.DeleteUser(ctx, "u-1"), ErrUserNotFound)
}

func TestMemoryUsers_Avatar(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()
	seedUser(t, s, "u-1", "a@example.com")

	_, err := s.Users.GetAvatar(ctx, "u-1")
	assert.ErrorIs(t, err, ErrAvatarNotFound)
	_, err = s.Users.GetAvatar(ctx, "missing")
	assert.ErrorIs(t, err, ErrAvatarNotFound)

	require.NoError(t, s.Users.SetAvatar(ctx, "u-1", []byte("png")))
	avatar, err := s.Users.GetAvatar(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), avatar)

	require.NoError(t, s.Users.SetAvatar(ctx, "u-1", nil))
	_, err = s.Users.GetAvatar(ctx, "u-1")
	assert.ErrorIs(t, err, ErrAvatarNotFound)

	assert.ErrorIs(t, s.Users.SetAvatar(ctx, "missing", []byte("png")), ErrUserNotFound)
}

func TestMemoryTokens_Lifecycle(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()
	seedUser(t, s, "u-1", "a@example.com")

	for _, tok := range []string{"t1", "t2", "t3"} {
		require.NoError(t, s.Tokens.AddToken(ctx, "u-1", tok, 0))
	}

	tokens, err := s.Tokens.ListTokens(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2", "t3"}, tokens)

	require.NoError(t, s.Tokens.RemoveToken(ctx, "u-1", "t2"))
	require.NoError(t, s.Tokens.RemoveToken(ctx, "u-1", "t2"), "removing twice is not an error")

	ok, _ := s.Tokens.HasToken(ctx, "u-1", "t2")
	assert.False(t, ok)
	ok, _ = s.Tokens.HasToken(ctx, "u-1", "t1")
	assert.True(t, ok)

	require.NoError(t, s.Tokens.RemoveAllTokens(ctx, "u-1"))
	tokens, err = s.Tokens.ListTokens(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, tokens)

	assert.ErrorIs(t, s.Tokens.AddToken(ctx, "missing", "t", 0), ErrUserNotFound)
}

func TestMemoryTokens_MaxSessionsEvictsOldest(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()
	seedUser(t, s, "u-1", "a@example.com")

	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Tokens.AddToken(ctx, "u-1", fmt.Sprintf("t%d", i), 2))
	}

	tokens, err := s.Tokens.ListTokens(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t4", "t5"}, tokens)
}

func TestMemoryTasks_OwnerScoping(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()
	seedUser(t, s, "u-1", "a@example.com")
	seedUser(t, s, "u-2", "b@example.com")

	_, err := s.Tasks.CreateTask(ctx, models.Task{ID: "t-1", Description: "d", Owner: "u-1"})
	require.NoError(t, err)

	_, err = s.Tasks.FindTask(ctx, "u-2", "t-1")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	_, err = s.Tasks.UpdateTask(ctx, models.Task{ID: "t-1", Owner: "u-2", Description: "hijack"})
	assert.ErrorIs(t, err, ErrTaskNotFound)
	_, err = s.Tasks.DeleteTask(ctx, "u-2", "t-1")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	updated, err := s.Tasks.UpdateTask(ctx, models.Task{ID: "t-1", Owner: "u-1", Description: "done", Completed: true})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "u-1", updated.Owner)

	deleted, err := s.Tasks.DeleteTask(ctx, "u-1", "t-1")
	require.NoError(t, err)
	assert.Equal(t, "done", deleted.Description)

	_, err = s.Tasks.CreateTask(ctx, models.Task{ID: "t-9", Description: "d", Owner: "ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryTasks_ListFilterSortPage(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()
	seedUser(t, s, "u-1", "a@example.com")
	seedUser(t, s, "u-2", "b@example.com")

	for i, d := range []string{"c", "a", "b", "d"} {
		_, err := s.Tasks.CreateTask(ctx, models.Task{
			ID:          fmt.Sprintf("t-%d", i),
			Description: d,
			Completed:   i%2 == 0,
			Owner:       "u-1",
		})
		require.NoError(t, err)
	}
	_, err := s.Tasks.CreateTask(ctx, models.Task{ID: "x", Description: "other", Owner: "u-2"})
	require.NoError(t, err)

	all, err := s.Tasks.ListTasks(ctx, models.TaskFilter{Owner: "u-1"})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	yes := true
	done, err := s.Tasks.ListTasks(ctx, models.TaskFilter{Owner: "u-1", Completed: &yes})
	require.NoError(t, err)
	assert.Len(t, done, 2)
	for _, task := range done {
		assert.True(t, task.Completed)
	}

	sorted, err := s.Tasks.ListTasks(ctx, models.TaskFilter{Owner: "u-1", SortBy: "description", SortOrder: models.SortDesc})
	require.NoError(t, err)
	require.Len(t, sorted, 4)
	assert.Equal(t, []string{"d", "c", "b", "a"}, descriptions(sorted))

	paged, err := s.Tasks.ListTasks(ctx, models.TaskFilter{Owner: "u-1", SortBy: "description", Skip: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, descriptions(paged))

	beyond, err := s.Tasks.ListTasks(ctx, models.TaskFilter{Owner: "u-1", Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestMemory_ConcurrentTokenWrites(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()
	seedUser(t, s, "u-1", "a@example.com")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Tokens.AddToken(ctx, "u-1", fmt.Sprintf("t%d", i), 0)
		}(i)
	}
	wg.Wait()

	tokens, err := s.Tokens.ListTokens(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, tokens, 50)
}

func descriptions(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Description)
	}
	return out
}
