package store

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/task-manager/models"
)

// MemoryDB keeps users and tasks in process memory behind a single lock. It
// backs memory:// DSNs and the end-to-end tests; data is lost on exit.
type MemoryDB struct {
	mu    sync.RWMutex
	users map[string]models.User
	tasks map[string]models.Task
	// emails indexes users by email to enforce uniqueness
	emails map[string]string
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		users:  make(map[string]models.User),
		tasks:  make(map[string]models.Task),
		emails: make(map[string]string),
	}
}

func now() time.Time {
	return time.Now().UTC()
}

// profile strips the session list and the avatar from a stored user.
func profile(user models.User) models.User {
	user.Tokens = nil
	user.Avatar = nil
	return user
}

type memoryUserRepository struct{ db *MemoryDB }

type memoryTokenRepository struct{ db *MemoryDB }

type memoryTaskRepository struct{ db *MemoryDB }

func NewMemoryUserRepository(db *MemoryDB) UserRepository { return &memoryUserRepository{db: db} }

func NewMemoryTokenRepository(db *MemoryDB) TokenRepository { return &memoryTokenRepository{db: db} }

func NewMemoryTaskRepository(db *MemoryDB) TaskRepository { return &memoryTaskRepository{db: db} }

func (r *memoryUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, taken := r.db.emails[user.Email]; taken {
		return models.User{}, ErrEmailAlreadyExists
	}

	ts := now()
	user.CreatedAt, user.UpdatedAt = ts, ts
	user.PlainPassword = ""
	user.Tokens = []string{}
	user.Avatar = nil

	r.db.users[user.ID] = user
	r.db.emails[user.Email] = user.ID

	return profile(user), nil
}

func (r *memoryUserRepository) FindUserByID(_ context.Context, userID string) (models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	user, ok := r.db.users[userID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return profile(user), nil
}

func (r *memoryUserRepository) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	id, ok := r.db.emails[email]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return profile(r.db.users[id]), nil
}

func (r *memoryUserRepository) UpdateUser(_ context.Context, user models.User) (models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.users[user.ID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	if owner, taken := r.db.emails[user.Email]; taken && owner != user.ID {
		return models.User{}, ErrEmailAlreadyExists
	}

	delete(r.db.emails, stored.Email)
	stored.Name = user.Name
	stored.Email = user.Email
	stored.Age = user.Age
	stored.Password = user.Password
	stored.UpdatedAt = now()

	r.db.users[stored.ID] = stored
	r.db.emails[stored.Email] = stored.ID

	return profile(stored), nil
}

func (r *memoryUserRepository) DeleteUser(_ context.Context, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user, ok := r.db.users[userID]
	if !ok {
		return ErrUserNotFound
	}

	delete(r.db.users, userID)
	delete(r.db.emails, user.Email)
	for id, task := range r.db.tasks {
		if task.Owner == userID {
			delete(r.db.tasks, id)
		}
	}

	return nil
}

func (r *memoryUserRepository) SetAvatar(_ context.Context, userID string, avatar []byte) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user, ok := r.db.users[userID]
	if !ok {
		return ErrUserNotFound
	}

	user.Avatar = slices.Clone(avatar)
	user.UpdatedAt = now()
	r.db.users[userID] = user

	return nil
}

func (r *memoryUserRepository) GetAvatar(_ context.Context, userID string) ([]byte, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	user, ok := r.db.users[userID]
	if !ok || len(user.Avatar) == 0 {
		return nil, ErrAvatarNotFound
	}
	return slices.Clone(user.Avatar), nil
}

func (r *memoryTokenRepository) AddToken(_ context.Context, userID, token string, maxSessions int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user, ok := r.db.users[userID]
	if !ok {
		return ErrUserNotFound
	}

	if !slices.Contains(user.Tokens, token) {
		user.Tokens = append(user.Tokens, token)
	}
	if maxSessions > 0 && len(user.Tokens) > maxSessions {
		user.Tokens = slices.Clone(user.Tokens[len(user.Tokens)-maxSessions:])
	}
	r.db.users[userID] = user

	return nil
}

func (r *memoryTokenRepository) RemoveToken(_ context.Context, userID, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user, ok := r.db.users[userID]
	if !ok {
		return nil
	}

	user.Tokens = slices.DeleteFunc(slices.Clone(user.Tokens), func(t string) bool { return t == token })
	r.db.users[userID] = user

	return nil
}

func (r *memoryTokenRepository) RemoveAllTokens(_ context.Context, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user, ok := r.db.users[userID]
	if !ok {
		return nil
	}

	user.Tokens = []string{}
	r.db.users[userID] = user

	return nil
}

func (r *memoryTokenRepository) HasToken(_ context.Context, userID, token string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.users[userID].HasToken(token), nil
}

func (r *memoryTokenRepository) ListTokens(_ context.Context, userID string) ([]string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	tokens := slices.Clone(r.db.users[userID].Tokens)
	if tokens == nil {
		tokens = []string{}
	}
	return tokens, nil
}

func (r *memoryTaskRepository) CreateTask(_ context.Context, task models.Task) (models.Task, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[task.Owner]; !ok {
		return models.Task{}, ErrUserNotFound
	}

	ts := now()
	task.CreatedAt, task.UpdatedAt = ts, ts
	r.db.tasks[task.ID] = task

	return task, nil
}

func (r *memoryTaskRepository) FindTask(_ context.Context, ownerID, taskID string) (models.Task, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	task, ok := r.db.tasks[taskID]
	if !ok || task.Owner != ownerID {
		return models.Task{}, ErrTaskNotFound
	}
	return task, nil
}

func (r *memoryTaskRepository) UpdateTask(_ context.Context, task models.Task) (models.Task, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.tasks[task.ID]
	if !ok || stored.Owner != task.Owner {
		return models.Task{}, ErrTaskNotFound
	}

	stored.Description = task.Description
	stored.Completed = task.Completed
	stored.UpdatedAt = now()
	r.db.tasks[task.ID] = stored

	return stored, nil
}

func (r *memoryTaskRepository) DeleteTask(_ context.Context, ownerID, taskID string) (models.Task, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	task, ok := r.db.tasks[taskID]
	if !ok || task.Owner != ownerID {
		return models.Task{}, ErrTaskNotFound
	}

	delete(r.db.tasks, taskID)
	return task, nil
}

func (r *memoryTaskRepository) ListTasks(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	r.db.mu.RLock()
	tasks := make([]models.Task, 0)
	for _, task := range r.db.tasks {
		if task.Owner != filter.Owner {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		tasks = append(tasks, task)
	}
	r.db.mu.RUnlock()

	column, ok := taskSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	desc := filter.SortOrder == models.SortDesc

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if desc {
			a, b = b, a
		}
		if c := compareTasks(a, b, column); c != 0 {
			return c < 0
		}
		// ids are v7 UUIDs and order by creation
		return a.ID < b.ID
	})

	skip := min(filter.Skip, uint64(len(tasks)))
	tasks = tasks[skip:]
	if filter.Limit > 0 && filter.Limit < uint64(len(tasks)) {
		tasks = tasks[:filter.Limit]
	}

	return tasks, nil
}

func compareTasks(a, b models.Task, column string) int {
	switch column {
	case "description":
		return strings.Compare(a.Description, b.Description)
	case "completed":
		switch {
		case a.Completed == b.Completed:
			return 0
		case !a.Completed:
			return -1
		default:
			return 1
		}
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}
