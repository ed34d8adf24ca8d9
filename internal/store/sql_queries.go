package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/task-manager/models"
)

const (
	createUser = `INSERT INTO users (user_id, name, email, age, password)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, name, email, age, password, created_at, updated_at;`

	findUserByID = `SELECT user_id, name, email, age, password, created_at, updated_at
    FROM users
    WHERE user_id = $1;`

	findUserByEmail = `SELECT user_id, name, email, age, password, created_at, updated_at
    FROM users
    WHERE email = $1;`

	updateUser = `UPDATE users
    SET name = $2, email = $3, age = $4, password = $5, updated_at = NOW()
    WHERE user_id = $1
    RETURNING user_id, name, email, age, password, created_at, updated_at;`

	deleteUser = `DELETE FROM users WHERE user_id = $1;`

	setAvatar = `UPDATE users SET avatar = $2, updated_at = NOW() WHERE user_id = $1;`

	getAvatar = `SELECT avatar FROM users WHERE user_id = $1;`

	addToken = `INSERT INTO user_tokens (user_id, token) VALUES ($1, $2)
    ON CONFLICT (user_id, token) DO NOTHING;`

	// evictTokens keeps only the newest $2 tokens of a user.
	evictTokens = `DELETE FROM user_tokens
    WHERE user_id = $1 AND token_id NOT IN (
        SELECT token_id FROM user_tokens WHERE user_id = $1 ORDER BY token_id DESC LIMIT $2
    );`

	removeToken = `DELETE FROM user_tokens WHERE user_id = $1 AND token = $2;`

	removeAllTokens = `DELETE FROM user_tokens WHERE user_id = $1;`

	hasToken = `SELECT EXISTS (SELECT 1 FROM user_tokens WHERE user_id = $1 AND token = $2);`

	listTokens = `SELECT token FROM user_tokens WHERE user_id = $1 ORDER BY token_id;`

	createTask = `INSERT INTO tasks (task_id, description, completed, owner_id)
    VALUES ($1, $2, $3, $4)
    RETURNING task_id, description, completed, owner_id, created_at, updated_at;`

	findTask = `SELECT task_id, description, completed, owner_id, created_at, updated_at
    FROM tasks
    WHERE owner_id = $1 AND task_id = $2;`

	updateTask = `UPDATE tasks
    SET description = $3, completed = $4, updated_at = NOW()
    WHERE owner_id = $1 AND task_id = $2
    RETURNING task_id, description, completed, owner_id, created_at, updated_at;`

	deleteTask = `DELETE FROM tasks
    WHERE owner_id = $1 AND task_id = $2
    RETURNING task_id, description, completed, owner_id, created_at, updated_at;`
)

// taskSortColumns maps the public sort keys onto table columns.
var taskSortColumns = map[string]string{
	"created_at":  "created_at",
	"createdAt":   "created_at",
	"updated_at":  "updated_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}

// buildListTasksQuery builds the SELECT for a filtered, ordered and paged task
// listing. Unknown sort keys fall back to creation order.
func buildListTasksQuery(filter models.TaskFilter) (string, []any, error) {
	query := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("task_id", "description", "completed", "owner_id", "created_at", "updated_at").
		From("tasks").
		Where(sq.Eq{"owner_id": filter.Owner})

	if filter.Completed != nil {
		query = query.Where(sq.Eq{"completed": *filter.Completed})
	}

	column, ok := taskSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if filter.SortOrder == models.SortDesc {
		direction = "DESC"
	}
	// task_id is a v7 UUID, so it breaks ties in insertion order
	query = query.OrderBy(fmt.Sprintf("%s %s", column, direction), "task_id "+direction)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}

	sqlText, args, err := query.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return strings.TrimSpace(sqlText), args, nil
}
