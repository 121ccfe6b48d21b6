package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ed9408/minerva-api/internal/models"
)

const taskColumns = "id, title, description, user_id, created_at, updated_at"

// TaskRepo scopes every operation to the owning user. The owner id is part
// of the WHERE clause, so rows belonging to other users are simply absent.
type TaskRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

type TaskUpdate struct {
	Title       *string
	Description *string
}

func NewTaskRepo(pool *pgxpool.Pool, timeout time.Duration) *TaskRepo {
	return &TaskRepo{pool: pool, timeout: timeout}
}

func (r *TaskRepo) Create(ctx context.Context, ownerID int64, title string, description *string) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING `+taskColumns+`
	`, title, description, ownerID)

	return scanTask(row)
}

func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID int64) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.UserID,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepo) GetByID(ctx context.Context, ownerID, taskID int64) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`, taskID, ownerID)

	return scanTask(row)
}

func (r *TaskRepo) Update(ctx context.Context, ownerID, taskID int64, update TaskUpdate) (*models.Task, error) {
	assignments := []string{}
	args := []any{}
	index := 1

	if update.Title != nil {
		assignments = append(assignments, fmt.Sprintf("title = $%d", index))
		args = append(args, *update.Title)
		index++
	}
	if update.Description != nil {
		assignments = append(assignments, fmt.Sprintf("description = $%d", index))
		args = append(args, *update.Description)
		index++
	}

	if len(assignments) == 0 {
		return r.GetByID(ctx, ownerID, taskID)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	assignments = append(assignments, "updated_at = NOW()")
	args = append(args, taskID, ownerID)
	query := fmt.Sprintf(`
		UPDATE tasks
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING `+taskColumns,
		strings.Join(assignments, ", "), index, index+1)

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

func (r *TaskRepo) Delete(ctx context.Context, ownerID, taskID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", taskID, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanTask(row rowScanner) (*models.Task, error) {
	var task models.Task
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &task, nil
}
