package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workdayz/workdayz-api/internal/domain"
)

// TaskRepository реализует repository.TaskRepository для PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository создает новый экземпляр TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create создает новую задачу
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (task_id, phase_id, name, description, assigned_to, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		task.TaskID, task.PhaseID, task.Name, task.Description,
		task.AssignedTo, task.Status,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			if pgErr.ConstraintName == "tasks_assigned_to_fkey" {
				return domain.ErrUserNotFound
			}
			return domain.ErrPhaseNotFound
		}
		return err
	}

	return nil
}

// GetByID получает задачу по ID
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `
		SELECT task_id, phase_id, name, description, assigned_to, status
		FROM tasks
		WHERE task_id = $1
	`

	var task domain.Task
	err := r.db.QueryRow(ctx, query, taskID).Scan(
		&task.TaskID,
		&task.PhaseID,
		&task.Name,
		&task.Description,
		&task.AssignedTo,
		&task.Status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	return &task, nil
}

// UpdateStatus обновляет статус задачи
func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID string, status domain.Status) error {
	query := `UPDATE tasks SET status = $1 WHERE task_id = $2`

	result, err := r.db.Exec(ctx, query, status, taskID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// Reassign назначает задачу на другого пользователя
func (r *TaskRepository) Reassign(ctx context.Context, taskID, assigneeID string) error {
	query := `UPDATE tasks SET assigned_to = $1 WHERE task_id = $2`

	result, err := r.db.Exec(ctx, query, assigneeID, taskID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return domain.ErrUserNotFound
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// Delete удаляет задачу
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	query := `DELETE FROM tasks WHERE task_id = $1`

	result, err := r.db.Exec(ctx, query, taskID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// ListInPhase возвращает страницу задач фазы вместе с именами исполнителей
func (r *TaskRepository) ListInPhase(ctx context.Context, phaseID string, skip int) ([]*domain.Task, error) {
	query := `
		SELECT t.task_id, t.phase_id, t.name, t.description,
		       t.assigned_to, u.full_name, t.status
		FROM tasks t
		JOIN users u ON u.user_id = t.assigned_to
		WHERE t.phase_id = $1
		ORDER BY t.created_at
		OFFSET $2
		LIMIT $3
	`

	return r.queryTasks(ctx, query, phaseID, skip, domain.TasksPageSize)
}

// ListByAssigneeInPhase возвращает страницу задач фазы, назначенных пользователю
func (r *TaskRepository) ListByAssigneeInPhase(ctx context.Context, userID, phaseID string, skip int) ([]*domain.Task, error) {
	query := `
		SELECT t.task_id, t.phase_id, t.name, t.description,
		       t.assigned_to, u.full_name, t.status
		FROM tasks t
		JOIN users u ON u.user_id = t.assigned_to
		WHERE t.phase_id = $1 AND t.assigned_to = $4
		ORDER BY t.created_at
		OFFSET $2
		LIMIT $3
	`

	return r.queryTasks(ctx, query, phaseID, skip, domain.MyTasksPageSize, userID)
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.TaskID, &task.PhaseID, &task.Name, &task.Description,
			&task.AssignedTo, &task.AssignedName, &task.Status,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, &task)
	}

	// Возвращаем пустой массив вместо nil если задач нет
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return tasks, rows.Err()
}
