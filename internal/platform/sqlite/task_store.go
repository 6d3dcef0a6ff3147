package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/platform/logger"
	"github.com/calmstack/taskdeck/internal/store"
)

// taskColumns is the column list shared by every task query so scans stay in
// step with the schema.
const taskColumns = `id, title, description, completed, priority, status, list_id,
	tags, sub_tasks, reminders, due_date, created_at, updated_at, "order"`

// TaskStore implements the store.TaskStore interface using SQLite.
type TaskStore struct {
	db    store.DBTX
	sqlDB *sql.DB // nil when running inside a caller-managed transaction
}

// NewTaskStore creates a new TaskStore on the given database handle.
func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db, sqlDB: db}
}

// WithTx returns a TaskStore running on the provided transaction.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx}
}

// List retrieves all tasks ordered by display order, newest first within the
// same position.
func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM tasks ORDER BY "order" ASC, created_at DESC`, taskColumns)
	return s.queryTasks(ctx, query)
}

// ListIncomplete retrieves all tasks whose completion flag is unset.
func (s *TaskStore) ListIncomplete(ctx context.Context) ([]domain.Task, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM tasks WHERE completed = 0 ORDER BY "order" ASC, created_at DESC`,
		taskColumns)
	return s.queryTasks(ctx, query)
}

// GetByID retrieves a task by its unique ID.
func (s *TaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = ?`, taskColumns)

	var task domain.Task
	if err := scanTask(s.db.QueryRowContext(ctx, query, id).Scan, &task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

// Save upserts a task, replacing any existing row with the same ID.
func (s *TaskStore) Save(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT OR REPLACE INTO tasks
			(id, title, description, completed, priority, status, list_id,
			 tags, sub_tasks, reminders, due_date, created_at, updated_at, "order")
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Completed,
		task.Priority,
		task.Status,
		task.ListID,
		task.Tags,
		task.SubTasks,
		task.Reminders,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
		task.Order,
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	return nil
}

// Delete removes a task by its ID. The task's delivery ledger rows are
// purged separately by the task-deleted event handler.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// Reorder rewrites the display order of the given tasks to match the slice
// order, atomically.
func (s *TaskStore) Reorder(ctx context.Context, orderedIDs []string) error {
	if s.sqlDB == nil {
		return errors.New("reorder cannot run inside a caller-managed transaction")
	}

	return store.RunInTransaction(ctx, s.sqlDB, func(ctx context.Context, tx *sql.Tx) error {
		txStore := &TaskStore{db: tx}
		for position, id := range orderedIDs {
			if err := txStore.updateOrder(ctx, id, position); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *TaskStore) updateOrder(ctx context.Context, id string, order int) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET "order" = ? WHERE id = ?`, order, id)
	if err != nil {
		return fmt.Errorf("failed to update task order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
	}

	return nil
}

func (s *TaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	log := logger.FromContext(ctx)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", "error", err)
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := scanTask(rows.Scan, &task); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

func scanTask(scanFn func(dest ...any) error, task *domain.Task) error {
	var description, dueDate sql.NullString
	if err := scanFn(
		&task.ID,
		&task.Title,
		&description,
		&task.Completed,
		&task.Priority,
		&task.Status,
		&task.ListID,
		&task.Tags,
		&task.SubTasks,
		&task.Reminders,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.Order,
	); err != nil {
		return err
	}

	if description.Valid {
		task.Description = &description.String
	}
	if dueDate.Valid {
		task.DueDate = &dueDate.String
	}

	return nil
}
