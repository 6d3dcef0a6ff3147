package sqlite

import (
	"database/sql"
	"fmt"

	"context"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/store"
)

// ListStore implements the store.ListStore interface using SQLite.
type ListStore struct {
	db store.DBTX
}

// NewListStore creates a new ListStore on the given database handle.
func NewListStore(db store.DBTX) *ListStore {
	return &ListStore{db: db}
}

// List retrieves all task lists ordered by display order.
func (s *ListStore) List(ctx context.Context) ([]domain.TaskList, error) {
	query := `SELECT id, name, icon, color, "order", created_at FROM lists ORDER BY "order" ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lists []domain.TaskList
	for rows.Next() {
		var list domain.TaskList
		var icon, color sql.NullString
		if err := rows.Scan(&list.ID, &list.Name, &icon, &color, &list.Order, &list.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list row: %w", err)
		}
		if icon.Valid {
			list.Icon = &icon.String
		}
		if color.Valid {
			list.Color = &color.String
		}
		lists = append(lists, list)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating list rows: %w", err)
	}

	return lists, nil
}

// Save upserts a task list.
func (s *ListStore) Save(ctx context.Context, list *domain.TaskList) error {
	if err := list.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT OR REPLACE INTO lists (id, name, icon, color, "order", created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		list.ID, list.Name, list.Icon, list.Color, list.Order, list.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save list: %w", err)
	}

	return nil
}

// Delete removes a task list by its ID.
func (s *ListStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrListNotFound
	}

	return nil
}
