package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/platform/sqlite"
	"github.com/calmstack/taskdeck/internal/store"
)

func TestListStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lists := sqlite.NewListStore(newTestDB(t))

	t.Run("built-in lists are present", func(t *testing.T) {
		all, err := lists.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "all", all[0].ID)
		assert.Equal(t, "today", all[1].ID)
		assert.Equal(t, "week", all[2].ID)
	})

	t.Run("saves and lists a custom list", func(t *testing.T) {
		list, err := domain.NewTaskList("Groceries")
		require.NoError(t, err)
		icon := "Cart"
		list.Icon = &icon
		list.Order = 10

		require.NoError(t, lists.Save(ctx, list))

		all, err := lists.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, list, &all[3])
	})

	t.Run("invalid list is rejected", func(t *testing.T) {
		err := lists.Save(ctx, &domain.TaskList{ID: "x"})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("deletes a list", func(t *testing.T) {
		list, err := domain.NewTaskList("Temporary")
		require.NoError(t, err)
		require.NoError(t, lists.Save(ctx, list))

		require.NoError(t, lists.Delete(ctx, list.ID))
		assert.ErrorIs(t, lists.Delete(ctx, list.ID), store.ErrListNotFound)
	})
}
