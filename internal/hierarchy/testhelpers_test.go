package hierarchy

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nick0918964388/pcm3-sub000/internal/appcontext"
	"github.com/nick0918964388/pcm3-sub000/internal/entity"
)

// newTestContext opens a throwaway sqlite database so engine tests exercise
// real transactions without an external Postgres instance.
func newTestContext(t *testing.T) *appcontext.Context {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "wbs_test.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Company{},
		&entity.User{},
		&entity.Project{},
		&entity.WBSItem{},
		&entity.Changelog{},
	))

	return &appcontext.Context{
		DB:     db,
		Logger: zap.NewNop(),
	}
}

func mustCreateItem(t *testing.T, ctx *appcontext.Context, projectID uuid.UUID, parentID *uuid.UUID, code, name string) *entity.WBSItem {
	t.Helper()

	item, err := CreateItem(ctx, CreateItemInput{
		ProjectID: projectID,
		ParentID:  parentID,
		Code:      code,
		Name:      name,
		ChangedBy: uuid.New(),
	})
	require.NoError(t, err)
	return item
}

// siblingOrders returns code -> sortOrder for one sibling group.
func siblingOrders(t *testing.T, ctx *appcontext.Context, projectID uuid.UUID, parentID *uuid.UUID) map[string]int {
	t.Helper()

	var items []entity.WBSItem
	q := ctx.DB.Where("project_id = ?", projectID)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	require.NoError(t, q.Find(&items).Error)

	orders := make(map[string]int, len(items))
	for _, item := range items {
		orders[item.Code] = item.SortOrder
	}
	return orders
}

// assertContiguous checks the sibling-group invariant: sort orders are
// exactly {0..n-1} with no duplicates or gaps.
func assertContiguous(t *testing.T, ctx *appcontext.Context, projectID uuid.UUID, parentID *uuid.UUID) {
	t.Helper()

	orders := siblingOrders(t, ctx, projectID, parentID)
	seen := make(map[int]bool, len(orders))
	for code, order := range orders {
		require.False(t, seen[order], "duplicate sort order %d (code %s)", order, code)
		require.GreaterOrEqual(t, order, 0, "negative sort order for %s", code)
		require.Less(t, order, len(orders), "sort order gap: %s has %d in a group of %d", code, order, len(orders))
		seen[order] = true
	}
}

func changelogCount(t *testing.T, ctx *appcontext.Context, itemID uuid.UUID, changeType string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, ctx.DB.Model(&entity.Changelog{}).
		Where("wbs_item_id = ? AND change_type = ?", itemID, changeType).
		Count(&count).Error)
	return count
}
