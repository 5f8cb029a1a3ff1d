package hierarchy

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nick0918964388/pcm3-sub000/internal/entity"
)

func TestItemHistory_NewestFirst(t *testing.T) {
	ctx := newTestContext(t)
	itemID := uuid.New()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, changeType := range []string{entity.ChangeTypeCreate, entity.ChangeTypeUpdate, entity.ChangeTypeReorder} {
		entry := entity.Changelog{
			WBSItemID:  itemID,
			ChangedBy:  uuid.New(),
			ChangeType: changeType,
			ChangedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, ctx.DB.Create(&entry).Error)
	}

	entries, err := ItemHistory(ctx, itemID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, entity.ChangeTypeReorder, entries[0].ChangeType)
	assert.Equal(t, entity.ChangeTypeUpdate, entries[1].ChangeType)
	assert.Equal(t, entity.ChangeTypeCreate, entries[2].ChangeType)
}

func TestItemHistory_RespectsLimit(t *testing.T) {
	ctx := newTestContext(t)
	itemID := uuid.New()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		entry := entity.Changelog{
			WBSItemID:  itemID,
			ChangedBy:  uuid.New(),
			ChangeType: entity.ChangeTypeUpdate,
			ChangedAt:  base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, ctx.DB.Create(&entry).Error)
	}

	entries, err := ItemHistory(ctx, itemID, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestItemHistory_FiltersByItem(t *testing.T) {
	ctx := newTestContext(t)
	projectID := uuid.New()
	a := mustCreateItem(t, ctx, projectID, nil, "1.0", "A")
	b := mustCreateItem(t, ctx, projectID, nil, "2.0", "B")

	entries, err := ItemHistory(ctx, a.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, a.ID, entries[0].WBSItemID)

	entries, err = ItemHistory(ctx, b.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestProjectHistory_SpansAllItems(t *testing.T) {
	ctx := newTestContext(t)
	projectID := uuid.New()
	otherProject := uuid.New()
	actor := uuid.New()

	root := mustCreateItem(t, ctx, projectID, nil, "1.0", "Root")
	child := mustCreateItem(t, ctx, projectID, &root.ID, "1.1", "Child")
	mustCreateItem(t, ctx, otherProject, nil, "9.0", "Elsewhere")

	newName := "Renamed child"
	_, err := UpdateItem(ctx, child.ID, UpdateItemInput{Name: &newName, ChangedBy: actor, ChangeReason: "rename"})
	require.NoError(t, err)

	entries, err := ProjectHistory(ctx, projectID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	for _, entry := range entries {
		assert.NotEqual(t, "9.0", entry.NewValue)
	}
}

func TestProjectHistory_IncludesDeletedItems(t *testing.T) {
	ctx := newTestContext(t)
	projectID := uuid.New()
	actor := uuid.New()

	item := mustCreateItem(t, ctx, projectID, nil, "1.0", "Doomed")
	require.NoError(t, DeleteItem(ctx, item.ID, actor, "descoped"))

	entries, err := ProjectHistory(ctx, projectID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	types := []string{entries[0].ChangeType, entries[1].ChangeType}
	assert.Contains(t, types, entity.ChangeTypeCreate)
	assert.Contains(t, types, entity.ChangeTypeDelete)
}
