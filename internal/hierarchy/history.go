package hierarchy

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nick0918964388/pcm3-sub000/internal/appcontext"
	"github.com/nick0918964388/pcm3-sub000/internal/entity"
)

const defaultHistoryLimit = 100

// recordChange appends one changelog entry inside the mutation's transaction,
// so an entry exists exactly when the mutation committed.
func recordChange(tx *gorm.DB, itemID, changedBy uuid.UUID, changeType, oldValue, newValue, changeReason string) error {
	entry := entity.Changelog{
		WBSItemID:    itemID,
		ChangedBy:    changedBy,
		ChangeType:   changeType,
		OldValue:     oldValue,
		NewValue:     newValue,
		ChangeReason: changeReason,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return &StoreError{Op: "record changelog entry", Err: err}
	}
	return nil
}

// ItemHistory returns the changelog for one item, newest first.
func ItemHistory(ctx *appcontext.Context, itemID uuid.UUID, limit int) ([]entity.Changelog, error) {
	var entries []entity.Changelog
	err := ctx.DB.
		Where("wbs_item_id = ?", itemID).
		Order("changed_at DESC").
		Limit(historyLimit(limit)).
		Find(&entries).Error
	if err != nil {
		return nil, &StoreError{Op: "load item history", Err: err}
	}
	return entries, nil
}

// ProjectHistory returns the changelog across all of a project's items,
// newest first, via a join against the items table. Entries for items that
// were since deleted are still included.
func ProjectHistory(ctx *appcontext.Context, projectID uuid.UUID, limit int) ([]entity.Changelog, error) {
	var entries []entity.Changelog
	err := ctx.DB.
		Joins("JOIN wbs_items ON wbs_items.id = changelogs.wbs_item_id").
		Where("wbs_items.project_id = ?", projectID).
		Order("changelogs.changed_at DESC").
		Limit(historyLimit(limit)).
		Find(&entries).Error
	if err != nil {
		return nil, &StoreError{Op: "load project history", Err: err}
	}
	return entries, nil
}

func historyLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	return limit
}

func toJSON(v interface{}) string {
	jsonBytes, _ := json.Marshal(v)
	return string(jsonBytes)
}
