package hierarchy

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nick0918964388/pcm3-sub000/internal/appcontext"
	"github.com/nick0918964388/pcm3-sub000/internal/entity"
)

// CreateItemInput describes a new WBS item. ChangeReason is optional for
// creation; every other mutation requires one.
type CreateItemInput struct {
	ProjectID    uuid.UUID
	ParentID     *uuid.UUID
	Code         string
	Name         string
	Description  string
	ChangedBy    uuid.UUID
	ChangeReason string
}

// UpdateItemInput carries a partial update. Nil fields are left untouched.
// Structural attributes (parent, sort order, level) are reorder's job and can
// never be changed here.
type UpdateItemInput struct {
	Code         *string
	Name         *string
	Description  *string
	ChangedBy    uuid.UUID
	ChangeReason string
}

// ReorderItemInput moves an item to NewSortOrder within its destination
// sibling group. ParentSpecified distinguishes "keep the current parent" from
// an explicit move, where a nil NewParentID means move to root.
type ReorderItemInput struct {
	ParentSpecified bool
	NewParentID     *uuid.UUID
	NewSortOrder    int
	ChangedBy       uuid.UUID
	ChangeReason    string
}

// CreateItem appends a new item at the end of its sibling group. Level is
// derived from the parent; a supplied parent that does not exist in the same
// project fails with ErrParentNotFound rather than silently producing a root.
func CreateItem(ctx *appcontext.Context, input CreateItemInput) (*entity.WBSItem, error) {
	if err := ValidateNewItem(input.Code, input.Name); err != nil {
		return nil, err
	}

	var item entity.WBSItem
	err := ctx.DB.Transaction(func(tx *gorm.DB) error {
		level := 1
		if input.ParentID != nil {
			var parent entity.WBSItem
			if err := tx.Where("id = ? AND project_id = ?", *input.ParentID, input.ProjectID).First(&parent).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrParentNotFound
				}
				return &StoreError{Op: "load parent", Err: err}
			}
			level = parent.LevelNumber + 1
		}

		var siblings int64
		if err := siblingScope(tx, input.ProjectID, input.ParentID).Count(&siblings).Error; err != nil {
			return &StoreError{Op: "count siblings", Err: err}
		}

		item = entity.WBSItem{
			ProjectID:   input.ProjectID,
			ParentID:    input.ParentID,
			Code:        input.Code,
			Name:        input.Name,
			Description: input.Description,
			LevelNumber: level,
			SortOrder:   int(siblings),
		}
		if err := tx.Create(&item).Error; err != nil {
			return &StoreError{Op: "insert item", Err: err}
		}

		return recordChange(tx, item.ID, input.ChangedBy, entity.ChangeTypeCreate, "", toJSON(item), input.ChangeReason)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies a partial update to code, name and description. Calling
// it with no fields is a no-op that returns the current row without writing a
// changelog entry.
func UpdateItem(ctx *appcontext.Context, id uuid.UUID, input UpdateItemInput) (*entity.WBSItem, error) {
	var item entity.WBSItem
	err := ctx.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return &StoreError{Op: "load item", Err: err}
		}

		if input.Code == nil && input.Name == nil && input.Description == nil {
			return nil
		}

		if err := ValidateItemPatch(input.Code, input.Name, input.ChangeReason); err != nil {
			return err
		}

		oldValue := toJSON(item)

		updates := map[string]interface{}{}
		if input.Code != nil {
			updates["code"] = *input.Code
		}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if err := tx.Model(&item).Updates(updates).Error; err != nil {
			return &StoreError{Op: "update item", Err: err}
		}

		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return &StoreError{Op: "reload item", Err: err}
		}

		return recordChange(tx, item.ID, input.ChangedBy, entity.ChangeTypeUpdate, oldValue, toJSON(item), input.ChangeReason)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes a leaf item and closes the sort-order gap it leaves
// behind. Items with children are rejected with ErrItemHasChildren; the child
// count runs inside the same transaction as the delete so a concurrently
// inserted child cannot slip past the check.
func DeleteItem(ctx *appcontext.Context, id uuid.UUID, changedBy uuid.UUID, changeReason string) error {
	if err := ValidateChangeReason(changeReason); err != nil {
		return err
	}

	return ctx.DB.Transaction(func(tx *gorm.DB) error {
		var item entity.WBSItem
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return &StoreError{Op: "load item", Err: err}
		}

		var children int64
		if err := tx.Model(&entity.WBSItem{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
			return &StoreError{Op: "count children", Err: err}
		}
		if children > 0 {
			return ErrItemHasChildren
		}

		if err := tx.Delete(&item).Error; err != nil {
			return &StoreError{Op: "delete item", Err: err}
		}

		if err := shiftSortOrder(tx, item.ProjectID, item.ParentID, item.SortOrder+1, -1, -1); err != nil {
			return err
		}

		return recordChange(tx, item.ID, changedBy, entity.ChangeTypeDelete, toJSON(item), "", changeReason)
	})
}

// reorderSnapshot is the before/after payload of a REORDER changelog entry.
type reorderSnapshot struct {
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   int        `json:"sort_order"`
	LevelNumber int        `json:"level_number"`
}

// ReorderItem moves an item to a new position and, optionally, a new parent.
// Sibling groups stay gap-free on both sides of a cross-parent move, and a
// depth change is cascaded to every descendant. The whole move commits or
// rolls back as one transaction.
func ReorderItem(ctx *appcontext.Context, id uuid.UUID, input ReorderItemInput) (*entity.WBSItem, error) {
	if err := ValidateChangeReason(input.ChangeReason); err != nil {
		return nil, err
	}

	var item entity.WBSItem
	err := ctx.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return &StoreError{Op: "load item", Err: err}
		}

		oldSnapshot := reorderSnapshot{
			ParentID:    item.ParentID,
			SortOrder:   item.SortOrder,
			LevelNumber: item.LevelNumber,
		}

		newParentID := item.ParentID
		if input.ParentSpecified {
			newParentID = input.NewParentID
		}
		sameGroup := sameParent(newParentID, item.ParentID)

		newLevel := item.LevelNumber
		if !sameGroup {
			if newParentID != nil {
				var parent entity.WBSItem
				if err := tx.Where("id = ? AND project_id = ?", *newParentID, item.ProjectID).First(&parent).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrParentNotFound
					}
					return &StoreError{Op: "load destination parent", Err: err}
				}
				if err := ensureNotDescendant(tx, item.ID, parent); err != nil {
					return err
				}
				newLevel = parent.LevelNumber + 1
			} else {
				newLevel = 1
			}
		}

		var destCount int64
		if err := siblingScope(tx, item.ProjectID, newParentID).Count(&destCount).Error; err != nil {
			return &StoreError{Op: "count destination siblings", Err: err}
		}

		// Clamp the target position to the destination group's valid range.
		// The moved item is already counted when the group is unchanged.
		maxOrder := int(destCount)
		if sameGroup {
			maxOrder--
		}
		newOrder := input.NewSortOrder
		if newOrder < 0 {
			newOrder = 0
		}
		if newOrder > maxOrder {
			newOrder = maxOrder
		}

		switch {
		case sameGroup && newOrder == item.SortOrder:
			// Position unchanged, nothing to shift.
		case sameGroup && newOrder < item.SortOrder:
			if err := shiftSortOrder(tx, item.ProjectID, newParentID, newOrder, item.SortOrder-1, +1); err != nil {
				return err
			}
		case sameGroup:
			if err := shiftSortOrder(tx, item.ProjectID, newParentID, item.SortOrder+1, newOrder, -1); err != nil {
				return err
			}
		default:
			if err := shiftSortOrder(tx, item.ProjectID, newParentID, newOrder, -1, +1); err != nil {
				return err
			}
			if err := shiftSortOrder(tx, item.ProjectID, item.ParentID, item.SortOrder+1, -1, -1); err != nil {
				return err
			}
		}

		levelDelta := newLevel - item.LevelNumber
		if err := tx.Model(&item).Updates(map[string]interface{}{
			"parent_id":    newParentID,
			"sort_order":   newOrder,
			"level_number": newLevel,
		}).Error; err != nil {
			return &StoreError{Op: "move item", Err: err}
		}
		item.ParentID = newParentID
		item.SortOrder = newOrder
		item.LevelNumber = newLevel

		if levelDelta != 0 {
			if err := cascadeLevelDelta(tx, item.ID, levelDelta); err != nil {
				return err
			}
		}

		newSnapshot := reorderSnapshot{
			ParentID:    item.ParentID,
			SortOrder:   item.SortOrder,
			LevelNumber: item.LevelNumber,
		}
		return recordChange(tx, item.ID, input.ChangedBy, entity.ChangeTypeReorder, toJSON(oldSnapshot), toJSON(newSnapshot), input.ChangeReason)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// siblingScope narrows a query to one sibling group: the items sharing a
// project and a parent, where a nil parent means the root group.
func siblingScope(tx *gorm.DB, projectID uuid.UUID, parentID *uuid.UUID) *gorm.DB {
	q := tx.Model(&entity.WBSItem{}).Where("project_id = ?", projectID)
	if parentID == nil {
		return q.Where("parent_id IS NULL")
	}
	return q.Where("parent_id = ?", *parentID)
}

// shiftSortOrder adds delta to every sibling whose sort order falls in
// [from, to]. A negative to means "to the end of the group".
func shiftSortOrder(tx *gorm.DB, projectID uuid.UUID, parentID *uuid.UUID, from, to, delta int) error {
	q := siblingScope(tx, projectID, parentID).Where("sort_order >= ?", from)
	if to >= 0 {
		q = q.Where("sort_order <= ?", to)
	}
	if err := q.Update("sort_order", gorm.Expr("sort_order + ?", delta)).Error; err != nil {
		return &StoreError{Op: "shift sort order", Err: err}
	}
	return nil
}

// cascadeLevelDelta walks the subtree under rootID breadth-first and applies
// the depth delta to every descendant, keeping level numbers consistent with
// ancestry after a cross-parent move.
func cascadeLevelDelta(tx *gorm.DB, rootID uuid.UUID, delta int) error {
	frontier := []uuid.UUID{rootID}
	for len(frontier) > 0 {
		var childIDs []uuid.UUID
		if err := tx.Model(&entity.WBSItem{}).Where("parent_id IN ?", frontier).Pluck("id", &childIDs).Error; err != nil {
			return &StoreError{Op: "load descendants", Err: err}
		}
		if len(childIDs) == 0 {
			return nil
		}
		if err := tx.Model(&entity.WBSItem{}).Where("id IN ?", childIDs).Update("level_number", gorm.Expr("level_number + ?", delta)).Error; err != nil {
			return &StoreError{Op: "shift descendant levels", Err: err}
		}
		frontier = childIDs
	}
	return nil
}

// ensureNotDescendant rejects a move that would place an item underneath its
// own subtree, which would orphan the whole branch into a cycle.
func ensureNotDescendant(tx *gorm.DB, itemID uuid.UUID, parent entity.WBSItem) error {
	current := parent
	for {
		if current.ID == itemID {
			verr := &ValidationError{}
			verr.add("newParentId", "destination parent is a descendant of the item being moved")
			return verr
		}
		if current.ParentID == nil {
			return nil
		}
		var next entity.WBSItem
		if err := tx.First(&next, "id = ?", *current.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return &StoreError{Op: "walk ancestors", Err: err}
		}
		current = next
	}
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
