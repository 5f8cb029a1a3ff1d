package hierarchy

import (
	"github.com/google/uuid"

	"github.com/nick0918964388/pcm3-sub000/internal/appcontext"
	"github.com/nick0918964388/pcm3-sub000/internal/entity"
)

// TreeNode is a WBS item together with its transient children list. Children
// are computed from the flat list on every build, never stored.
type TreeNode struct {
	entity.WBSItem
	Children []*TreeNode `json:"children"`
}

// BuildHierarchy assembles a tree from a flat item list. Items whose ParentID
// points at an id absent from the list are dropped: the flat list may contain
// stale references and a tree view must never fail because of one. Children
// keep the relative order of the input, so callers should pass items sorted
// by sort order.
func BuildHierarchy(items []entity.WBSItem) []*TreeNode {
	nodes := make(map[uuid.UUID]*TreeNode, len(items))
	for i := range items {
		nodes[items[i].ID] = &TreeNode{WBSItem: items[i]}
	}

	var roots []*TreeNode
	for i := range items {
		node := nodes[items[i].ID]
		if items[i].ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*items[i].ParentID]
		if !ok {
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// ProjectTree loads a project's items in sibling order and builds the tree.
func ProjectTree(ctx *appcontext.Context, projectID uuid.UUID) ([]*TreeNode, error) {
	items, err := ProjectItems(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return BuildHierarchy(items), nil
}

// ProjectItems returns the flat item list for a project ordered by sort order.
func ProjectItems(ctx *appcontext.Context, projectID uuid.UUID) ([]entity.WBSItem, error) {
	var items []entity.WBSItem
	if err := ctx.DB.Where("project_id = ?", projectID).Order("sort_order ASC").Find(&items).Error; err != nil {
		return nil, &StoreError{Op: "load project items", Err: err}
	}
	return items, nil
}
