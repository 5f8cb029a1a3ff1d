package hierarchy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nick0918964388/pcm3-sub000/internal/entity"
)

func flatItem(projectID uuid.UUID, parentID *uuid.UUID, code string, level, order int) entity.WBSItem {
	return entity.WBSItem{
		ID:          uuid.New(),
		ProjectID:   projectID,
		ParentID:    parentID,
		Code:        code,
		Name:        "item " + code,
		LevelNumber: level,
		SortOrder:   order,
	}
}

func TestBuildHierarchy_NestsChildrenInInputOrder(t *testing.T) {
	projectID := uuid.New()
	root := flatItem(projectID, nil, "1", 1, 0)
	childA := flatItem(projectID, &root.ID, "1.1", 2, 0)
	childB := flatItem(projectID, &root.ID, "1.2", 2, 1)
	grandchild := flatItem(projectID, &childB.ID, "1.2.1", 3, 0)

	tree := BuildHierarchy([]entity.WBSItem{root, childA, childB, grandchild})

	require.Len(t, tree, 1)
	assert.Equal(t, "1", tree[0].Code)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "1.1", tree[0].Children[0].Code)
	assert.Equal(t, "1.2", tree[0].Children[1].Code)
	require.Len(t, tree[0].Children[1].Children, 1)
	assert.Equal(t, "1.2.1", tree[0].Children[1].Children[0].Code)
}

func TestBuildHierarchy_MultipleRoots(t *testing.T) {
	projectID := uuid.New()
	rootA := flatItem(projectID, nil, "1", 1, 0)
	rootB := flatItem(projectID, nil, "2", 1, 1)

	tree := BuildHierarchy([]entity.WBSItem{rootA, rootB})

	require.Len(t, tree, 2)
	assert.Equal(t, "1", tree[0].Code)
	assert.Equal(t, "2", tree[1].Code)
}

func TestBuildHierarchy_DropsItemsWithStaleParent(t *testing.T) {
	projectID := uuid.New()
	root := flatItem(projectID, nil, "1", 1, 0)
	missing := uuid.New()
	orphan := flatItem(projectID, &missing, "9.9", 2, 0)

	tree := BuildHierarchy([]entity.WBSItem{root, orphan})

	require.Len(t, tree, 1)
	assert.Equal(t, "1", tree[0].Code)
	assert.Empty(t, tree[0].Children)
}

func TestBuildHierarchy_EmptyInput(t *testing.T) {
	assert.Empty(t, BuildHierarchy(nil))
}

func TestBuildHierarchy_DepthMatchesLevelNumber(t *testing.T) {
	projectID := uuid.New()
	root := flatItem(projectID, nil, "1", 1, 0)
	child := flatItem(projectID, &root.ID, "1.1", 2, 0)
	grandchild := flatItem(projectID, &child.ID, "1.1.1", 3, 0)

	tree := BuildHierarchy([]entity.WBSItem{root, child, grandchild})

	var walk func(nodes []*TreeNode, depth int)
	walk = func(nodes []*TreeNode, depth int) {
		for _, node := range nodes {
			assert.Equal(t, depth, node.LevelNumber, "node %s", node.Code)
			walk(node.Children, depth+1)
		}
	}
	walk(tree, 1)
}
