package utils

import (
	"fmt"

	"github.com/nick0918964388/pcm3-sub000/internal/appcontext"
	"github.com/nick0918964388/pcm3-sub000/internal/entity"
)

func WBSItemToDocument(item *entity.WBSItem) map[string]interface{} {
	doc := map[string]interface{}{
		"id":           item.ID.String(),
		"code":         item.Code,
		"name":         item.Name,
		"description":  item.Description,
		"project_id":   item.ProjectID.String(),
		"level_number": item.LevelNumber,
	}
	if item.ParentID != nil {
		doc["parent_id"] = item.ParentID.String()
	}
	return doc
}

func IndexWBSItem(ctx *appcontext.Context, item *entity.WBSItem) error {
	if ctx.MeilisearchClient == nil {
		return nil
	}
	_, err := ctx.MeilisearchClient.Index("wbs_items").AddDocuments([]map[string]interface{}{WBSItemToDocument(item)})
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	return nil
}

func RemoveWBSItem(ctx *appcontext.Context, id string) error {
	if ctx.MeilisearchClient == nil {
		return nil
	}
	_, err := ctx.MeilisearchClient.Index("wbs_items").DeleteDocument(id)
	if err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	return nil
}
