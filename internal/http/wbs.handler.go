package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nick0918964388/pcm3-sub000/internal/appcontext"
	"github.com/nick0918964388/pcm3-sub000/internal/hierarchy"
	"github.com/nick0918964388/pcm3-sub000/internal/utils"
)

func CreateWBSItem(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createItemRequest struct {
			ParentID     *string `json:"parentId"`
			Code         string  `json:"code" binding:"required"`
			Name         string  `json:"name" binding:"required"`
			Description  string  `json:"description"`
			ChangeReason string  `json:"changeReason"`
		}

		projectID, err := uuid.Parse(c.Param("projectID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
			return
		}

		var request createItemRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if !utils.UserHasProjectAccess(ctx, userID, projectID) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User does not have access to this resource"})
			return
		}

		input := hierarchy.CreateItemInput{
			ProjectID:    projectID,
			Code:         request.Code,
			Name:         request.Name,
			Description:  request.Description,
			ChangedBy:    userID,
			ChangeReason: request.ChangeReason,
		}
		if request.ParentID != nil {
			parentID, err := uuid.Parse(*request.ParentID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent ID"})
				return
			}
			input.ParentID = &parentID
		}

		item, err := hierarchy.CreateItem(ctx, input)
		if err != nil {
			respondEngineError(ctx, c, "Failed to create WBS item", err)
			return
		}

		if err := utils.IndexWBSItem(ctx, item); err != nil {
			ctx.Logger.Warn("Failed to index WBS item", zap.Error(err))
		}

		c.JSON(http.StatusCreated, gin.H{"item": item})
	}
}

func GetWBSTree(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := uuid.Parse(c.Param("projectID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
			return
		}

		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if !utils.UserHasProjectAccess(ctx, userID, projectID) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User does not have access to this resource"})
			return
		}

		tree, err := hierarchy.ProjectTree(ctx, projectID)
		if err != nil {
			ctx.Logger.Error("Failed to build WBS tree", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build WBS tree"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"tree": tree})
	}
}

func UpdateWBSItem(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type updateItemRequest struct {
			Code         *string `json:"code"`
			Name         *string `json:"name"`
			Description  *string `json:"description"`
			ChangeReason string  `json:"changeReason"`
		}

		itemID, err := uuid.Parse(c.Param("itemID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
			return
		}

		var request updateItemRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if !utils.UserHasItemAccess(ctx, userID, itemID) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User does not have access to this resource"})
			return
		}

		item, err := hierarchy.UpdateItem(ctx, itemID, hierarchy.UpdateItemInput{
			Code:         request.Code,
			Name:         request.Name,
			Description:  request.Description,
			ChangedBy:    userID,
			ChangeReason: request.ChangeReason,
		})
		if err != nil {
			respondEngineError(ctx, c, "Failed to update WBS item", err)
			return
		}

		if err := utils.IndexWBSItem(ctx, item); err != nil {
			ctx.Logger.Warn("Failed to reindex WBS item", zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}

func DeleteWBSItem(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type deleteItemRequest struct {
			ChangeReason string `json:"changeReason"`
		}

		itemID, err := uuid.Parse(c.Param("itemID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
			return
		}

		var request deleteItemRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if !utils.UserHasItemAccess(ctx, userID, itemID) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User does not have access to this resource"})
			return
		}

		if err := hierarchy.DeleteItem(ctx, itemID, userID, request.ChangeReason); err != nil {
			respondEngineError(ctx, c, "Failed to delete WBS item", err)
			return
		}

		if err := utils.RemoveWBSItem(ctx, itemID.String()); err != nil {
			ctx.Logger.Warn("Failed to remove WBS item from index", zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{"message": "WBS item deleted"})
	}
}

func ReorderWBSItem(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type reorderItemRequest struct {
			NewParentID  *string `json:"newParentId"`
			MoveToRoot   bool    `json:"moveToRoot"`
			NewSortOrder int     `json:"newSortOrder"`
			ChangeReason string  `json:"changeReason"`
		}

		itemID, err := uuid.Parse(c.Param("itemID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
			return
		}

		var request reorderItemRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if !utils.UserHasItemAccess(ctx, userID, itemID) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User does not have access to this resource"})
			return
		}

		input := hierarchy.ReorderItemInput{
			NewSortOrder: request.NewSortOrder,
			ChangedBy:    userID,
			ChangeReason: request.ChangeReason,
		}
		switch {
		case request.MoveToRoot:
			input.ParentSpecified = true
		case request.NewParentID != nil:
			parentID, err := uuid.Parse(*request.NewParentID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent ID"})
				return
			}
			input.ParentSpecified = true
			input.NewParentID = &parentID
		}

		item, err := hierarchy.ReorderItem(ctx, itemID, input)
		if err != nil {
			respondEngineError(ctx, c, "Failed to reorder WBS item", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}

// respondEngineError maps the engine's error taxonomy onto HTTP statuses.
func respondEngineError(ctx *appcontext.Context, c *gin.Context, message string, err error) {
	var verr *hierarchy.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": verr.Fields})
	case errors.Is(err, hierarchy.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "WBS item not found"})
	case errors.Is(err, hierarchy.ErrParentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Parent WBS item not found"})
	case errors.Is(err, hierarchy.ErrItemHasChildren):
		c.JSON(http.StatusConflict, gin.H{"error": "WBS item still has children"})
	default:
		ctx.Logger.Error(message, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
