package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nick0918964388/pcm3-sub000/internal/appcontext"
	"github.com/nick0918964388/pcm3-sub000/internal/hierarchy"
	"github.com/nick0918964388/pcm3-sub000/internal/utils"
)

func GetItemHistory(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := uuid.Parse(c.Param("itemID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
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

		entries, err := hierarchy.ItemHistory(ctx, itemID, historyLimitParam(c))
		if err != nil {
			ctx.Logger.Error("Failed to load item history", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load item history"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"history": entries})
	}
}

func GetProjectHistory(ctx *appcontext.Context) gin.HandlerFunc {
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

		entries, err := hierarchy.ProjectHistory(ctx, projectID, historyLimitParam(c))
		if err != nil {
			ctx.Logger.Error("Failed to load project history", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load project history"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"history": entries})
	}
}

func historyLimitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return limit
}
