package utils

import (
	"github.com/google/uuid"

	"github.com/nick0918964388/pcm3-sub000/internal/appcontext"
	"github.com/nick0918964388/pcm3-sub000/internal/entity"
)

func UserHasProjectAccess(ctx *appcontext.Context, userID uuid.UUID, projectID uuid.UUID) bool {
	var user entity.User
	var project entity.Project

	if err := ctx.DB.First(&user, "id = ?", userID).Error; err != nil {
		return false
	}

	if user.CompanyID == nil {
		return false
	}

	if err := ctx.DB.Where("id = ? AND company_id = ?", projectID, user.CompanyID).First(&project).Error; err != nil {
		return false
	}

	return true
}

func UserHasItemAccess(ctx *appcontext.Context, userID uuid.UUID, itemID uuid.UUID) bool {
	var item entity.WBSItem

	if err := ctx.DB.First(&item, "id = ?", itemID).Error; err != nil {
		return false
	}

	return UserHasProjectAccess(ctx, userID, item.ProjectID)
}
