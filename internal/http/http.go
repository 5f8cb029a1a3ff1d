package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nick0918964388/pcm3-sub000/internal/appcontext"
	"github.com/nick0918964388/pcm3-sub000/internal/http/middleware"
)

type APIService struct {
	engine  *gin.Engine
	context *appcontext.Context
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSMiddleware())

	service := &APIService{
		engine:  engine,
		context: ctx,
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	v1 := h.engine.Group("/api/v1")
	h.setupAuthRoutes(v1)
	h.setupProjectRoutes(v1)
	h.setupWBSRoutes(v1)
	h.setupHistoryRoutes(v1)
	h.setupSearchRoutes(v1)
	h.setupCompanyRoutes(v1)
}

func (h *APIService) setupAuthRoutes(group *gin.RouterGroup) {
	auth := group.Group("/auth")

	auth.GET("/login", Login(h.context))
	auth.GET("/callback", Callback(h.context))
	auth.POST("/logout", Logout(h.context))
	auth.GET("/me", middleware.JWTAuthMiddleware(), GetUserInfo(h.context))
}

func (h *APIService) setupProjectRoutes(group *gin.RouterGroup) {
	projects := group.Group("/projects")
	projects.Use(middleware.JWTAuthMiddleware())

	projects.GET("/", GetProjectsByUserID(h.context))
	projects.POST("/", CreateProject(h.context))
}

func (h *APIService) setupWBSRoutes(group *gin.RouterGroup) {
	wbs := group.Group("/wbs")
	wbs.Use(middleware.JWTAuthMiddleware())

	wbs.POST("/:projectID/items", CreateWBSItem(h.context))
	wbs.GET("/:projectID/tree", GetWBSTree(h.context))
	wbs.PATCH("/items/:itemID", UpdateWBSItem(h.context))
	wbs.DELETE("/items/:itemID", DeleteWBSItem(h.context))
	wbs.POST("/items/:itemID/reorder", ReorderWBSItem(h.context))
}

func (h *APIService) setupHistoryRoutes(group *gin.RouterGroup) {
	history := group.Group("/history")
	history.Use(middleware.JWTAuthMiddleware())

	history.GET("/items/:itemID", GetItemHistory(h.context))
	history.GET("/projects/:projectID", GetProjectHistory(h.context))
}

func (h *APIService) setupSearchRoutes(group *gin.RouterGroup) {
	search := group.Group("/search")
	search.Use(middleware.JWTAuthMiddleware())

	search.GET("/", SearchWBSItems(h.context))
}

func (h *APIService) setupCompanyRoutes(group *gin.RouterGroup) {
	companies := group.Group("/companies")
	companies.Use(middleware.JWTAuthMiddleware())

	companies.POST("/create", CreateCompany(h.context))
	companies.GET("/members", GetCompanyMembers(h.context))
	companies.POST("/invite", InviteUser(h.context))
}
