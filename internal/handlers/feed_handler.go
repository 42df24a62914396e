package handlers

import (
	"net/http"

	"yuanfen_backend/internal/middleware"
	"yuanfen_backend/internal/models"
	"yuanfen_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	*BaseHandler
	feedService services.FeedService
}

func NewFeedHandler(base *BaseHandler, feedService services.FeedService) *FeedHandler {
	return &FeedHandler{
		BaseHandler: base,
		feedService: feedService,
	}
}

func (h *FeedHandler) RegisterRoutes(r *gin.RouterGroup) {
	matches := r.Group("/matches")
	matches.Use(middleware.AuthMiddleware())
	{
		matches.GET("/cards", h.GetCards)
	}
}

// GetCards returns a page of candidate cards for the requested scene and
// the viewer's role in it.
func (h *FeedHandler) GetCards(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	scene := models.Scene(c.Query("scene"))
	role := models.Role(c.Query("role"))
	page, ok := h.QueryInt(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := h.QueryInt(c, "pageSize", 10)
	if !ok {
		return
	}

	feed, err := h.feedService.GetFeed(scene, role, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}
