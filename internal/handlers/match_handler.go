package handlers

import (
	"net/http"

	"yuanfen_backend/internal/auth"
	"yuanfen_backend/internal/middleware"
	"yuanfen_backend/internal/models"
	"yuanfen_backend/internal/services"
	"yuanfen_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	*BaseHandler
	actionService services.ActionService
	matchService  services.MatchService
}

func NewMatchHandler(base *BaseHandler, actionService services.ActionService, matchService services.MatchService) *MatchHandler {
	return &MatchHandler{
		BaseHandler:   base,
		actionService: actionService,
		matchService:  matchService,
	}
}

func (h *MatchHandler) RegisterRoutes(r *gin.RouterGroup) {
	matches := r.Group("/matches")
	matches.Use(middleware.AuthMiddleware())
	{
		matches.POST("/action", h.SubmitAction)
		matches.GET("", h.ListMatches)
		matches.GET("/:matchId", h.GetMatch)
		matches.PUT("/:matchId/status", h.UpdateStatus)
		matches.POST("/:matchId/unmatch", h.Unmatch)
	}

	// Expiry is driven by the external scheduler, not by participants; the
	// route only accepts scheduler-role machine tokens.
	admin := r.Group("/admin/matches")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(auth.RoleScheduler))
	{
		admin.POST("/:matchId/expire", h.ExpireMatch)
	}
}

// SubmitAction records a swipe on a card and reports whether it produced
// a match. Repeating the same action returns the same match.
func (h *MatchHandler) SubmitAction(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ActionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.actionService.SubmitAction(userID, req.CardID, models.ActionType(req.Action))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status := c.Query("status")
	page, ok := h.QueryInt(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := h.QueryInt(c, "pageSize", 10)
	if !ok {
		return
	}

	matches, err := h.matchService.ListMatches(userID, status, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, matches)
}

func (h *MatchHandler) GetMatch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	matchID := c.Param("matchId")

	match, err := h.matchService.GetMatch(matchID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

func (h *MatchHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	matchID := c.Param("matchId")

	var req dto.StatusUpdateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.matchService.UpdateStatus(matchID, userID, models.MatchStatus(req.Status)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *MatchHandler) Unmatch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	matchID := c.Param("matchId")

	if err := h.matchService.Unmatch(matchID, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *MatchHandler) ExpireMatch(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	matchID := c.Param("matchId")

	if err := h.matchService.ExpireMatch(matchID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
