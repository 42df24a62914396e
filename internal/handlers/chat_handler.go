package handlers

import (
	"net/http"

	"yuanfen_backend/internal/logger"
	"yuanfen_backend/internal/middleware"
	"yuanfen_backend/internal/services"
	"yuanfen_backend/internal/services/dto"
	"yuanfen_backend/internal/validator"
	"yuanfen_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
	}
}

func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.POST("/send", h.SendMessage)
		chat.GET("/history/:matchId", h.GetHistory)
		chat.POST("/read", h.MarkRead)
	}
}

// SendMessage appends a message to a match thread. A malformed payload is
// rejected as unprocessable rather than a plain bad request, so clients can
// tell a broken body apart from a rejected one.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.bindUnprocessable(c, &req) {
		return
	}

	msg, err := h.chatService.SendMessage(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	matchID := c.Param("matchId")

	page, ok := h.QueryInt(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := h.QueryInt(c, "pageSize", 20)
	if !ok {
		return
	}

	history, err := h.chatService.GetHistory(matchID, userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.MarkReadRequest
	if !h.bindUnprocessable(c, &req) {
		return
	}

	result, err := h.chatService.MarkRead(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ChatHandler) bindUnprocessable(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind chat payload", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.UnprocessableError(err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Chat validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.UnprocessableError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}
