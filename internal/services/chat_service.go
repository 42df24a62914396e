package services

import (
	"errors"

	"yuanfen_backend/internal/logger"
	"yuanfen_backend/internal/models"
	"yuanfen_backend/internal/repositories"
	"yuanfen_backend/internal/services/dto"
	"yuanfen_backend/pkg/apperrors"
)

const (
	ChatMinPageSize = 1
	ChatMaxPageSize = 100
)

type ChatService interface {
	SendMessage(userID string, req *dto.SendMessageRequest) (*dto.MessageView, error)
	// GetHistory returns the thread newest first. A page walked backwards
	// reconstructs the full conversation with no gaps.
	GetHistory(matchID, userID string, page, pageSize int) (*dto.HistoryPage, error)
	// MarkRead flips IsRead on the counterpart's messages up to and
	// including the cursor message. The caller's own messages are never
	// touched.
	MarkRead(userID string, req *dto.MarkReadRequest) (*dto.MarkReadResult, error)
}

type chatService struct {
	matchRepo   repositories.MatchRepository
	messageRepo repositories.MessageRepository
}

func NewChatService(matchRepo repositories.MatchRepository, messageRepo repositories.MessageRepository) ChatService {
	return &chatService{
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
	}
}

func (s *chatService) SendMessage(userID string, req *dto.SendMessageRequest) (*dto.MessageView, error) {
	match, err := s.findAuthorized(req.MatchID, userID)
	if err != nil {
		return nil, err
	}

	msgType := models.MessageType(req.Type)
	if !msgType.Valid() {
		return nil, apperrors.ErrInvalidMessageType
	}
	if match.Status.Terminal() {
		return nil, apperrors.ErrInvalidState("chat", "conversation is closed")
	}

	msg := &models.Message{
		MatchID:      match.ID,
		SenderUserID: userID,
		Type:         msgType,
		Content:      req.Content,
	}
	if err := s.messageRepo.Append(msg); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// The counterpart has something unread now.
	if err := s.flagUnread(match, match.CounterpartOf(userID)); err != nil {
		logger.WithError(err).Warn("failed to flag unread", "match_id", match.ID)
	}

	view := dto.NewMessageView(msg)
	return &view, nil
}

func (s *chatService) GetHistory(matchID, userID string, page, pageSize int) (*dto.HistoryPage, error) {
	if page < 1 {
		return nil, apperrors.ErrInvalidArgument("chat", "page must be >= 1")
	}
	if pageSize < ChatMinPageSize || pageSize > ChatMaxPageSize {
		return nil, apperrors.ErrInvalidArgument("chat", "pageSize must be between 1 and 100")
	}

	if _, err := s.findAuthorized(matchID, userID); err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	messages, total, err := s.messageRepo.ListByMatch(matchID, offset, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	views := make([]dto.MessageView, 0, len(messages))
	for i := range messages {
		views = append(views, dto.NewMessageView(&messages[i]))
	}

	return &dto.HistoryPage{
		Messages: views,
		Pagination: dto.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
			HasMore:  int64(page*pageSize) < total,
		},
	}, nil
}

func (s *chatService) MarkRead(userID string, req *dto.MarkReadRequest) (*dto.MarkReadResult, error) {
	match, err := s.findAuthorized(req.MatchID, userID)
	if err != nil {
		return nil, err
	}

	cursor, err := s.messageRepo.FindByID(req.LastMessageID)
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if cursor.MatchID != match.ID {
		return nil, apperrors.ErrMessageNotFound
	}

	updated, err := s.messageRepo.MarkReadUpTo(match.ID, userID, cursor.Seq)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// The flag drop is conditional on the thread being fully caught up and
	// runs as one statement, so it cannot race a concurrent send.
	if err := s.matchRepo.ClearUnread(match.ID, userID); err != nil {
		logger.WithError(err).Warn("failed to clear unread", "match_id", match.ID)
	}

	return &dto.MarkReadResult{Success: true, Updated: updated}, nil
}

func (s *chatService) flagUnread(match *models.Match, userID string) error {
	if match.InitiatorUserID == userID {
		return s.matchRepo.SetInitiatorUnread(match.ID, true)
	}
	return s.matchRepo.SetTargetUnread(match.ID, true)
}

func (s *chatService) findAuthorized(matchID, userID string) (*models.Match, error) {
	match, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !match.IsParticipant(userID) {
		return nil, apperrors.ErrNotParticipant
	}
	return match, nil
}
