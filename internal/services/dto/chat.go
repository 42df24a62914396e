package dto

import (
	"time"

	"yuanfen_backend/internal/models"
)

type SendMessageRequest struct {
	MatchID string `json:"matchId" binding:"required"`
	Content string `json:"content" binding:"required"`
	Type    string `json:"type" binding:"required"`
}

type MarkReadRequest struct {
	MatchID       string `json:"matchId" binding:"required"`
	LastMessageID string `json:"lastMessageId" binding:"required"`
}

type MarkReadResult struct {
	Success bool  `json:"success"`
	Updated int64 `json:"updated"`
}

type MessageView struct {
	ID           string             `json:"id"`
	MatchID      string             `json:"matchId"`
	SenderUserID string             `json:"senderId"`
	Type         models.MessageType `json:"type"`
	Content      string             `json:"content"`
	Timestamp    time.Time          `json:"timestamp"`
	IsRead       bool               `json:"isRead"`
}

// HistoryPage lists a thread's messages newest-first.
type HistoryPage struct {
	Messages   []MessageView `json:"messages"`
	Pagination Pagination    `json:"pagination"`
}

func NewMessageView(m *models.Message) MessageView {
	return MessageView{
		ID:           m.ID,
		MatchID:      m.MatchID,
		SenderUserID: m.SenderUserID,
		Type:         m.Type,
		Content:      m.Content,
		Timestamp:    m.SentAt,
		IsRead:       m.IsRead,
	}
}
