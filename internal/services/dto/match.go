package dto

import (
	"time"

	"yuanfen_backend/internal/models"
)

type ActionRequest struct {
	CardID string `json:"cardId" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type ActionResult struct {
	IsMatch bool    `json:"isMatch"`
	MatchID *string `json:"matchId"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// MatchView is the list representation of a match, seen from the calling
// participant's side.
type MatchView struct {
	ID           string             `json:"id"`
	Scene        models.Scene       `json:"scene"`
	Status       models.MatchStatus `json:"status"`
	Score        float64            `json:"score"`
	IsActive     bool               `json:"isActive"`
	Counterpart  string             `json:"counterpartUserId"`
	TargetCardID string             `json:"targetCardId"`
	Unread       bool               `json:"unread"`
	CreatedAt    time.Time          `json:"createdAt"`
	ExpiresAt    *time.Time         `json:"expiresAt,omitempty"`
}

type MatchListPage struct {
	Matches    []MatchView `json:"matches"`
	Pagination Pagination  `json:"pagination"`
}

type UserInfo struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// MatchDetailView adds the counterpart's card and profile plus the match's
// denormalized detail attributes.
type MatchDetailView struct {
	MatchView
	CardInfo *CardView         `json:"cardInfo,omitempty"`
	UserInfo *UserInfo         `json:"userInfo,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// NewMatchView renders a match from callerID's perspective.
func NewMatchView(m *models.Match, callerID string) MatchView {
	unread := m.TargetUnread
	if callerID == m.InitiatorUserID {
		unread = m.InitiatorUnread
	}
	return MatchView{
		ID:           m.ID,
		Scene:        m.Scene,
		Status:       m.Status,
		Score:        m.Score,
		IsActive:     m.IsActive,
		Counterpart:  m.CounterpartOf(callerID),
		TargetCardID: m.TargetCardID,
		Unread:       unread,
		CreatedAt:    m.CreatedAt,
		ExpiresAt:    m.ExpiresAt,
	}
}
