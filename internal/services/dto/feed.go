package dto

import (
	"encoding/json"

	"yuanfen_backend/internal/models"
)

// CardView is the feed representation of a card.
type CardView struct {
	ID            string          `json:"id"`
	Scene         models.Scene    `json:"scene"`
	OwnerRole     models.Role     `json:"ownerRole"`
	DisplayFields json.RawMessage `json:"displayFields,omitempty"`
	OwnerUserID   *string         `json:"ownerUserId,omitempty"`
}

type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
	HasMore  bool  `json:"hasMore"`
}

type FeedPage struct {
	Cards      []CardView `json:"cards"`
	Pagination Pagination `json:"pagination"`
}

func NewCardView(card *models.Card) CardView {
	return CardView{
		ID:            card.ID,
		Scene:         card.Scene,
		OwnerRole:     card.OwnerRole,
		DisplayFields: json.RawMessage(card.DisplayFields),
		OwnerUserID:   card.OwnerUserID,
	}
}
