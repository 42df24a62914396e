package models

import (
	"time"
)

// Match records a successful pairing between an initiating user and a card.
// At most one match exists per (initiator, card) pair; the unique index is the
// storage-level guard that makes action submission idempotent under races.
type Match struct {
	BaseModel
	InitiatorUserID string `gorm:"uniqueIndex:ux_matches_initiator_card,priority:1;not null" json:"initiator_user_id"`
	TargetCardID    string `gorm:"uniqueIndex:ux_matches_initiator_card,priority:2;not null" json:"target_card_id"`
	TargetUserID    string `gorm:"index;not null" json:"target_user_id"`

	Scene    Scene       `gorm:"type:varchar(16);not null" json:"scene"`
	Status   MatchStatus `gorm:"type:varchar(16);default:'matched';not null" json:"status"`
	Score    float64     `gorm:"default:0" json:"score"` // opaque ranking value, passthrough
	IsActive bool        `gorm:"default:true" json:"is_active"`

	// Deadline for an external scheduler to apply expiry. This service never
	// runs the timer itself.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	// Per-participant unread indicators for the attached thread.
	InitiatorUnread bool `gorm:"default:false" json:"initiator_unread"`
	TargetUnread    bool `gorm:"default:false" json:"target_unread"`

	Details []MatchDetail `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

// IsParticipant reports whether userID is one of the two sides of the match.
func (m *Match) IsParticipant(userID string) bool {
	return userID == m.InitiatorUserID || userID == m.TargetUserID
}

// CounterpartOf returns the other participant's user id.
func (m *Match) CounterpartOf(userID string) string {
	if userID == m.InitiatorUserID {
		return m.TargetUserID
	}
	return m.InitiatorUserID
}

// Terminal statuses admit no further transitions.
func (s MatchStatus) Terminal() bool {
	switch s {
	case MatchStatusRejected, MatchStatusExpired, MatchStatusCancelled:
		return true
	}
	return false
}

// matchTransitions is the legal transition table. A fresh swipe-flow match is
// born "matched" (accepted-equivalent); "pending" exists for flows that need a
// mutual-confirmation step before that.
var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchStatusPending:  {MatchStatusAccepted, MatchStatusRejected, MatchStatusExpired, MatchStatusCancelled},
	MatchStatusMatched:  {MatchStatusExpired, MatchStatusCancelled},
	MatchStatusAccepted: {MatchStatusExpired, MatchStatusCancelled},
}

// CanTransition reports whether moving from s to next is legal.
func (s MatchStatus) CanTransition(next MatchStatus) bool {
	for _, allowed := range matchTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// MatchDetail is a denormalized key/value attribute owned by one match
// (e.g. origin_card_id, activity_name, house_type). Cascades with the match.
type MatchDetail struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID   string    `gorm:"index;not null" json:"match_id"`
	Key       string    `gorm:"column:detail_type;not null" json:"key"`
	Value     string    `gorm:"column:detail_value" json:"value"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

func (MatchDetail) TableName() string {
	return "match_details"
}

// DetailOriginCard is the detail key recording which card produced the match.
const DetailOriginCard = "origin_card_id"
