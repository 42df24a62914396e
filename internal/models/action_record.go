package models

import (
	"time"
)

// ActionRecord keeps the latest swipe an actor made on a card. One row per
// (actor, card) pair; repeats overwrite in place, which both bounds the table
// and gives match policies an O(1) lookup for reciprocity checks.
type ActionRecord struct {
	ActorUserID  string     `gorm:"primaryKey" json:"actor_user_id"`
	TargetCardID string     `gorm:"primaryKey;index:idx_actions_card_action,priority:1" json:"target_card_id"`
	Action       ActionType `gorm:"type:varchar(16);index:idx_actions_card_action,priority:2;not null" json:"action"`
	Scene        Scene      `gorm:"type:varchar(16);not null" json:"scene"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ActionRecord) TableName() string {
	return "action_records"
}
