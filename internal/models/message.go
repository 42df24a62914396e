package models

import (
	"time"
)

// Message is one event in a match's conversation thread. The log is
// append-only: IsRead is the only field that ever changes after insert.
type Message struct {
	ID           string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MatchID      string      `gorm:"index:idx_messages_match_seq,priority:1;not null" json:"match_id"`
	SenderUserID string      `gorm:"index;not null" json:"sender_user_id"`
	Type         MessageType `gorm:"type:varchar(16);default:'text'" json:"type"`
	Content      string      `gorm:"type:text" json:"content"`

	// Seq is a global insertion counter; within a thread it breaks ties
	// between messages sharing a SentAt instant, giving a total order.
	Seq    int64     `gorm:"autoIncrement;index:idx_messages_match_seq,priority:2,sort:desc" json:"seq"`
	SentAt time.Time `gorm:"index;not null" json:"sent_at"`

	IsRead bool `gorm:"default:false" json:"is_read"`
}

func (Message) TableName() string {
	return "messages"
}
