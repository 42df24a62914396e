package repositories

import (
	"errors"
	"time"

	"yuanfen_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	// Append inserts a message with a server-assigned SentAt that never goes
	// backwards within the thread. Seq (DB-assigned) breaks same-instant ties.
	Append(msg *models.Message) error
	FindByID(id string) (*models.Message, error)
	// ListByMatch returns messages newest-first: (sent_at, seq) descending.
	ListByMatch(matchID string, offset, limit int) ([]models.Message, int64, error)
	// MarkReadUpTo flips is_read on messages of the thread that were NOT sent
	// by readerUserID and whose seq is at or below upToSeq. Returns the number
	// of rows flipped.
	MarkReadUpTo(matchID, readerUserID string, upToSeq int64) (int64, error)
}

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Append(msg *models.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		var last models.Message
		err := tx.Where("match_id = ?", msg.MatchID).
			Order("seq DESC").Limit(1).Take(&last).Error
		switch {
		case err == nil:
			if last.SentAt.After(now) {
				now = last.SentAt
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first message of the thread
		default:
			return err
		}

		msg.SentAt = now
		msg.IsRead = false
		return tx.Create(msg).Error
	})
}

func (r *MessageRepositoryImpl) FindByID(id string) (*models.Message, error) {
	var msg models.Message
	err := r.db.First(&msg, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

func (r *MessageRepositoryImpl) ListByMatch(matchID string, offset, limit int) ([]models.Message, int64, error) {
	query := r.db.Model(&models.Message{}).Where("match_id = ?", matchID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := query.
		Order("sent_at DESC").Order("seq DESC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *MessageRepositoryImpl) MarkReadUpTo(matchID, readerUserID string, upToSeq int64) (int64, error) {
	result := r.db.Model(&models.Message{}).
		Where("match_id = ? AND sender_user_id <> ? AND seq <= ? AND is_read = ?",
			matchID, readerUserID, upToSeq, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}
