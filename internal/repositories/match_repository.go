package repositories

import (
	"errors"

	"yuanfen_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrDuplicateMatch = errors.New("match already exists for this pair")
)

type MatchRepository interface {
	FindByID(id string) (*models.Match, error)
	FindByPair(initiatorUserID, targetCardID string) (*models.Match, error)
	// CreateWithDetails inserts the match and its details atomically. A
	// concurrent insert for the same (initiator, card) pair loses against the
	// unique index and surfaces as ErrDuplicateMatch, never as a second row.
	CreateWithDetails(match *models.Match, details []models.MatchDetail) error
	ListByUser(userID string, status *models.MatchStatus, offset, limit int) ([]models.Match, int64, error)
	UpdateStatus(id string, status models.MatchStatus, isActive bool) error
	SetInitiatorUnread(id string, unread bool) error
	SetTargetUnread(id string, unread bool) error
	// ClearUnread drops the reader's unread flag, but only while no unread
	// counterpart message remains in the thread. Runs as one statement so a
	// message landing concurrently cannot have its fresh flag overwritten.
	ClearUnread(id, readerUserID string) error
}

type MatchRepositoryImpl struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &MatchRepositoryImpl{db: db}
}

func (r *MatchRepositoryImpl) FindByID(id string) (*models.Match, error) {
	var match models.Match
	err := r.db.Preload("Details").First(&match, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *MatchRepositoryImpl) FindByPair(initiatorUserID, targetCardID string) (*models.Match, error) {
	var match models.Match
	err := r.db.Preload("Details").
		First(&match, "initiator_user_id = ? AND target_card_id = ?", initiatorUserID, targetCardID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *MatchRepositoryImpl) CreateWithDetails(match *models.Match, details []models.MatchDetail) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "initiator_user_id"}, {Name: "target_card_id"}},
			DoNothing: true,
		}).Create(match)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrDuplicateMatch
		}

		for i := range details {
			details[i].MatchID = match.ID
		}
		if len(details) > 0 {
			if err := tx.Create(&details).Error; err != nil {
				return err
			}
		}
		match.Details = details
		return nil
	})
}

func (r *MatchRepositoryImpl) ListByUser(userID string, status *models.MatchStatus, offset, limit int) ([]models.Match, int64, error) {
	query := r.db.Model(&models.Match{}).
		Where("initiator_user_id = ? OR target_user_id = ?", userID, userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var matches []models.Match
	err := query.Preload("Details").
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&matches).Error
	if err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

func (r *MatchRepositoryImpl) UpdateStatus(id string, status models.MatchStatus, isActive bool) error {
	result := r.db.Model(&models.Match{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "is_active": isActive})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *MatchRepositoryImpl) SetInitiatorUnread(id string, unread bool) error {
	return r.db.Model(&models.Match{}).Where("id = ?", id).
		Update("initiator_unread", unread).Error
}

func (r *MatchRepositoryImpl) SetTargetUnread(id string, unread bool) error {
	return r.db.Model(&models.Match{}).Where("id = ?", id).
		Update("target_unread", unread).Error
}

func (r *MatchRepositoryImpl) ClearUnread(id, readerUserID string) error {
	unreadLeft := r.db.Model(&models.Message{}).
		Select("1").
		Where("match_id = ? AND sender_user_id <> ? AND is_read = ?", id, readerUserID, false)

	return r.db.Model(&models.Match{}).
		Where("id = ?", id).
		Where("NOT EXISTS (?)", unreadLeft).
		Updates(map[string]interface{}{
			"initiator_unread": gorm.Expr("CASE WHEN initiator_user_id = ? THEN false ELSE initiator_unread END", readerUserID),
			"target_unread":    gorm.Expr("CASE WHEN target_user_id = ? THEN false ELSE target_unread END", readerUserID),
		}).Error
}
