package repositories

import (
	"yuanfen_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActionRepository interface {
	// Upsert records the actor's latest action on a card, overwriting any
	// previous one for the same pair.
	Upsert(rec *models.ActionRecord) error
	FindByPair(actorUserID, targetCardID string) (*models.ActionRecord, error)
	// HasReciprocalLike reports whether ownerUserID has a positive action on
	// any card published by actorUserID.
	HasReciprocalLike(actorUserID, ownerUserID string) (bool, error)
}

type ActionRepositoryImpl struct {
	db *gorm.DB
}

func NewActionRepository(db *gorm.DB) ActionRepository {
	return &ActionRepositoryImpl{db: db}
}

func (r *ActionRepositoryImpl) Upsert(rec *models.ActionRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_user_id"}, {Name: "target_card_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"action", "updated_at"}),
	}).Create(rec).Error
}

func (r *ActionRepositoryImpl) FindByPair(actorUserID, targetCardID string) (*models.ActionRecord, error) {
	var rec models.ActionRecord
	err := r.db.First(&rec, "actor_user_id = ? AND target_card_id = ?", actorUserID, targetCardID).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *ActionRepositoryImpl) HasReciprocalLike(actorUserID, ownerUserID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ActionRecord{}).
		Joins("JOIN cards ON cards.id = action_records.target_card_id").
		Where("action_records.actor_user_id = ?", ownerUserID).
		Where("cards.owner_user_id = ?", actorUserID).
		Where("action_records.action IN ?", []models.ActionType{models.ActionLike, models.ActionSuperlike}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
