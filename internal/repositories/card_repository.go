package repositories

import (
	"errors"

	"yuanfen_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCardNotFound = errors.New("card not found")

type CardRepository interface {
	FindByID(id string) (*models.Card, error)
	// FindFeed returns a stable page of cards for a scene. ownerRole nil
	// means the scene-only filter (housing); otherwise only cards published
	// under that role are returned. Ordering is (created_at, id) ascending so
	// pages never shuffle between requests.
	FindFeed(scene models.Scene, ownerRole *models.Role, offset, limit int) ([]models.Card, int64, error)
}

type CardRepositoryImpl struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) CardRepository {
	return &CardRepositoryImpl{db: db}
}

func (r *CardRepositoryImpl) FindByID(id string) (*models.Card, error) {
	var card models.Card
	err := r.db.First(&card, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *CardRepositoryImpl) FindFeed(scene models.Scene, ownerRole *models.Role, offset, limit int) ([]models.Card, int64, error) {
	query := r.db.Model(&models.Card{}).Where("scene = ?", scene)
	if ownerRole != nil {
		query = query.Where("owner_role = ?", *ownerRole)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cards []models.Card
	err := query.
		Order("created_at ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&cards).Error
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}
