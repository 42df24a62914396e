package services

import (
	"yuanfen_backend/internal/models"
	"yuanfen_backend/internal/repositories"
	"yuanfen_backend/internal/scenes"
	"yuanfen_backend/internal/services/dto"
	"yuanfen_backend/pkg/apperrors"
)

const (
	FeedMinPageSize = 1
	FeedMaxPageSize = 50
)

type FeedService interface {
	// GetFeed returns a stable page of cards visible to a user browsing the
	// scene under the given role. Pure read, no side effects.
	GetFeed(scene models.Scene, role models.Role, page, pageSize int) (*dto.FeedPage, error)
}

type feedService struct {
	cardRepo repositories.CardRepository
}

func NewFeedService(cardRepo repositories.CardRepository) FeedService {
	return &feedService{cardRepo: cardRepo}
}

func (s *feedService) GetFeed(scene models.Scene, role models.Role, page, pageSize int) (*dto.FeedPage, error) {
	if page < 1 {
		return nil, apperrors.ErrInvalidArgument("feed", "page must be >= 1")
	}
	if pageSize < FeedMinPageSize || pageSize > FeedMaxPageSize {
		return nil, apperrors.ErrInvalidArgument("feed", "pageSize must be between 1 and 50")
	}

	def, ok := scenes.Lookup(scene)
	if !ok {
		return nil, apperrors.ErrUnknownScene
	}
	if !def.ValidRole(role) {
		return nil, apperrors.ErrUnknownRole
	}

	// Housing listings are visible to every role in the scene; asymmetric
	// scenes show the requester only the complementary role's cards.
	var ownerRole *models.Role
	if def.RoleFiltered {
		complement := scenes.Complement(role)
		ownerRole = &complement
	}

	offset := (page - 1) * pageSize
	cards, total, err := s.cardRepo.FindFeed(scene, ownerRole, offset, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	views := make([]dto.CardView, 0, len(cards))
	for i := range cards {
		views = append(views, dto.NewCardView(&cards[i]))
	}

	return &dto.FeedPage{
		Cards: views,
		Pagination: dto.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
			HasMore:  int64(page*pageSize) < total,
		},
	}, nil
}
