package services

import (
	"errors"
	"time"

	"yuanfen_backend/internal/logger"
	"yuanfen_backend/internal/models"
	"yuanfen_backend/internal/repositories"
	"yuanfen_backend/internal/services/dto"
	"yuanfen_backend/pkg/apperrors"
)

// DefaultMatchTTL is how long a fresh match stays actionable before the
// external scheduler may expire it.
const DefaultMatchTTL = 30 * 24 * time.Hour

type ActionService interface {
	// SubmitAction processes one swipe. Idempotent per (user, card) pair:
	// replaying a like returns the existing match instead of creating a
	// second one, and concurrent duplicates collapse onto the winner row.
	SubmitAction(userID, cardID string, action models.ActionType) (*dto.ActionResult, error)
}

type actionService struct {
	cardRepo   repositories.CardRepository
	matchRepo  repositories.MatchRepository
	actionRepo repositories.ActionRepository
	policy     MatchPolicy
}

func NewActionService(
	cardRepo repositories.CardRepository,
	matchRepo repositories.MatchRepository,
	actionRepo repositories.ActionRepository,
	policy MatchPolicy,
) ActionService {
	return &actionService{
		cardRepo:   cardRepo,
		matchRepo:  matchRepo,
		actionRepo: actionRepo,
		policy:     policy,
	}
}

func (s *actionService) SubmitAction(userID, cardID string, action models.ActionType) (*dto.ActionResult, error) {
	if !action.Valid() {
		return nil, apperrors.ErrInvalidAction
	}

	card, err := s.cardRepo.FindByID(cardID)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.actionRepo.Upsert(&models.ActionRecord{
		ActorUserID:  userID,
		TargetCardID: cardID,
		Action:       action,
		Scene:        card.Scene,
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if action == models.ActionDislike {
		return &dto.ActionResult{IsMatch: false, MatchID: nil}, nil
	}

	// Replay of a like on an already-matched pair: hand back the same match.
	if existing, err := s.matchRepo.FindByPair(userID, cardID); err == nil {
		return &dto.ActionResult{IsMatch: true, MatchID: &existing.ID}, nil
	} else if !errors.Is(err, repositories.ErrMatchNotFound) {
		return nil, apperrors.InternalError(err)
	}

	matched, err := s.policy.Decide(userID, card, action)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !matched {
		return &dto.ActionResult{IsMatch: false, MatchID: nil}, nil
	}

	expiresAt := time.Now().Add(DefaultMatchTTL)
	match := &models.Match{
		InitiatorUserID: userID,
		TargetCardID:    cardID,
		TargetUserID:    card.CounterpartUserID(),
		Scene:           card.Scene,
		Status:          models.MatchStatusMatched,
		IsActive:        true,
		ExpiresAt:       &expiresAt,
	}
	details := []models.MatchDetail{
		{Key: models.DetailOriginCard, Value: cardID},
	}

	err = s.matchRepo.CreateWithDetails(match, details)
	if errors.Is(err, repositories.ErrDuplicateMatch) {
		// Lost the race against an identical concurrent swipe. The contract
		// converts the conflict into the idempotent success.
		winner, ferr := s.matchRepo.FindByPair(userID, cardID)
		if ferr != nil {
			return nil, apperrors.InternalError(ferr)
		}
		return &dto.ActionResult{IsMatch: true, MatchID: &winner.ID}, nil
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("match created",
		"match_id", match.ID,
		"initiator", userID,
		"card", cardID,
		"scene", card.Scene,
	)

	return &dto.ActionResult{IsMatch: true, MatchID: &match.ID}, nil
}
