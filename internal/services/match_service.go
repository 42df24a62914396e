package services

import (
	"errors"

	"yuanfen_backend/internal/models"
	"yuanfen_backend/internal/repositories"
	"yuanfen_backend/internal/services/dto"
	"yuanfen_backend/pkg/apperrors"
)

type MatchService interface {
	ListMatches(userID string, statusFilter string, page, pageSize int) (*dto.MatchListPage, error)
	GetMatch(matchID, userID string) (*dto.MatchDetailView, error)
	// UpdateStatus applies one state-machine transition on behalf of a
	// participant. Transitions out of terminal states are rejected.
	UpdateStatus(matchID, userID string, next models.MatchStatus) error
	// Unmatch cancels the match, irreversibly.
	Unmatch(matchID, userID string) error
	// ExpireMatch is the hook for the external expiry scheduler; it is not
	// participant-scoped.
	ExpireMatch(matchID string) error
}

type matchService struct {
	matchRepo repositories.MatchRepository
	cardRepo  repositories.CardRepository
	userRepo  repositories.UserRepository
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	cardRepo repositories.CardRepository,
	userRepo repositories.UserRepository,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		cardRepo:  cardRepo,
		userRepo:  userRepo,
	}
}

func (s *matchService) ListMatches(userID string, statusFilter string, page, pageSize int) (*dto.MatchListPage, error) {
	if page < 1 {
		return nil, apperrors.ErrInvalidArgument("match", "page must be >= 1")
	}
	if pageSize < FeedMinPageSize || pageSize > FeedMaxPageSize {
		return nil, apperrors.ErrInvalidArgument("match", "pageSize must be between 1 and 50")
	}

	var status *models.MatchStatus
	if statusFilter != "" && statusFilter != "all" {
		st := models.MatchStatus(statusFilter)
		if !st.Valid() {
			return nil, apperrors.ErrInvalidArgument("match", "unknown status filter")
		}
		status = &st
	}

	offset := (page - 1) * pageSize
	matches, total, err := s.matchRepo.ListByUser(userID, status, offset, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	views := make([]dto.MatchView, 0, len(matches))
	for i := range matches {
		views = append(views, dto.NewMatchView(&matches[i], userID))
	}

	return &dto.MatchListPage{
		Matches: views,
		Pagination: dto.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
			HasMore:  int64(page*pageSize) < total,
		},
	}, nil
}

func (s *matchService) GetMatch(matchID, userID string) (*dto.MatchDetailView, error) {
	match, err := s.findAuthorized(matchID, userID)
	if err != nil {
		return nil, err
	}

	view := &dto.MatchDetailView{
		MatchView: dto.NewMatchView(match, userID),
	}

	if len(match.Details) > 0 {
		view.Details = make(map[string]string, len(match.Details))
		for _, d := range match.Details {
			view.Details[d.Key] = d.Value
		}
	}

	// Counterpart enrichment is best-effort: the card or profile may have
	// been withdrawn since the match was made.
	if card, err := s.cardRepo.FindByID(match.TargetCardID); err == nil {
		cv := dto.NewCardView(card)
		view.CardInfo = &cv
	}
	counterpartID := match.CounterpartOf(userID)
	if user, err := s.userRepo.FindByID(counterpartID); err == nil {
		view.UserInfo = &dto.UserInfo{
			ID:        user.ID,
			Nickname:  user.Nickname,
			AvatarURL: user.AvatarURL,
		}
	}

	return view, nil
}

func (s *matchService) UpdateStatus(matchID, userID string, next models.MatchStatus) error {
	if !next.Valid() {
		return apperrors.ErrInvalidArgument("match", "unknown status")
	}

	match, err := s.findAuthorized(matchID, userID)
	if err != nil {
		return err
	}

	return s.transition(match, next)
}

func (s *matchService) Unmatch(matchID, userID string) error {
	match, err := s.findAuthorized(matchID, userID)
	if err != nil {
		return err
	}
	return s.transition(match, models.MatchStatusCancelled)
}

func (s *matchService) ExpireMatch(matchID string) error {
	match, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return apperrors.ErrMatchNotFound
		}
		return apperrors.InternalError(err)
	}
	return s.transition(match, models.MatchStatusExpired)
}

func (s *matchService) transition(match *models.Match, next models.MatchStatus) error {
	if !match.Status.CanTransition(next) {
		return apperrors.ErrInvalidState("match",
			"cannot transition from "+string(match.Status)+" to "+string(next))
	}

	isActive := match.IsActive && !next.Terminal()
	if err := s.matchRepo.UpdateStatus(match.ID, next, isActive); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *matchService) findAuthorized(matchID, userID string) (*models.Match, error) {
	match, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !match.IsParticipant(userID) {
		return nil, apperrors.ErrNotParticipant
	}
	return match, nil
}
