package services

import (
	"yuanfen_backend/internal/models"
	"yuanfen_backend/internal/repositories"
)

// MatchPolicy decides whether a positive action on a card turns into a match.
// Implementations must be pure with respect to their inputs plus stored action
// state: repeating the identical action must yield the identical decision.
// Which reciprocity or ranking rule the product actually wants is still an
// open question with the owners, so the rule is injected rather than
// hard-coded.
type MatchPolicy interface {
	Decide(actorUserID string, card *models.Card, action models.ActionType) (bool, error)
}

// AlwaysMatchPolicy matches on every like/superlike. The default wiring.
type AlwaysMatchPolicy struct{}

func (AlwaysMatchPolicy) Decide(_ string, _ *models.Card, action models.ActionType) (bool, error) {
	return action.Positive(), nil
}

// ReciprocalPolicy matches only when the card's owner has already liked one
// of the actor's own cards. Cards without an owner never match under this
// policy.
type ReciprocalPolicy struct {
	Actions repositories.ActionRepository
}

func (p ReciprocalPolicy) Decide(actorUserID string, card *models.Card, action models.ActionType) (bool, error) {
	if !action.Positive() {
		return false, nil
	}
	if card.OwnerUserID == nil || *card.OwnerUserID == "" {
		return false, nil
	}
	return p.Actions.HasReciprocalLike(actorUserID, *card.OwnerUserID)
}
