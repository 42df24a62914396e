package models

type Scene string
type Role string
type ActionType string
type MatchStatus string
type MessageType string

const (
	SceneHousing  Scene = "housing"
	SceneDating   Scene = "dating"
	SceneActivity Scene = "activity"

	RoleSeeker   Role = "seeker"
	RoleProvider Role = "provider"

	ActionLike      ActionType = "like"
	ActionDislike   ActionType = "dislike"
	ActionSuperlike ActionType = "superlike"

	MatchStatusPending   MatchStatus = "pending"
	MatchStatusMatched   MatchStatus = "matched"
	MatchStatusAccepted  MatchStatus = "accepted"
	MatchStatusRejected  MatchStatus = "rejected"
	MatchStatusExpired   MatchStatus = "expired"
	MatchStatusCancelled MatchStatus = "cancelled"

	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeVoice MessageType = "voice"
)

func (a ActionType) Valid() bool {
	switch a {
	case ActionLike, ActionDislike, ActionSuperlike:
		return true
	}
	return false
}

// Positive reports whether the action can ever produce a match.
func (a ActionType) Positive() bool {
	return a == ActionLike || a == ActionSuperlike
}

func (m MessageType) Valid() bool {
	switch m {
	case MessageTypeText, MessageTypeImage, MessageTypeVoice:
		return true
	}
	return false
}

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusPending, MatchStatusMatched, MatchStatusAccepted,
		MatchStatusRejected, MatchStatusExpired, MatchStatusCancelled:
		return true
	}
	return false
}
