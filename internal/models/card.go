package models

import (
	"gorm.io/datatypes"
)

// Card is a browsable candidate profile published for one scene. Cards are
// produced by the profile service and are strictly read-only here.
type Card struct {
	BaseModel
	Scene     Scene `gorm:"type:varchar(16);index:idx_cards_scene_role,priority:1;not null" json:"scene"`
	OwnerRole Role  `gorm:"type:varchar(16);index:idx_cards_scene_role,priority:2;not null" json:"owner_role"`

	// Scene-specific presentation bag: housing cards carry price/area/
	// facilities, dating cards carry age/education/interests, and so on.
	// Opaque to this service.
	DisplayFields datatypes.JSON `json:"display_fields"`

	// Weak reference to the publishing user. Nil for listing-style cards that
	// have no user behind them.
	OwnerUserID *string `gorm:"index" json:"owner_user_id,omitempty"`
}

func (Card) TableName() string {
	return "cards"
}

// CounterpartUserID resolves the user a match against this card should be
// attached to: the owning user when known, otherwise the card itself stands
// in as the counterpart identity.
func (c *Card) CounterpartUserID() string {
	if c.OwnerUserID != nil && *c.OwnerUserID != "" {
		return *c.OwnerUserID
	}
	return c.ID
}
