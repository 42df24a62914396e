package models

// User is a slim read-model over accounts owned by the external profile
// service. Used only to decorate match and message responses with display
// information; never created or mutated here.
type User struct {
	BaseModel
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

func (User) TableName() string {
	return "users"
}
