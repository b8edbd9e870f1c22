package models

import "time"

type User struct {
	ID           string    `bson:"_id,omitempty"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

// Session is the value persisted to redis for an authenticated principal.
type Session struct {
	Username     string `json:"username"`
	DisplayName  string `json:"display_name,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
