package models

import "time"

// User is an account record. Username and ProfilePictureURL are nullable in
// storage; the empty string stands for NULL at this layer.
type User struct {
	ID                string
	Username          string
	Email             string
	HashedPassword    string
	ProfilePictureURL string
	CreatedAt         time.Time
}
