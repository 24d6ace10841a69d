package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a user document in the MongoDB users collection.
// Password holds the bcrypt hash and is never serialized to JSON.
type User struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username   string             `json:"username" bson:"username"`
	Email      string             `json:"email" bson:"email"`
	Password   string             `json:"-" bson:"password"`
	Bookshelf  []string           `json:"bookshelf" bson:"bookshelf"`
	Publishies []string           `json:"publishies" bson:"publishies"`
}

// Profile is the sanitized projection of a User returned to clients.
type Profile struct {
	ID         string   `json:"id"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Bookshelf  []string `json:"bookshelf"`
	Publishies []string `json:"publishies"`
}

// Sanitized strips the password hash and flattens the ObjectID.
func (u *User) Sanitized() *Profile {
	return &Profile{
		ID:         u.ID.Hex(),
		Username:   u.Username,
		Email:      u.Email,
		Bookshelf:  u.Bookshelf,
		Publishies: u.Publishies,
	}
}

// UserPatch is the JSON body for PUT /api/users/me. Nil fields are
// left untouched; only keys present in the request are applied.
type UserPatch struct {
	Username   *string   `json:"username"`
	Password   *string   `json:"password"`
	Bookshelf  *[]string `json:"bookshelf"`
	Publishies *[]string `json:"publishies"`
}

// RegisterRequest is the JSON body for POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the JSON body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
