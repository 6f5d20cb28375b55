package user

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("user already exists")
)

// Role is the closed set of account roles. Authorization checks compare
// against this type, never raw strings.
type Role string

const (
	// RoleUser is the ordinary job-seeker account.
	RoleUser     Role = "user"
	RoleAdmin    Role = "admin"
	RoleEmployer Role = "employer"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleEmployer:
		return Role(s), true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

type User struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string              `bson:"name" json:"name"`
	Email          string              `bson:"email" json:"email"`
	Username       string              `bson:"username" json:"username"`
	Password       string              `bson:"password" json:"-"`
	Role           Role                `bson:"role" json:"role"`
	ProfilePicture string              `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Premium        bool                `bson:"premiumServices" json:"premiumServices"`
	Preference     *primitive.ObjectID `bson:"preference,omitempty" json:"preference,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
}

// Sanitized returns a copy safe to hand to the delivery layer. The hash
// already carries json:"-", this clears it for callers that re-encode.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
