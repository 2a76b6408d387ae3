package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User mirrors an account owned by the external identity provider.
// Collection: users
//
// Documents are created and deleted only through identity webhooks; Role is
// never writable through the API. SavedPosts holds post id hex strings with
// set semantics.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExternalUserID string             `bson:"external_user_id" json:"-"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	Img            string             `bson:"img,omitempty" json:"img,omitempty"`
	Role           string             `bson:"role" json:"role"`
	SavedPosts     []string           `bson:"saved_posts" json:"saved_posts"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
