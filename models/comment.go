package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a single comment on a post.
// Collection: comments
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Post      primitive.ObjectID `bson:"post" json:"post"`
	Desc      string             `bson:"desc" json:"desc"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
