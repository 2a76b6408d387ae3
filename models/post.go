package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post categories accepted by the API. Anything else is stored as-is but the
// front end only ever sends one of these.
const (
	CategoryGeneral        = "general"
	CategoryCyberSecurity  = "cyber-security"
	CategoryEthicalHacking = "ethical-hacking"
	CategoryTechNews       = "tech-news"
	CategoryTutorial       = "tutorial"
)

// Post represents a published article.
// Collection: posts
//
// Slug is globally unique and derived from Title at creation time; the unique
// index on it is the authority under concurrent creates. Visit only ever
// increases, at most once per entry in VisitedBy.
type Post struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	Img        string             `bson:"img,omitempty" json:"img,omitempty"`
	Title      string             `bson:"title" json:"title"`
	Slug       string             `bson:"slug" json:"slug"`
	Desc       string             `bson:"desc,omitempty" json:"desc,omitempty"`
	Content    string             `bson:"content" json:"content"`
	Category   string             `bson:"category" json:"category"`
	IsFeatured bool               `bson:"is_featured" json:"is_featured"`
	Visit      int64              `bson:"visit" json:"visit"`
	VisitedBy  []string           `bson:"visited_by" json:"-"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
