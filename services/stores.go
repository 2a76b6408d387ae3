package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"inkpress/models"
	"inkpress/repositories"
)

// Store interfaces consumed by the services. The repositories satisfy them;
// tests substitute in-memory fakes.

type PostStore interface {
	List(ctx context.Context, opt repositories.ListPostsOptions) ([]models.Post, int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Insert(ctx context.Context, p *models.Post) (primitive.ObjectID, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (bool, error)
	SetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) error
	RegisterVisit(ctx context.Context, slug, visitorID string) (bool, error)
}

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	Insert(ctx context.Context, u *models.User) error
	DeleteByExternalID(ctx context.Context, externalID string) (bool, error)
	ToggleSavedPost(ctx context.Context, userID primitive.ObjectID, postID string) (bool, error)
}

type CommentStore interface {
	ListByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error)
	Insert(ctx context.Context, c *models.Comment) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (bool, error)
	DeleteByPost(ctx context.Context, postID primitive.ObjectID) (int64, error)
}
