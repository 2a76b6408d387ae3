package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"inkpress/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// FindByUsername returns a user by its unique username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByExternalID returns a user by its identity-provider reference.
func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"external_user_id": externalID}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID returns a user by ObjectID.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Insert creates a user document. Unique indexes on external_user_id and
// username reject duplicates with a duplicate-key error.
func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.SavedPosts == nil {
		u.SavedPosts = []string{}
	}
	_, err := r.col.InsertOne(ctx, u)
	return err
}

// DeleteByExternalID removes the user created for the given identity
// reference. Returns whether a document was deleted.
func (r *UserRepository) DeleteByExternalID(ctx context.Context, externalID string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"external_user_id": externalID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// FindByIDs returns the users for the given ids, unordered. Used to join
// author fields onto post and comment listings.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.User
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		results = append(results, u)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ToggleSavedPost flips membership of postID in the user's saved set and
// reports the resulting state (true = now saved). Both branches are single
// conditional updates, so concurrent toggles cannot corrupt the set: the
// $pull only matches when the id is present, the $addToSet only when absent.
func (r *UserRepository) ToggleSavedPost(ctx context.Context, userID primitive.ObjectID, postID string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID, "saved_posts": postID},
		bson.M{
			"$pull": bson.M{"saved_posts": postID},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount > 0 {
		return false, nil
	}

	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": userID, "saved_posts": bson.M{"$ne": postID}},
		bson.M{
			"$addToSet": bson.M{"saved_posts": postID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return true, nil
}
