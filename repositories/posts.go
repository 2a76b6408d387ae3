package repositories

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inkpress/models"
)

// Sort modes accepted by List. Unknown values fall back to SortNewest.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortPopular  = "popular"
	SortTrending = "trending"
)

// TrendingWindow restricts trending results to recently created posts.
// Trending is a sort plus this implicit filter, not just a sort.
const TrendingWindow = 7 * 24 * time.Hour

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("posts")}
}

type ListPostsOptions struct {
	Category string
	AuthorID *primitive.ObjectID
	Search   string
	Featured bool
	Sort     string
	Page     int
	Limit    int
}

// BuildListQuery translates list options into a Mongo filter and sort order.
// Pure so the query plan can be asserted without a live collection. The `_id`
// tiebreaker keeps ordering stable when the primary key ties (equal visit
// counts under popular/trending).
func BuildListQuery(opt ListPostsOptions, now time.Time) (bson.M, bson.D) {
	filter := bson.M{}

	if opt.Category != "" {
		filter["category"] = opt.Category
	}
	if opt.Search != "" {
		// case-insensitive substring match against the title
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(opt.Search), Options: "i"}
	}
	if opt.AuthorID != nil {
		filter["user"] = *opt.AuthorID
	}
	if opt.Featured {
		filter["is_featured"] = true
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	switch opt.Sort {
	case SortOldest:
		sort = bson.D{{Key: "created_at", Value: 1}}
	case SortPopular:
		sort = bson.D{{Key: "visit", Value: -1}}
	case SortTrending:
		sort = bson.D{{Key: "visit", Value: -1}}
		filter["created_at"] = bson.M{"$gte": now.Add(-TrendingWindow)}
	case SortNewest:
	default:
	}
	sort = append(sort, bson.E{Key: "_id", Value: -1})

	return filter, sort
}

// List returns one page of posts plus the total count matching the filter.
// The count honors every filter, including the trending window, so callers
// can derive pagination metadata from it.
func (r *PostRepository) List(ctx context.Context, opt ListPostsOptions) ([]models.Post, int64, error) {
	filter, sort := BuildListQuery(opt, time.Now())

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64(opt.Page-1) * int64(opt.Limit)
	findOpts := options.Find().SetSkip(skip).SetLimit(int64(opt.Limit)).SetSort(sort)
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var results []models.Post
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			return nil, 0, err
		}
		results = append(results, p)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// SlugExists reports whether any post already uses the given slug.
func (r *PostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"slug": slug}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return err == nil, err
}

// Insert inserts a new post document. A unique-index violation on the slug
// comes back as a duplicate-key error the caller can distinguish.
func (r *PostRepository) Insert(ctx context.Context, p *models.Post) (primitive.ObjectID, error) {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.VisitedBy == nil {
		p.VisitedBy = []string{}
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// FindBySlug returns a post by its slug.
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByID returns a post by its ObjectID.
func (r *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteByID removes a post regardless of ownership (admin path).
func (r *PostRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// DeleteByIDAndUser removes a post only when owned by the given user.
func (r *PostRepository) DeleteByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// SetFeatured updates the is_featured flag.
func (r *PostRepository) SetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"is_featured": featured, "updated_at": time.Now()},
	})
	return err
}

// RegisterVisit counts a visit for the given visitor exactly once per post.
// The $ne guard plus $inc/$addToSet run as a single conditional update, so
// concurrent visits cannot double count. Returns whether this call counted.
func (r *PostRepository) RegisterVisit(ctx context.Context, slug, visitorID string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"slug": slug, "visited_by": bson.M{"$ne": visitorID}},
		bson.M{
			"$inc":      bson.M{"visit": 1},
			"$addToSet": bson.M{"visited_by": visitorID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// FindByIDs returns the posts for the given ids, unordered.
func (r *PostRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.Post
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
