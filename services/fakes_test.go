package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"inkpress/eventbus"
	"inkpress/models"
	"inkpress/repositories"
)

// In-memory store fakes. They implement just enough of the Mongo semantics
// for the service contracts under test: skip/limit windows, duplicate-key
// errors, set-based saved posts.

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
}

type fakePostStore struct {
	posts      []models.Post
	insertErrs []error // popped before each successful insert
}

func (f *fakePostStore) has(slug string) bool {
	for _, p := range f.posts {
		if p.Slug == slug {
			return true
		}
	}
	return false
}

func (f *fakePostStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	return f.has(slug), nil
}

func (f *fakePostStore) Insert(ctx context.Context, p *models.Post) (primitive.ObjectID, error) {
	if len(f.insertErrs) > 0 {
		err := f.insertErrs[0]
		f.insertErrs = f.insertErrs[1:]
		if err != nil {
			return primitive.NilObjectID, err
		}
	}
	if f.has(p.Slug) {
		return primitive.NilObjectID, duplicateKeyErr()
	}
	p.ID = primitive.NewObjectID()
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	f.posts = append(f.posts, *p)
	return p.ID, nil
}

func (f *fakePostStore) List(ctx context.Context, opt repositories.ListPostsOptions) ([]models.Post, int64, error) {
	var filtered []models.Post
	for _, p := range f.posts {
		if opt.Category != "" && p.Category != opt.Category {
			continue
		}
		if opt.AuthorID != nil && p.User != *opt.AuthorID {
			continue
		}
		if opt.Featured && !p.IsFeatured {
			continue
		}
		filtered = append(filtered, p)
	}
	total := int64(len(filtered))

	skip := (opt.Page - 1) * opt.Limit
	if skip >= len(filtered) {
		return nil, total, nil
	}
	end := skip + opt.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[skip:end], total, nil
}

func (f *fakePostStore) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	for i := range f.posts {
		if f.posts[i].Slug == slug {
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakePostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakePostStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	var out []models.Post
	for _, id := range ids {
		for i := range f.posts {
			if f.posts[i].ID == id {
				out = append(out, f.posts[i])
			}
		}
	}
	return out, nil
}

func (f *fakePostStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostStore) DeleteByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	for i := range f.posts {
		if f.posts[i].ID == id && f.posts[i].User == userID {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostStore) SetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) error {
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts[i].IsFeatured = featured
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakePostStore) RegisterVisit(ctx context.Context, slug, visitorID string) (bool, error) {
	for i := range f.posts {
		if f.posts[i].Slug != slug {
			continue
		}
		for _, v := range f.posts[i].VisitedBy {
			if v == visitorID {
				return false, nil
			}
		}
		f.posts[i].Visit++
		f.posts[i].VisitedBy = append(f.posts[i].VisitedBy, visitorID)
		return true, nil
	}
	return false, nil
}

type fakeUserStore struct {
	users []models.User
}

func (f *fakeUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserStore) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ExternalUserID == externalID {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		for i := range f.users {
			if f.users[i].ID == id {
				out = append(out, f.users[i])
			}
		}
	}
	return out, nil
}

func (f *fakeUserStore) Insert(ctx context.Context, u *models.User) error {
	for i := range f.users {
		if f.users[i].ExternalUserID == u.ExternalUserID || f.users[i].Username == u.Username {
			return duplicateKeyErr()
		}
	}
	u.ID = primitive.NewObjectID()
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.SavedPosts == nil {
		u.SavedPosts = []string{}
	}
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeUserStore) DeleteByExternalID(ctx context.Context, externalID string) (bool, error) {
	for i := range f.users {
		if f.users[i].ExternalUserID == externalID {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) ToggleSavedPost(ctx context.Context, userID primitive.ObjectID, postID string) (bool, error) {
	for i := range f.users {
		if f.users[i].ID != userID {
			continue
		}
		for j, saved := range f.users[i].SavedPosts {
			if saved == postID {
				f.users[i].SavedPosts = append(f.users[i].SavedPosts[:j], f.users[i].SavedPosts[j+1:]...)
				return false, nil
			}
		}
		f.users[i].SavedPosts = append(f.users[i].SavedPosts, postID)
		return true, nil
	}
	return false, mongo.ErrNoDocuments
}

type fakeCommentStore struct {
	comments []models.Comment
}

func (f *fakeCommentStore) ListByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.Post == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentStore) Insert(ctx context.Context, c *models.Comment) (primitive.ObjectID, error) {
	c.ID = primitive.NewObjectID()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	f.comments = append(f.comments, *c)
	return c.ID, nil
}

func (f *fakeCommentStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	for i := range f.comments {
		if f.comments[i].ID == id {
			c := f.comments[i]
			return &c, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCommentStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	for i := range f.comments {
		if f.comments[i].ID == id {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCommentStore) DeleteByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	for i := range f.comments {
		if f.comments[i].ID == id && f.comments[i].User == userID {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCommentStore) DeleteByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	var kept []models.Comment
	var deleted int64
	for _, c := range f.comments {
		if c.Post == postID {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	f.comments = kept
	return deleted, nil
}

type fakeBus struct {
	published []publishedEvent
}

type publishedEvent struct {
	Topic string
	Event eventbus.Event
}

func (f *fakeBus) Publish(ctx context.Context, topic string, event eventbus.Event) error {
	f.published = append(f.published, publishedEvent{Topic: topic, Event: event})
	return nil
}

func (f *fakeBus) Close() {}
