package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"inkpress/auth"
	"inkpress/dto"
	"inkpress/eventbus"
	"inkpress/events"
	"inkpress/internal/logger"
	"inkpress/models"
	"inkpress/repositories"
)

// PostService encapsulates business logic for posts and DTO mapping.
type PostService struct {
	posts    PostStore
	users    UserStore
	comments CommentStore
	bus      eventbus.Publisher

	defaultLimit int
	maxLimit     int
}

func NewPostService(posts PostStore, users UserStore, comments CommentStore, bus eventbus.Publisher, defaultLimit, maxLimit int) *PostService {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &PostService{
		posts:        posts,
		users:        users,
		comments:     comments,
		bus:          bus,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

type CreatePostInput struct {
	ExternalUserID string
	Title          string
	Desc           string
	Content        string
	Category       string
	Img            string
}

// Create derives a unique slug from the title and inserts the post.
//
// The pre-check in resolveSlug is only an optimization: two concurrent
// creates with the same title can both see a candidate as free. The unique
// index on posts.slug rejects the loser, which shows up here as a
// duplicate-key error, and the loop resumes with the next candidate. Only
// constraint conflicts are retried; transport errors surface immediately.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*dto.PostDTO, error) {
	user, err := s.users.FindByExternalID(ctx, in.ExternalUserID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	category := in.Category
	if category == "" {
		category = models.CategoryGeneral
	}

	from := 1
	for {
		slug, attempt, err := resolveSlug(ctx, s.posts, in.Title, from)
		if err != nil {
			return nil, err
		}

		p := &models.Post{
			User:     user.ID,
			Title:    in.Title,
			Slug:     slug,
			Desc:     in.Desc,
			Content:  in.Content,
			Category: category,
			Img:      in.Img,
		}
		id, err := s.posts.Insert(ctx, p)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// Lost the race for this candidate; move past it.
				from = attempt + 1
				if from > maxSlugAttempts {
					return nil, ErrSlugExhausted
				}
				continue
			}
			return nil, err
		}
		p.ID = id

		s.emitPostEvent(ctx, events.KindPostCreated, p)
		d := dto.NewPostDTO(*p, user)
		return &d, nil
	}
}

type ListPostsInput struct {
	Category string
	Author   string
	Search   string
	Featured bool
	Sort     string
	Page     int
	Limit    int
}

// List runs the filter/sort/paginate pipeline and derives pagination
// metadata. Invalid page/limit values are clamped, not rejected; an unknown
// author is the one input that fails (ErrAuthorNotFound), so callers can
// tell "no such author" from "author with zero posts".
func (s *PostService) List(ctx context.Context, in ListPostsInput) (dto.PostListDTO, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	opt := repositories.ListPostsOptions{
		Category: in.Category,
		Search:   in.Search,
		Featured: in.Featured,
		Sort:     in.Sort,
		Page:     page,
		Limit:    limit,
	}

	if in.Author != "" {
		user, err := s.users.FindByUsername(ctx, in.Author)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return dto.PostListDTO{}, ErrAuthorNotFound
			}
			return dto.PostListDTO{}, err
		}
		opt.AuthorID = &user.ID
	}

	posts, total, err := s.posts.List(ctx, opt)
	if err != nil {
		return dto.PostListDTO{}, err
	}

	authors, err := s.loadAuthors(ctx, posts)
	if err != nil {
		return dto.PostListDTO{}, err
	}

	out := make([]dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.NewPostDTO(p, authors[p.User]))
	}

	return dto.PostListDTO{
		Posts:   out,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: int64(page)*int64(limit) < total,
	}, nil
}

// GetBySlug loads a single post with its author joined in.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*dto.PostDTO, error) {
	p, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, mapNotFound(err)
	}
	author, err := s.users.FindByID(ctx, p.User)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	d := dto.NewPostDTO(*p, author)
	return &d, nil
}

// RegisterVisit counts a visit for the given visitor at most once per post.
func (s *PostService) RegisterVisit(ctx context.Context, slug, visitorID string) (bool, error) {
	return s.posts.RegisterVisit(ctx, slug, visitorID)
}

// Delete removes a post. Admins may delete any post, authors only their own;
// comments attached to the post go with it.
func (s *PostService) Delete(ctx context.Context, externalUserID, role, postID string) error {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrInvalidID
	}

	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}

	actorID := ""
	if role != auth.RoleAdmin {
		user, err := s.users.FindByExternalID(ctx, externalUserID)
		if err != nil {
			return mapNotFound(err)
		}
		actorID = user.ID.Hex()
	}

	var deleted bool
	switch auth.Authorize(role, actorID, p.User.Hex()) {
	case auth.CapabilityAdmin:
		deleted, err = s.posts.DeleteByID(ctx, id)
	case auth.CapabilityOwner:
		ownerID, _ := primitive.ObjectIDFromHex(actorID)
		deleted, err = s.posts.DeleteByIDAndUser(ctx, id, ownerID)
	default:
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	if _, err := s.comments.DeleteByPost(ctx, id); err != nil {
		logger.Log.Errorf("failed to delete comments of post %s: %v", postID, err)
	}

	s.emitPostEvent(ctx, events.KindPostDeleted, p)
	return nil
}

// ToggleFeatured flips the is_featured flag of a post. Admin-only; the
// handler enforces the role, the service just applies the toggle.
func (s *PostService) ToggleFeatured(ctx context.Context, postID string) (*dto.PostDTO, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrInvalidID
	}

	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if err := s.posts.SetFeatured(ctx, id, !p.IsFeatured); err != nil {
		return nil, err
	}
	p.IsFeatured = !p.IsFeatured

	author, err := s.users.FindByID(ctx, p.User)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	s.emitPostEvent(ctx, events.KindPostFeatured, p)
	d := dto.NewPostDTO(*p, author)
	return &d, nil
}

func (s *PostService) loadAuthors(ctx context.Context, posts []models.Post) (map[primitive.ObjectID]*models.User, error) {
	if len(posts) == 0 {
		return nil, nil
	}
	seen := make(map[primitive.ObjectID]struct{}, len(posts))
	ids := make([]primitive.ObjectID, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.User]; ok {
			continue
		}
		seen[p.User] = struct{}{}
		ids = append(ids, p.User)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return byID, nil
}

// emitPostEvent publishes best-effort: a broker outage must not fail the
// request that already committed.
func (s *PostService) emitPostEvent(ctx context.Context, kind string, p *models.Post) {
	if s.bus == nil {
		return
	}
	evt, err := eventbus.NewJSONEvent(kind, events.PostEvent{
		PostID:     p.ID.Hex(),
		Slug:       p.Slug,
		AuthorID:   p.User.Hex(),
		IsFeatured: p.IsFeatured,
		OccurredAt: p.UpdatedAt,
	})
	if err != nil {
		logger.Log.Errorf("failed to build %s event: %v", kind, err)
		return
	}
	if err := s.bus.Publish(ctx, eventbus.TopicPostEvents, evt); err != nil {
		logger.Log.Errorf("failed to publish %s event: %v", kind, err)
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
