package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"inkpress/auth"
	"inkpress/dto"
	"inkpress/models"
)

// CommentService owns comment CRUD and its ownership rules.
type CommentService struct {
	comments CommentStore
	users    UserStore
	posts    PostStore
}

func NewCommentService(comments CommentStore, users UserStore, posts PostStore) *CommentService {
	return &CommentService{comments: comments, users: users, posts: posts}
}

// ListByPost returns the comments of a post, newest first, with commenter
// username/img joined in.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]dto.CommentDTO, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrInvalidID
	}

	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}

	authors, err := s.loadCommenters(ctx, comments)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, dto.NewCommentDTO(c, authors[c.User]))
	}
	return out, nil
}

// Add creates a comment on a post. Desc is trimmed and must be non-empty.
func (s *CommentService) Add(ctx context.Context, externalUserID, postID, desc string) (*dto.CommentDTO, error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return nil, ErrEmptyComment
	}

	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrInvalidID
	}
	if _, err := s.posts.FindByID(ctx, id); err != nil {
		return nil, mapNotFound(err)
	}

	user, err := s.users.FindByExternalID(ctx, externalUserID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	c := &models.Comment{
		User: user.ID,
		Post: id,
		Desc: desc,
	}
	cid, err := s.comments.Insert(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = cid

	d := dto.NewCommentDTO(*c, user)
	return &d, nil
}

// Delete removes a comment. Admins may delete any comment, users only their
// own.
func (s *CommentService) Delete(ctx context.Context, externalUserID, role, commentID string) error {
	id, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return ErrInvalidID
	}

	c, err := s.comments.FindByID(ctx, id)
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
	switch auth.Authorize(role, actorID, c.User.Hex()) {
	case auth.CapabilityAdmin:
		deleted, err = s.comments.DeleteByID(ctx, id)
	case auth.CapabilityOwner:
		ownerID, _ := primitive.ObjectIDFromHex(actorID)
		deleted, err = s.comments.DeleteByIDAndUser(ctx, id, ownerID)
	default:
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *CommentService) loadCommenters(ctx context.Context, comments []models.Comment) (map[primitive.ObjectID]*models.User, error) {
	if len(comments) == 0 {
		return nil, nil
	}
	seen := make(map[primitive.ObjectID]struct{}, len(comments))
	ids := make([]primitive.ObjectID, 0, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.User]; ok {
			continue
		}
		seen[c.User] = struct{}{}
		ids = append(ids, c.User)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return byID, nil
}
