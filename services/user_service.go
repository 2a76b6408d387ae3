package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"inkpress/auth"
	"inkpress/dto"
	"inkpress/eventbus"
	"inkpress/events"
	"inkpress/internal/logger"
	"inkpress/models"
)

// UserService owns saved-post bookkeeping and the identity-provider user
// lifecycle (webhook events).
type UserService struct {
	users UserStore
	bus   eventbus.Publisher
}

func NewUserService(users UserStore, bus eventbus.Publisher) *UserService {
	return &UserService{users: users, bus: bus}
}

// SavedPosts returns the post ids the user has bookmarked. Admins do not
// have a saved list and are rejected.
func (s *UserService) SavedPosts(ctx context.Context, externalUserID, role string) (dto.SavedPostsDTO, error) {
	if role == auth.RoleAdmin {
		return dto.SavedPostsDTO{}, ErrForbidden
	}
	user, err := s.users.FindByExternalID(ctx, externalUserID)
	if err != nil {
		return dto.SavedPostsDTO{}, mapNotFound(err)
	}
	saved := user.SavedPosts
	if saved == nil {
		saved = []string{}
	}
	return dto.SavedPostsDTO{SavedPosts: saved}, nil
}

// ToggleSavedPost flips the membership of postID in the user's saved set:
// present removes it, absent adds it. Two toggles always restore the
// original state.
func (s *UserService) ToggleSavedPost(ctx context.Context, externalUserID, role, postID string) (dto.SaveToggleDTO, error) {
	if _, err := primitive.ObjectIDFromHex(postID); err != nil {
		return dto.SaveToggleDTO{}, ErrInvalidID
	}
	if role == auth.RoleAdmin {
		return dto.SaveToggleDTO{}, ErrForbidden
	}

	user, err := s.users.FindByExternalID(ctx, externalUserID)
	if err != nil {
		return dto.SaveToggleDTO{}, mapNotFound(err)
	}

	saved, err := s.users.ToggleSavedPost(ctx, user.ID, postID)
	if err != nil {
		return dto.SaveToggleDTO{}, err
	}
	return dto.SaveToggleDTO{PostID: postID, Saved: saved}, nil
}

// Identity event kinds the lifecycle handler acts on. Anything else is
// accepted and ignored, per the permissive webhook contract.
const (
	IdentityUserCreated = "user.created"
	IdentityUserDeleted = "user.deleted"
)

type IdentityEventInput struct {
	Kind           string
	ExternalUserID string
	Username       string
	Email          string
	Img            string
}

// IdentityEventOutcome reports what a webhook delivery did.
type IdentityEventOutcome string

const (
	OutcomeCreated IdentityEventOutcome = "created"
	OutcomeDeleted IdentityEventOutcome = "deleted"
	OutcomeNoop    IdentityEventOutcome = "noop"
	OutcomeIgnored IdentityEventOutcome = "ignored"
)

// ApplyIdentityEvent applies a verified identity-provider event to the users
// collection. Redelivered user.created events are no-ops, user.deleted for
// an unknown user returns ErrNotFound, unknown kinds are ignored without
// error.
func (s *UserService) ApplyIdentityEvent(ctx context.Context, in IdentityEventInput) (IdentityEventOutcome, error) {
	switch in.Kind {
	case IdentityUserCreated:
		username := in.Username
		if username == "" {
			username = in.Email
		}

		if _, err := s.users.FindByUsername(ctx, username); err == nil {
			return OutcomeNoop, nil
		} else if err != mongo.ErrNoDocuments {
			return OutcomeNoop, err
		}

		u := &models.User{
			ExternalUserID: in.ExternalUserID,
			Username:       username,
			Email:          in.Email,
			Img:            in.Img,
		}
		if err := s.users.Insert(ctx, u); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// Redelivery raced the first insert; treat as done.
				return OutcomeNoop, nil
			}
			return OutcomeNoop, err
		}

		s.emitUserEvent(ctx, events.KindUserCreated, u.ID.Hex(), in.ExternalUserID, username)
		return OutcomeCreated, nil

	case IdentityUserDeleted:
		deleted, err := s.users.DeleteByExternalID(ctx, in.ExternalUserID)
		if err != nil {
			return OutcomeNoop, err
		}
		if !deleted {
			return OutcomeNoop, ErrNotFound
		}
		s.emitUserEvent(ctx, events.KindUserDeleted, "", in.ExternalUserID, "")
		return OutcomeDeleted, nil

	default:
		return OutcomeIgnored, nil
	}
}

func (s *UserService) emitUserEvent(ctx context.Context, kind, userID, externalUserID, username string) {
	if s.bus == nil {
		return
	}
	evt, err := eventbus.NewJSONEvent(kind, events.UserEvent{
		UserID:         userID,
		ExternalUserID: externalUserID,
		Username:       username,
	})
	if err != nil {
		logger.Log.Errorf("failed to build %s event: %v", kind, err)
		return
	}
	if err := s.bus.Publish(ctx, eventbus.TopicUserEvents, evt); err != nil {
		logger.Log.Errorf("failed to publish %s event: %v", kind, err)
	}
}
