package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inkpress/events"
	"inkpress/models"
)

func TestToggleSavedPostRoundTrip(t *testing.T) {
	user := newTestUser("ext_1", "alice", models.RoleUser)
	users := &fakeUserStore{users: []models.User{user}}
	svc := NewUserService(users, nil)

	postID := primitive.NewObjectID().Hex()

	out, err := svc.ToggleSavedPost(context.Background(), "ext_1", models.RoleUser, postID)
	require.NoError(t, err)
	assert.True(t, out.Saved)

	saved, err := svc.SavedPosts(context.Background(), "ext_1", models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, []string{postID}, saved.SavedPosts)

	// Second toggle removes it; the saved set is back where it started.
	out, err = svc.ToggleSavedPost(context.Background(), "ext_1", models.RoleUser, postID)
	require.NoError(t, err)
	assert.False(t, out.Saved)

	saved, err = svc.SavedPosts(context.Background(), "ext_1", models.RoleUser)
	require.NoError(t, err)
	assert.Empty(t, saved.SavedPosts)
}

func TestToggleSavedPostInvalidID(t *testing.T) {
	user := newTestUser("ext_1", "alice", models.RoleUser)
	svc := NewUserService(&fakeUserStore{users: []models.User{user}}, nil)

	_, err := svc.ToggleSavedPost(context.Background(), "ext_1", models.RoleUser, "not-hex")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestSavedPostsAdminForbidden(t *testing.T) {
	admin := newTestUser("ext_adm", "root", models.RoleAdmin)
	svc := NewUserService(&fakeUserStore{users: []models.User{admin}}, nil)

	_, err := svc.SavedPosts(context.Background(), "ext_adm", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ToggleSavedPost(context.Background(), "ext_adm", models.RoleAdmin, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestApplyIdentityEventCreated(t *testing.T) {
	users := &fakeUserStore{}
	bus := &fakeBus{}
	svc := NewUserService(users, bus)

	outcome, err := svc.ApplyIdentityEvent(context.Background(), IdentityEventInput{
		Kind:           IdentityUserCreated,
		ExternalUserID: "ext_1",
		Username:       "alice",
		Email:          "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	u, err := users.FindByExternalID(context.Background(), "ext_1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, models.RoleUser, u.Role)

	require.Len(t, bus.published, 1)
	assert.Equal(t, events.KindUserCreated, bus.published[0].Event.Kind)
}

func TestApplyIdentityEventUsernameFallsBackToEmail(t *testing.T) {
	users := &fakeUserStore{}
	svc := NewUserService(users, nil)

	outcome, err := svc.ApplyIdentityEvent(context.Background(), IdentityEventInput{
		Kind:           IdentityUserCreated,
		ExternalUserID: "ext_1",
		Email:          "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	u, err := users.FindByExternalID(context.Background(), "ext_1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Username)
}

func TestApplyIdentityEventRedeliveryIsNoop(t *testing.T) {
	users := &fakeUserStore{}
	svc := NewUserService(users, nil)

	in := IdentityEventInput{
		Kind:           IdentityUserCreated,
		ExternalUserID: "ext_1",
		Username:       "alice",
	}
	outcome, err := svc.ApplyIdentityEvent(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	outcome, err = svc.ApplyIdentityEvent(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoop, outcome)
	assert.Len(t, users.users, 1)
}

func TestApplyIdentityEventDeleted(t *testing.T) {
	user := newTestUser("ext_1", "alice", models.RoleUser)
	users := &fakeUserStore{users: []models.User{user}}
	svc := NewUserService(users, nil)

	outcome, err := svc.ApplyIdentityEvent(context.Background(), IdentityEventInput{
		Kind:           IdentityUserDeleted,
		ExternalUserID: "ext_1",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome)
	assert.Empty(t, users.users)

	outcome, err = svc.ApplyIdentityEvent(context.Background(), IdentityEventInput{
		Kind:           IdentityUserDeleted,
		ExternalUserID: "ext_1",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, OutcomeNoop, outcome)
}

func TestApplyIdentityEventUnknownKindIgnored(t *testing.T) {
	svc := NewUserService(&fakeUserStore{}, nil)

	outcome, err := svc.ApplyIdentityEvent(context.Background(), IdentityEventInput{
		Kind:           "session.created",
		ExternalUserID: "ext_1",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, outcome)
}
