package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inkpress/models"
)

func TestCommentAdd(t *testing.T) {
	alice := newTestUser("ext_1", "alice", models.RoleUser)
	posts := &fakePostStore{}
	seedPosts(posts, alice, 1)
	comments := &fakeCommentStore{}
	svc := NewCommentService(comments, &fakeUserStore{users: []models.User{alice}}, posts)

	d, err := svc.Add(context.Background(), "ext_1", posts.posts[0].ID.Hex(), "  nice post  ")
	require.NoError(t, err)
	assert.Equal(t, "nice post", d.Desc, "desc must be trimmed")
	assert.Equal(t, "alice", d.Author)
	assert.Len(t, comments.comments, 1)
}

func TestCommentAddEmptyDesc(t *testing.T) {
	alice := newTestUser("ext_1", "alice", models.RoleUser)
	posts := &fakePostStore{}
	seedPosts(posts, alice, 1)
	svc := NewCommentService(&fakeCommentStore{}, &fakeUserStore{users: []models.User{alice}}, posts)

	for _, desc := range []string{"", "   ", "\t\n"} {
		_, err := svc.Add(context.Background(), "ext_1", posts.posts[0].ID.Hex(), desc)
		assert.ErrorIs(t, err, ErrEmptyComment, "desc %q", desc)
	}
}

func TestCommentAddUnknownPost(t *testing.T) {
	alice := newTestUser("ext_1", "alice", models.RoleUser)
	svc := NewCommentService(&fakeCommentStore{}, &fakeUserStore{users: []models.User{alice}}, &fakePostStore{})

	_, err := svc.Add(context.Background(), "ext_1", primitive.NewObjectID().Hex(), "hello")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Add(context.Background(), "ext_1", "not-hex", "hello")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestCommentDeleteOwnership(t *testing.T) {
	alice := newTestUser("ext_1", "alice", models.RoleUser)
	bob := newTestUser("ext_2", "bob", models.RoleUser)
	admin := newTestUser("ext_3", "root", models.RoleAdmin)
	postID := primitive.NewObjectID()

	newSvc := func() (*CommentService, *fakeCommentStore) {
		comments := &fakeCommentStore{comments: []models.Comment{
			{ID: primitive.NewObjectID(), Post: postID, User: alice.ID, Desc: "mine"},
		}}
		users := &fakeUserStore{users: []models.User{alice, bob, admin}}
		return NewCommentService(comments, users, &fakePostStore{}), comments
	}

	svc, comments := newSvc()
	err := svc.Delete(context.Background(), "ext_2", models.RoleUser, comments.comments[0].ID.Hex())
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, comments.comments, 1)

	svc, comments = newSvc()
	err = svc.Delete(context.Background(), "ext_1", models.RoleUser, comments.comments[0].ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, comments.comments)

	svc, comments = newSvc()
	err = svc.Delete(context.Background(), "ext_3", models.RoleAdmin, comments.comments[0].ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, comments.comments)
}

func TestCommentDeleteNotFound(t *testing.T) {
	svc := NewCommentService(&fakeCommentStore{}, &fakeUserStore{}, &fakePostStore{})

	err := svc.Delete(context.Background(), "ext_1", models.RoleAdmin, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentListByPost(t *testing.T) {
	alice := newTestUser("ext_1", "alice", models.RoleUser)
	postID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	comments := &fakeCommentStore{comments: []models.Comment{
		{ID: primitive.NewObjectID(), Post: postID, User: alice.ID, Desc: "first"},
		{ID: primitive.NewObjectID(), Post: otherID, User: alice.ID, Desc: "elsewhere"},
	}}
	svc := NewCommentService(comments, &fakeUserStore{users: []models.User{alice}}, &fakePostStore{})

	out, err := svc.ListByPost(context.Background(), postID.Hex())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].Desc)
	assert.Equal(t, "alice", out[0].Author)
}
