package services

import (
	"context"
	"errors"
	"testing"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow_Symmetric(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	a, b := seedUser(t, store, "a"), seedUser(t, store, "b")
	notes := &fakeNotifications{}
	g := newGraph(store, notes)

	actor, err := g.Follow(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{b}, actor.Following)

	target, err := store.GetUserByID(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []string{a}, target.Followers)
	assert.Equal(t, 1, notes.count())

	// following again changes nothing
	actor, err = g.Follow(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{b}, actor.Following)
	assert.Equal(t, 1, notes.count())
}

func TestUnfollow_Symmetric(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	a, b := seedUser(t, store, "a"), seedUser(t, store, "b")
	g := newGraph(store, nil)

	_, err := g.Follow(ctx, a, b)
	require.NoError(t, err)
	actor, err := g.Unfollow(ctx, a, b)
	require.NoError(t, err)
	assert.Empty(t, actor.Following)

	target, err := store.GetUserByID(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, target.Followers)

	_, err = g.Unfollow(ctx, a, b)
	assert.NoError(t, err)
}

func TestFollow_RollsBackWhenSecondPhaseFails(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	a, b := seedUser(t, store, "a"), seedUser(t, store, "b")
	store.FailOn("AddFollower", errors.New("write conflict"))

	_, err := newGraph(store, nil).Follow(ctx, a, b)
	require.ErrorIs(t, err, common.ErrorStorage)

	actor, err := store.GetUserByID(ctx, a)
	require.NoError(t, err)
	assert.Empty(t, actor.Following)
}

func TestUnfollow_RollsBackWhenSecondPhaseFails(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	a, b := seedUser(t, store, "a"), seedUser(t, store, "b")
	g := newGraph(store, nil)
	_, err := g.Follow(ctx, a, b)
	require.NoError(t, err)

	store.FailOn("RemoveFollower", errors.New("write conflict"))
	_, err = g.Unfollow(ctx, a, b)
	require.Error(t, err)

	actor, err := store.GetUserByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []string{b}, actor.Following)
}

func TestFollow_Rejections(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	a := seedUser(t, store, "a")
	g := newGraph(store, nil)

	_, err := g.Follow(ctx, a, a)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = g.Follow(ctx, a, "65f000000000000000000000")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = g.Follow(ctx, "bad-id", a)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLikePost_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	owner, fan := seedUser(t, store, "owner"), seedUser(t, store, "fan")
	postID := seedPost(t, store, owner)
	g := newGraph(store, nil)

	_, err := g.LikePost(ctx, postID, fan)
	require.NoError(t, err)
	post, err := g.LikePost(ctx, postID, fan)
	require.NoError(t, err)
	assert.Equal(t, []string{fan}, post.Likes)

	post, err = g.UnlikePost(ctx, postID, fan)
	require.NoError(t, err)
	assert.Empty(t, post.Likes)

	post, err = g.UnlikePost(ctx, postID, fan)
	require.NoError(t, err)
	assert.Empty(t, post.Likes)
}

func TestLikePost_OwnLikeNotNotified(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	owner := seedUser(t, store, "owner")
	postID := seedPost(t, store, owner)
	notes := &fakeNotifications{}

	_, err := newGraph(store, notes).LikePost(ctx, postID, owner)
	require.NoError(t, err)
	assert.Zero(t, notes.count())
}

func TestAddComment_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	owner := seedUser(t, store, "owner")
	postID := seedPost(t, store, owner)
	g := newGraph(store, nil)

	for _, text := range []string{"first", "second", "second"} {
		_, err := g.AddComment(ctx, postID, "bob", text)
		require.NoError(t, err)
	}
	post, err := store.GetPostByID(ctx, postID)
	require.NoError(t, err)

	require.Len(t, post.Comments, 3)
	assert.Equal(t, "first", post.Comments[0].Comment)
	assert.Equal(t, "second", post.Comments[1].Comment)
	assert.Equal(t, "second", post.Comments[2].Comment)
}

func TestAddComment_NotificationFailureIgnored(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	owner := seedUser(t, store, "owner")
	seedUser(t, store, "bob")
	postID := seedPost(t, store, owner)

	_, err := newGraph(store, &fakeNotifications{err: errors.New("pg down")}).AddComment(ctx, postID, "bob", "nice")
	assert.NoError(t, err)
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	owner := seedUser(t, store, "owner")
	postID := seedPost(t, store, owner)
	g := newGraph(store, nil)

	require.NoError(t, g.DeletePost(ctx, postID))

	_, err := store.GetPostByID(ctx, postID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	user, err := store.GetUserByID(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, user.Posts)

	// deleting again is fine
	assert.NoError(t, g.DeletePost(ctx, postID))
}

func TestDeletePost_StorageFailure(t *testing.T) {
	store := repositories.NewMemoryStore()
	store.FailOn("DeletePost", errors.New("boom"))

	err := newGraph(store, nil).DeletePost(context.Background(), "65f000000000000000000000")
	assert.ErrorIs(t, err, common.ErrorStorage)
}
