package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildListQueryDefaults(t *testing.T) {
	filter, sort := BuildListQuery(ListPostsOptions{}, time.Now())

	assert.Empty(t, filter)
	assert.Equal(t, bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	}, sort)
}

func TestBuildListQueryUnknownSortFallsBackToNewest(t *testing.T) {
	_, sort := BuildListQuery(ListPostsOptions{Sort: "bogus"}, time.Now())
	assert.Equal(t, bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	}, sort)
}

func TestBuildListQueryOldest(t *testing.T) {
	_, sort := BuildListQuery(ListPostsOptions{Sort: SortOldest}, time.Now())
	assert.Equal(t, bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: -1},
	}, sort)
}

func TestBuildListQueryPopular(t *testing.T) {
	filter, sort := BuildListQuery(ListPostsOptions{Sort: SortPopular}, time.Now())
	assert.Empty(t, filter, "popular sorts without a window filter")
	assert.Equal(t, bson.D{
		{Key: "visit", Value: -1},
		{Key: "_id", Value: -1},
	}, sort)
}

func TestBuildListQueryTrendingCouplesSortAndWindow(t *testing.T) {
	now := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	filter, sort := BuildListQuery(ListPostsOptions{Sort: SortTrending}, now)

	assert.Equal(t, bson.D{
		{Key: "visit", Value: -1},
		{Key: "_id", Value: -1},
	}, sort)

	require.Contains(t, filter, "created_at")
	window, ok := filter["created_at"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, now.Add(-TrendingWindow), window["$gte"])
}

func TestBuildListQueryFilters(t *testing.T) {
	authorID := primitive.NewObjectID()
	filter, _ := BuildListQuery(ListPostsOptions{
		Category: "tutorial",
		Search:   "go (lang)",
		AuthorID: &authorID,
		Featured: true,
	}, time.Now())

	assert.Equal(t, "tutorial", filter["category"])
	assert.Equal(t, authorID, filter["user"])
	assert.Equal(t, true, filter["is_featured"])

	re, ok := filter["title"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "i", re.Options)
	assert.Equal(t, `go \(lang\)`, re.Pattern, "search text must be regex-escaped")
}

func TestBuildListQueryFeaturedFalseOmitted(t *testing.T) {
	filter, _ := BuildListQuery(ListPostsOptions{Featured: false}, time.Now())
	_, present := filter["is_featured"]
	assert.False(t, present, "featured=false must not filter unfeatured posts out")
}
