package store_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/blogicum/backend/internal/blog"
	"github.com/emilythestrangee/blogicum/backend/internal/models"
	"github.com/emilythestrangee/blogicum/backend/internal/store"
	"github.com/emilythestrangee/blogicum/backend/internal/testutil"
)

func setup(t *testing.T) (blog.Repositories, *testutil.Fixtures) {
	t.Helper()
	db := testutil.NewDB(t)
	return store.New(db.GetDB()), testutil.NewFixtures(t, db.GetDB())
}

// The SQL filter and the in-memory predicate must agree on every post.
func TestVisibleFilterMatchesPredicate(t *testing.T) {
	repos, fx := setup(t)
	ctx := context.Background()
	author := fx.User("author")
	published := fx.Category("published", true)
	hidden := fx.Category("hidden", false)

	for _, category := range []*models.Category{nil, published, hidden} {
		for _, unpublished := range []bool{false, true} {
			for _, pubDate := range []time.Time{
				testutil.Now.Add(-time.Hour),
				testutil.Now,
				testutil.Now.Add(time.Second),
			} {
				fx.Post(author, "p", testutil.PostOpts{Category: category, Unpublished: unpublished, PubDate: pubDate})
			}
		}
	}

	all, total, err := repos.Posts.List(ctx, blog.PostFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 18, total)

	now := testutil.Now
	visible, visibleTotal, err := repos.Posts.List(ctx, blog.PostFilter{VisibleAt: &now})
	require.NoError(t, err)
	assert.EqualValues(t, len(visible), visibleTotal)

	shown := make(map[int]bool)
	for _, p := range visible {
		shown[p.ID] = true
	}
	for i := range all {
		p := &all[i]
		assert.Equal(t, blog.IsPubliclyVisible(p, now), shown[p.ID], "post %d", p.ID)
	}
	// uncategorised and published-category posts at -1h and now
	assert.Len(t, visible, 4)
}

func TestListFiltersAndWindow(t *testing.T) {
	repos, fx := setup(t)
	ctx := context.Background()
	alice := fx.User("alice")
	bob := fx.User("bob")
	travel := fx.Category("travel", true)

	for i := 0; i < 5; i++ {
		fx.Post(alice, "alice", testutil.PostOpts{Category: travel, PubDate: testutil.Now.Add(-time.Duration(i+1) * time.Hour)})
	}
	fx.Post(bob, "bob", testutil.PostOpts{Category: travel})
	fx.Post(bob, "bob uncategorised", testutil.PostOpts{})

	posts, total, err := repos.Posts.List(ctx, blog.PostFilter{AuthorID: &alice.ID, Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, posts, 2)
	assert.True(t, posts[0].PubDate.Equal(testutil.Now.Add(-3*time.Hour)))
	assert.True(t, posts[1].PubDate.Equal(testutil.Now.Add(-4*time.Hour)))
	assert.Equal(t, "alice", posts[0].Author.Username)
	require.NotNil(t, posts[0].Category)
	assert.Equal(t, "travel", posts[0].Category.Slug)

	_, total, err = repos.Posts.List(ctx, blog.PostFilter{CategoryID: &travel.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)

	_, total, err = repos.Posts.List(ctx, blog.PostFilter{AuthorID: &bob.ID, CategoryID: &travel.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestCommentCountAndDeleteCascade(t *testing.T) {
	repos, fx := setup(t)
	ctx := context.Background()
	author := fx.User("author")
	post := fx.Post(author, "with comments", testutil.PostOpts{})
	other := fx.Post(author, "without comments", testutil.PostOpts{})
	for i := 0; i < 3; i++ {
		fx.Comment(author, post, "c", testutil.Now.Add(time.Duration(i)*time.Minute))
	}

	got, err := repos.Posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.CommentCount)

	got, err = repos.Posts.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, got.CommentCount)
	assert.Nil(t, got.Category)
	assert.Nil(t, got.Location)

	require.NoError(t, repos.Posts.Delete(ctx, post))
	_, err = repos.Posts.Get(ctx, post.ID)
	assert.ErrorIs(t, err, blog.ErrNotFound)

	comments, err := repos.Comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestUpdateKeepsCreatedAtAndFlags(t *testing.T) {
	repos, fx := setup(t)
	ctx := context.Background()
	author := fx.User("author")
	category := fx.Category("c", true)
	post := fx.Post(author, "before", testutil.PostOpts{Category: category, Unpublished: true})

	got, err := repos.Posts.Get(ctx, post.ID)
	require.NoError(t, err)
	got.Title = "after"
	got.CategoryID = nil
	got.Category = nil
	require.NoError(t, repos.Posts.Update(ctx, got))

	got, err = repos.Posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Nil(t, got.CategoryID)
	assert.False(t, got.IsPublished)

	// the category itself is untouched
	c, err := repos.Categories.Get(ctx, category.ID)
	require.NoError(t, err)
	assert.True(t, c.IsPublished)
}

func TestNotFound(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	_, err := repos.Posts.Get(ctx, 1)
	assert.ErrorIs(t, err, blog.ErrNotFound)
	_, err = repos.Categories.GetBySlug(ctx, "nope")
	assert.ErrorIs(t, err, blog.ErrNotFound)
	_, err = repos.Users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, blog.ErrNotFound)
	_, err = repos.Comments.Get(ctx, 1)
	assert.ErrorIs(t, err, blog.ErrNotFound)
	_, err = repos.Locations.Get(ctx, 1)
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestCategoryList(t *testing.T) {
	repos, fx := setup(t)
	ctx := context.Background()
	fx.Category("b", true)
	fx.Category("a", false)

	all, err := repos.Categories.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	published, err := repos.Categories.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "b", published[0].Slug)

	published[0].IsPublished = false
	require.NoError(t, repos.Categories.Update(ctx, &published[0]))
	published, err = repos.Categories.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, published)
}

func TestUsernameUnique(t *testing.T) {
	repos, fx := setup(t)
	fx.User("taken")
	err := repos.Users.Create(context.Background(), &models.User{Username: "taken", PasswordHash: "x"})
	assert.ErrorIs(t, err, blog.ErrConflict)
	assert.NotErrorIs(t, err, blog.ErrNotFound)
	assert.Equal(t, http.StatusConflict, blog.ErrorCode(err))

	other := fx.User("other")
	other.Username = "taken"
	assert.ErrorIs(t, repos.Users.Update(context.Background(), other), blog.ErrConflict)
}
