//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/emilythestrangee/blogicum/backend/internal/blog"
	"github.com/emilythestrangee/blogicum/backend/internal/config"
	"github.com/emilythestrangee/blogicum/backend/internal/database"
	"github.com/emilythestrangee/blogicum/backend/internal/store"
	"github.com/emilythestrangee/blogicum/backend/internal/testutil"
)

func startPostgres(t *testing.T) database.Service {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("blogicum"),
		postgres.WithUsername("blogicum"),
		postgres.WithPassword("blogicum"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := testutil.Config()
	cfg.DBDriver = config.DriverPostgres
	cfg.DBHost = host
	cfg.DBPort = port.Port()
	cfg.DBUser = "blogicum"
	cfg.DBPassword = "blogicum"
	cfg.DBName = "blogicum"
	cfg.DBSSLMode = "disable"

	db, err := database.New(cfg, testutil.Logger())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPostgresVisibility(t *testing.T) {
	db := startPostgres(t)
	assert.Equal(t, "up", db.Health(context.Background())["status"])

	ctx := context.Background()
	repos := store.New(db.GetDB())
	fx := testutil.NewFixtures(t, db.GetDB())

	author := fx.User("author")
	reader := fx.User("reader")
	published := fx.Category("published", true)
	hidden := fx.Category("hidden", false)

	public := fx.Post(author, "public", testutil.PostOpts{Category: published})
	fx.Post(author, "uncategorised", testutil.PostOpts{PubDate: testutil.Now.Add(-2 * time.Hour)})
	fx.Post(author, "draft", testutil.PostOpts{Unpublished: true})
	fx.Post(author, "scheduled", testutil.PostOpts{PubDate: testutil.Now.Add(time.Hour)})
	fx.Post(author, "hidden category", testutil.PostOpts{Category: hidden})
	fx.Comment(reader, public, "first", testutil.Now)

	svc := blog.NewService(repos, 10, blog.WithClock(testutil.Clock), blog.WithLogger(testutil.Logger()))

	index, err := svc.ListPosts(ctx, blog.IndexScope(), blog.Anonymous, 1)
	require.NoError(t, err)
	require.Len(t, index.Posts.Items, 2)
	assert.Equal(t, "public", index.Posts.Items[0].Title)
	assert.EqualValues(t, 1, index.Posts.Items[0].CommentCount)

	own, err := svc.ListPosts(ctx, blog.AuthorScope("author"), blog.Viewer{UserID: author.ID, Username: "author"}, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 5, own.Posts.Total)

	_, err = svc.ListPosts(ctx, blog.CategoryScope("hidden"), blog.Viewer{UserID: author.ID, Username: "author"}, 1)
	assert.ErrorIs(t, err, blog.ErrNotFound)
}
