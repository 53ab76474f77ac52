// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/emilythestrangee/blogicum/backend/internal/config"
	"github.com/emilythestrangee/blogicum/backend/internal/database"
	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

// Now is the fixed clock used by fixtures.
var Now = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func Clock() time.Time { return Now }

func Config() *config.Config {
	return &config.Config{
		Port:         "0",
		DBDriver:     config.DriverSQLite,
		DBPath:       ":memory:",
		JWTSecret:    "test-secret",
		SessionTTL:   time.Hour,
		PostsPerPage: 10,
		CORSOrigins:  []string{"*"},
	}
}

func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewDB opens a migrated in-memory sqlite database closed at test cleanup.
func NewDB(t testing.TB) database.Service {
	t.Helper()
	svc, err := database.New(Config(), Logger())
	require.NoError(t, err)
	require.NoError(t, svc.Migrate())
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

// Fixtures creates records directly through gorm.
type Fixtures struct {
	t  testing.TB
	db *gorm.DB
}

func NewFixtures(t testing.TB, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db.WithContext(context.Background())}
}

func (f *Fixtures) create(v any) {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(v).Error)
}

func (f *Fixtures) User(username string) *models.User {
	u := &models.User{Username: username, PasswordHash: "x"}
	f.create(u)
	return u
}

func (f *Fixtures) Category(slug string, published bool) *models.Category {
	c := &models.Category{
		Title:       "Category " + slug,
		Slug:        slug,
		Description: "Description",
		IsPublished: published,
	}
	f.create(c)
	return c
}

func (f *Fixtures) Location(name string) *models.Location {
	l := &models.Location{Name: name, IsPublished: true}
	f.create(l)
	return l
}

// PostOpts tweaks a fixture post; the defaults produce a public post.
type PostOpts struct {
	Unpublished bool
	PubDate     time.Time
	Category    *models.Category
	Location    *models.Location
}

func (f *Fixtures) Post(author *models.User, title string, opts PostOpts) *models.Post {
	pubDate := opts.PubDate
	if pubDate.IsZero() {
		pubDate = Now.Add(-time.Hour)
	}
	p := &models.Post{
		Title:       title,
		Text:        "Text of " + title,
		PubDate:     pubDate.UTC(),
		IsPublished: !opts.Unpublished,
		AuthorID:    author.ID,
	}
	if opts.Category != nil {
		p.CategoryID = &opts.Category.ID
	}
	if opts.Location != nil {
		p.LocationID = &opts.Location.ID
	}
	f.create(p)
	return p
}

func (f *Fixtures) Comment(author *models.User, post *models.Post, text string, createdAt time.Time) *models.Comment {
	c := &models.Comment{Text: text, AuthorID: author.ID, PostID: post.ID, CreatedAt: createdAt.UTC()}
	f.create(c)
	return c
}
