package blog

import (
	"context"
	"time"

	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

// PostFilter narrows a post listing. Nil fields do not filter.
type PostFilter struct {
	AuthorID   *int
	CategoryID *int

	// VisibleAt, when set, keeps only posts publicly visible at that instant.
	VisibleAt *time.Time

	Offset int
	Limit  int
}

// Repositories implementations return ErrNotFound for missing records and
// ErrConflict when a unique value is already taken.

type PostRepository interface {
	Get(ctx context.Context, id int) (*models.Post, error)
	// List returns the matching page ordered by pub_date descending, id
	// ascending, together with the total number of matches.
	List(ctx context.Context, filter PostFilter) ([]models.Post, int64, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, post *models.Post) error
}

type CategoryRepository interface {
	Get(ctx context.Context, id int) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context, publishedOnly bool) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
}

type LocationRepository interface {
	Get(ctx context.Context, id int) (*models.Location, error)
	List(ctx context.Context) ([]models.Location, error)
	Create(ctx context.Context, location *models.Location) error
}

type CommentRepository interface {
	Get(ctx context.Context, id int) (*models.Comment, error)
	// ListByPost returns comments oldest first.
	ListByPost(ctx context.Context, postID int) ([]models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, comment *models.Comment) error
}

type UserRepository interface {
	Get(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

type Repositories struct {
	Posts      PostRepository
	Categories CategoryRepository
	Locations  LocationRepository
	Comments   CommentRepository
	Users      UserRepository
}
