package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

type ScopeKind int

const (
	ScopeIndex ScopeKind = iota
	ScopeCategory
	ScopeAuthor
)

// Scope selects which posts a listing draws from.
type Scope struct {
	Kind     ScopeKind
	Slug     string
	Username string
}

func IndexScope() Scope { return Scope{Kind: ScopeIndex} }
func CategoryScope(slug string) Scope { return Scope{Kind: ScopeCategory, Slug: slug} }
func AuthorScope(username string) Scope { return Scope{Kind: ScopeAuthor, Username: username} }

// Listing is one page of posts plus the subject of the scope, if any.
type Listing struct {
	Posts    *Page[models.Post] `json:"page_obj"`
	Category *models.Category   `json:"category,omitempty"`
	Author   *models.User       `json:"profile,omitempty"`
}

// PostInput carries validated post form data.
type PostInput struct {
	Title      string
	Text       string
	PubDate    time.Time
	CategoryID *int
	LocationID *int
	Image      string
}

// ProfileInput carries validated profile form data.
type ProfileInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

type Choices struct {
	Categories []models.Category `json:"categories"`
	Locations  []models.Location `json:"locations"`
}

type Service struct {
	repos    Repositories
	pageSize int
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Service)

// WithClock replaces time.Now as the source of "now" for visibility checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(repos Repositories, pageSize int, opts ...Option) *Service {
	if pageSize < 1 {
		pageSize = 1
	}
	s := &Service{
		repos:    repos,
		pageSize: pageSize,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) PageSize() int { return s.pageSize }

func (s *Service) Now() time.Time { return s.now().UTC() }

// IsPostVisible applies the visibility rules at the service clock's current time.
func (s *Service) IsPostVisible(post *models.Post, viewer Viewer) bool {
	return IsPostVisible(post, viewer, s.Now())
}

// ListPosts returns the requested page of the scope, newest first.
//
// Category scopes fail with ErrNotFound when the category is missing or
// unpublished, for every viewer. Author scopes show the author all of their
// own posts; everyone else, and every index listing, gets only public posts.
func (s *Service) ListPosts(ctx context.Context, scope Scope, viewer Viewer, page int) (*Listing, error) {
	offset, limit := Window(page, s.pageSize)
	filter := PostFilter{Offset: offset, Limit: limit}
	now := s.Now()
	listing := &Listing{}

	switch scope.Kind {
	case ScopeIndex:
		filter.VisibleAt = &now
	case ScopeCategory:
		category, err := s.repos.Categories.GetBySlug(ctx, scope.Slug)
		if err != nil {
			return nil, err
		}
		if !category.IsPublished {
			return nil, ErrNotFound
		}
		filter.CategoryID = &category.ID
		filter.VisibleAt = &now
		listing.Category = category
	case ScopeAuthor:
		author, err := s.repos.Users.GetByUsername(ctx, scope.Username)
		if err != nil {
			return nil, err
		}
		filter.AuthorID = &author.ID
		if !viewer.Is(author.ID) {
			filter.VisibleAt = &now
		}
		listing.Author = author
	default:
		return nil, fmt.Errorf("unknown scope kind %d", scope.Kind)
	}

	posts, total, err := s.repos.Posts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	listing.Posts = NewPage(Paginate(total, page, s.pageSize), posts)
	return listing, nil
}

// GetPostDetail returns the post if the viewer may see it. Hidden posts are
// reported as ErrNotFound, never as a permission error.
func (s *Service) GetPostDetail(ctx context.Context, id int, viewer Viewer) (*models.Post, error) {
	post, err := s.repos.Posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.IsPostVisible(post, viewer) {
		return nil, ErrNotFound
	}
	return post, nil
}

// ListComments returns the post's comments, oldest first. Visibility of the
// post is the caller's responsibility.
func (s *Service) ListComments(ctx context.Context, post *models.Post) ([]models.Comment, error) {
	comments, err := s.repos.Comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

func (s *Service) FormChoices(ctx context.Context) (*Choices, error) {
	categories, err := s.repos.Categories.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	locations, err := s.repos.Locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	return &Choices{Categories: categories, Locations: locations}, nil
}

// authorize checks that viewer may mutate a record written by authorID.
func authorize(viewer Viewer, authorID int) error {
	if !viewer.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if !viewer.Is(authorID) {
		return ErrNotAuthor
	}
	return nil
}

func (s *Service) checkReferences(ctx context.Context, in PostInput) error {
	errs := validation.Errors{}
	if in.CategoryID != nil {
		if _, err := s.repos.Categories.Get(ctx, *in.CategoryID); err != nil {
			if !errors.Is(err, ErrNotFound) {
				return err
			}
			errs["category"] = errors.New("select a valid category")
		}
	}
	if in.LocationID != nil {
		if _, err := s.repos.Locations.Get(ctx, *in.LocationID); err != nil {
			if !errors.Is(err, ErrNotFound) {
				return err
			}
			errs["location"] = errors.New("select a valid location")
		}
	}
	return errs.Filter()
}

func applyPostInput(post *models.Post, in PostInput) {
	post.Title = in.Title
	post.Text = in.Text
	post.PubDate = in.PubDate.UTC()
	post.CategoryID = in.CategoryID
	post.LocationID = in.LocationID
	post.Image = in.Image
	// Loaded associations would otherwise disagree with the new ids.
	post.Category = nil
	post.Location = nil
}

// CreatePost stores a new published post written by the viewer.
func (s *Service) CreatePost(ctx context.Context, viewer Viewer, in PostInput) (*models.Post, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return nil, err
	}

	post := &models.Post{
		IsPublished: true,
		AuthorID:    viewer.UserID,
	}
	applyPostInput(post, in)
	if err := s.repos.Posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	s.logger.InfoContext(ctx, "Post created", slog.Int("post_id", post.ID), slog.Int("author_id", post.AuthorID))
	return post, nil
}

// EditablePost returns the post if the viewer wrote it.
func (s *Service) EditablePost(ctx context.Context, viewer Viewer, id int) (*models.Post, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	post, err := s.repos.Posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(viewer, post.AuthorID); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) UpdatePost(ctx context.Context, viewer Viewer, id int, in PostInput) (*models.Post, error) {
	post, err := s.EditablePost(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return nil, err
	}
	applyPostInput(post, in)
	if err := s.repos.Posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}
	return post, nil
}

func (s *Service) DeletePost(ctx context.Context, viewer Viewer, id int) (*models.Post, error) {
	post, err := s.EditablePost(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Posts.Delete(ctx, post); err != nil {
		return nil, fmt.Errorf("deleting post: %w", err)
	}
	s.logger.InfoContext(ctx, "Post deleted", slog.Int("post_id", post.ID))
	return post, nil
}

// CreateComment adds a comment to a post the viewer can see.
func (s *Service) CreateComment(ctx context.Context, viewer Viewer, postID int, text string) (*models.Comment, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	post, err := s.GetPostDetail(ctx, postID, viewer)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{
		Text:     text,
		AuthorID: viewer.UserID,
		PostID:   post.ID,
	}
	if err := s.repos.Comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

// EditableComment returns the comment if it belongs to postID and the viewer wrote it.
func (s *Service) EditableComment(ctx context.Context, viewer Viewer, postID, commentID int) (*models.Comment, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	comment, err := s.repos.Comments.Get(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, ErrNotFound
	}
	if err := authorize(viewer, comment.AuthorID); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) UpdateComment(ctx context.Context, viewer Viewer, postID, commentID int, text string) (*models.Comment, error) {
	comment, err := s.EditableComment(ctx, viewer, postID, commentID)
	if err != nil {
		return nil, err
	}
	comment.Text = text
	if err := s.repos.Comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}
	return comment, nil
}

func (s *Service) DeleteComment(ctx context.Context, viewer Viewer, postID, commentID int) (*models.Comment, error) {
	comment, err := s.EditableComment(ctx, viewer, postID, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Comments.Delete(ctx, comment); err != nil {
		return nil, fmt.Errorf("deleting comment: %w", err)
	}
	return comment, nil
}

// Profile returns the viewer's own user record.
func (s *Service) Profile(ctx context.Context, viewer Viewer) (*models.User, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	return s.repos.Users.Get(ctx, viewer.UserID)
}

// UpdateProfile edits the viewer's own user record.
func (s *Service) UpdateProfile(ctx context.Context, viewer Viewer, in ProfileInput) (*models.User, error) {
	user, err := s.Profile(ctx, viewer)
	if err != nil {
		return nil, err
	}

	if in.Username != user.Username {
		_, err := s.repos.Users.GetByUsername(ctx, in.Username)
		switch {
		case err == nil:
			return nil, UsernameTaken()
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
	}

	user.Username = in.Username
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Email = in.Email
	if err := s.repos.Users.Update(ctx, user); err != nil {
		// The lookup above can lose a race to a concurrent rename.
		if errors.Is(err, ErrConflict) {
			return nil, UsernameTaken()
		}
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return user, nil
}

// UsernameTaken is the validation failure for a username already in use.
func UsernameTaken() error {
	return validation.Errors{"username": errors.New("a user with that username already exists")}
}
