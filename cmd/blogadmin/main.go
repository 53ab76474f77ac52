package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/gosimple/slug"
	"github.com/urfave/cli/v2"

	"github.com/emilythestrangee/blogicum/backend/internal/blog"
	"github.com/emilythestrangee/blogicum/backend/internal/config"
	"github.com/emilythestrangee/blogicum/backend/internal/database"
	"github.com/emilythestrangee/blogicum/backend/internal/logging"
	"github.com/emilythestrangee/blogicum/backend/internal/models"
	"github.com/emilythestrangee/blogicum/backend/internal/store"
)

// env holds what the commands need. The database is opened by the first
// action that asks for it, so help and usage errors work without one.
type env struct {
	db     database.Service
	repos  blog.Repositories
	logger *slog.Logger
}

func (e *env) open() error {
	if e.db != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	e.logger = logging.New(cfg.Debug, cfg.LogFile)
	db, err := database.New(cfg, e.logger)
	if err != nil {
		return err
	}
	e.db = db
	e.repos = store.New(db.GetDB())
	return nil
}

// with opens the database before running action.
func (e *env) with(action cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		if err := e.open(); err != nil {
			return err
		}
		return action(c)
	}
}

func (e *env) close() error {
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}

func main() {
	if err := newApp(&env{}).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:  "blogadmin",
		Usage: "Administer categories, locations and post publication",
		After: func(c *cli.Context) error { return e.close() },
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Create or update the database schema",
				Action: e.with(func(c *cli.Context) error {
					return e.db.Migrate()
				}),
			},
			{
				Name:  "category",
				Usage: "Manage categories",
				Subcommands: []*cli.Command{
					{
						Name:  "add",
						Usage: "Create a category",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "title", Required: true},
							&cli.StringFlag{Name: "description", Value: ""},
							&cli.StringFlag{Name: "slug", Usage: "defaults to the slugified title"},
							&cli.BoolFlag{Name: "hidden", Usage: "create it unpublished"},
						},
						Action: e.with(e.addCategory),
					},
					{
						Name:      "publish",
						Usage:     "Publish a category",
						ArgsUsage: "<slug>",
						Action:    e.with(func(c *cli.Context) error { return e.setCategoryPublished(c, true) }),
					},
					{
						Name:      "unpublish",
						Usage:     "Hide a category and all of its posts",
						ArgsUsage: "<slug>",
						Action:    e.with(func(c *cli.Context) error { return e.setCategoryPublished(c, false) }),
					},
				},
			},
			{
				Name:  "location",
				Usage: "Manage locations",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Create a location",
						ArgsUsage: "<name>",
						Action:    e.with(e.addLocation),
					},
				},
			},
			{
				Name:  "post",
				Usage: "Moderate posts",
				Subcommands: []*cli.Command{
					{
						Name:      "publish",
						ArgsUsage: "<id>",
						Action:    e.with(func(c *cli.Context) error { return e.setPostPublished(c, true) }),
					},
					{
						Name:      "unpublish",
						ArgsUsage: "<id>",
						Action:    e.with(func(c *cli.Context) error { return e.setPostPublished(c, false) }),
					},
				},
			},
		},
	}
}

func (e *env) addCategory(c *cli.Context) error {
	s := c.String("slug")
	if s == "" {
		s = slug.Make(c.String("title"))
	}
	if !slug.IsSlug(s) {
		return fmt.Errorf("%q is not a valid slug", s)
	}
	category := &models.Category{
		Title:       c.String("title"),
		Slug:        s,
		Description: c.String("description"),
		IsPublished: !c.Bool("hidden"),
	}
	if err := e.repos.Categories.Create(context.Background(), category); err != nil {
		return err
	}
	e.logger.Info("Category created", slog.Int("id", category.ID), slog.String("slug", category.Slug))
	return nil
}

func (e *env) setCategoryPublished(c *cli.Context, published bool) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one slug", 2)
	}
	ctx := context.Background()
	category, err := e.repos.Categories.GetBySlug(ctx, c.Args().First())
	if err != nil {
		return err
	}
	category.IsPublished = published
	if err := e.repos.Categories.Update(ctx, category); err != nil {
		return err
	}
	e.logger.Info("Category updated", slog.String("slug", category.Slug), slog.Bool("published", published))
	return nil
}

func (e *env) addLocation(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one name", 2)
	}
	location := &models.Location{Name: c.Args().First(), IsPublished: true}
	if err := e.repos.Locations.Create(context.Background(), location); err != nil {
		return err
	}
	e.logger.Info("Location created", slog.Int("id", location.ID), slog.String("name", location.Name))
	return nil
}

func (e *env) setPostPublished(c *cli.Context, published bool) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one post id", 2)
	}
	id, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return fmt.Errorf("invalid post id: %w", err)
	}
	ctx := context.Background()
	post, err := e.repos.Posts.Get(ctx, id)
	if err != nil {
		return err
	}
	post.IsPublished = published
	if err := e.repos.Posts.Update(ctx, post); err != nil {
		return err
	}
	e.logger.Info("Post updated", slog.Int("id", post.ID), slog.Bool("published", published))
	return nil
}
