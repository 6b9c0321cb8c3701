package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/akarpov/blogbox/internal/client/api"
	"github.com/akarpov/blogbox/internal/client/browse"
	"github.com/akarpov/blogbox/internal/client/route"
)

// Categories accepted by the backend.
var categories = []string{"Career", "Finance", "Travel", "Technology", "Health", "Other"}

func validCategory(c string) bool {
	for _, cat := range categories {
		if cat == c {
			return true
		}
	}
	return false
}

// guard redirects to /login when the session has no token. It returns
// false when the requested view must not render.
func (a *App) guard(ctx context.Context) bool {
	d := route.Protect(a.controller.Current())
	if d.Allow {
		return true
	}
	printlnFn("Not logged in, redirecting to", string(d.RedirectTo))
	_ = a.Login(ctx)
	return false
}

// Blogs renders the /blogs view: the filtered listing. Inside the view,
// "c <category>" switches the category (immediate), "a <text>" edits the
// author filter (debounced), "a" clears it, "q" leaves the view.
func (a *App) Blogs(ctx context.Context) error {
	if !a.guard(ctx) {
		return nil
	}

	token := a.controller.Current().Token

	fetcher := browse.NewFetcher(
		func(ctx context.Context, filter api.ListFilter) ([]api.BlogSummary, error) {
			return a.client.ListBlogs(ctx, token, filter)
		},
		browse.WithQuietPeriod(a.config.AuthorQuietPeriod),
		browse.WithOnUpdate(func(s browse.Snapshot) { a.printListing(s) }),
		browse.WithOnError(func(err error) { printlnFn("Failed to fetch blogs:", err.Error()) }),
	)
	defer fetcher.Stop()

	fetcher.Start(ctx)

	for {
		printlnFn(`blogs> ("c <category>", "a <author>", "q" to go back)`)
		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			return nil
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "q":
			return nil
		case line == "a":
			fetcher.TypeAuthor("")
		case strings.HasPrefix(line, "a "):
			fetcher.TypeAuthor(strings.TrimSpace(line[2:]))
		case line == "c":
			fetcher.SetCategory("")
		case strings.HasPrefix(line, "c "):
			cat := strings.TrimSpace(line[2:])
			if !validCategory(cat) {
				printlnFn("Unknown category. One of:", strings.Join(categories, ", "))
				continue
			}
			fetcher.SetCategory(cat)
		case line == "":
			continue
		default:
			printlnFn("Unknown listing command:", line)
		}
	}
}

func (a *App) printListing(s browse.Snapshot) {
	header := "All Blogs"
	if s.Category != "" || s.Author != "" {
		header = fmt.Sprintf("Blogs (category=%q author=%q)", s.Category, s.Author)
	}
	printlnFn(header)

	if len(s.Blogs) == 0 {
		printlnFn("No blogs found.")
		return
	}
	for _, b := range s.Blogs {
		printlnFn(formatBlog(b))
	}
}

func formatBlog(b api.BlogSummary) string {
	content := b.Content
	if len(content) > 80 {
		content = content[:80] + "..."
	}
	return fmt.Sprintf("[%s] %s by %s (%s): %s", b.ID, b.Title, b.Author, b.Category, content)
}

// MyBlogs renders the /my-blogs view.
func (a *App) MyBlogs(ctx context.Context) error {
	if !a.guard(ctx) {
		return nil
	}

	blogs, err := a.client.MyBlogs(ctx, a.controller.Current().Token)
	if err != nil {
		printlnFn("Failed to fetch your blogs:", err.Error())
		return nil
	}

	if len(blogs) == 0 {
		printlnFn("You have not written any blogs yet.")
		return nil
	}
	for _, b := range blogs {
		printlnFn(formatBlog(b))
	}
	return nil
}

// CreateBlog renders the /create-blog view.
func (a *App) CreateBlog(ctx context.Context) error {
	if !a.guard(ctx) {
		return nil
	}

	draft, err := a.readDraft()
	if err != nil {
		return err
	}

	blog, err := a.client.CreateBlog(ctx, a.controller.Current().Token, draft)
	if err != nil {
		printlnFn("Failed to create blog:", err.Error())
		return nil
	}

	printlnFn("Created:", formatBlog(blog))
	return nil
}

// EditBlog renders the /edit-blog/:id view for the given post.
func (a *App) EditBlog(ctx context.Context, id string) error {
	if !a.guard(ctx) {
		return nil
	}

	token := a.controller.Current().Token

	current, err := a.client.GetBlog(ctx, token, id)
	if err != nil {
		printlnFn("Failed to fetch blog:", err.Error())
		return nil
	}
	printlnFn("Editing:", formatBlog(current))

	draft, err := a.readDraft()
	if err != nil {
		return err
	}

	blog, err := a.client.UpdateBlog(ctx, token, id, draft)
	if err != nil {
		printlnFn("Failed to update blog:", err.Error())
		return nil
	}

	printlnFn("Updated:", formatBlog(blog))
	return nil
}

// DeleteBlog removes one of the caller's posts.
func (a *App) DeleteBlog(ctx context.Context, id string) error {
	if !a.guard(ctx) {
		return nil
	}

	if err := a.client.DeleteBlog(ctx, a.controller.Current().Token, id); err != nil {
		printlnFn("Failed to delete blog:", err.Error())
		return nil
	}

	printlnFn("Deleted", id)
	return nil
}

func (a *App) readDraft() (api.BlogDraft, error) {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return api.BlogDraft{}, err
	}

	category, err := getSimpleText(a.reader, "Category ("+strings.Join(categories, ", ")+")", os.Stdout)
	if err != nil {
		return api.BlogDraft{}, err
	}

	content, err := GetMultiline(a.reader, "Content", os.Stdout)
	if err != nil {
		return api.BlogDraft{}, err
	}

	return api.BlogDraft{Title: title, Category: category, Content: content}, nil
}
