package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

func TestCategoryService_SlugAndConflict(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewCategoryService(repos.Categories)
	ctx := context.Background()

	cat, err := svc.Create(ctx, TermInput{Name: "Web Dev"})
	require.NoError(t, err)
	assert.Equal(t, "web-dev", cat.Slug)

	_, err = svc.Create(ctx, TermInput{Name: "Web Dev"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = svc.Create(ctx, TermInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	updated, err := svc.Update(ctx, cat.ID, TermInput{Name: "Web Development", Slug: "webdev"})
	require.NoError(t, err)
	assert.Equal(t, "webdev", updated.Slug)

	_, err = svc.Update(ctx, 999, TermInput{Name: "Nope"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostService_Lifecycle(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	authors := NewAuthorService(repos.Authors)
	tags := NewTagService(repos.Tags)
	posts := NewPostService(repos.Posts, repos.Authors, repos.Categories)

	author, err := authors.Create(ctx, AuthorInput{Name: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, "ada-lovelace", author.Slug)
	tag, err := tags.Create(ctx, TermInput{Name: "Go"})
	require.NoError(t, err)

	post, err := posts.Create(ctx, PostInput{Title: "First Post", Content: "hello", AuthorID: author.ID, TagIDs: []uint{tag.ID}})
	require.NoError(t, err)
	assert.Equal(t, "first-post", post.Slug)
	assert.False(t, post.Published)
	assert.Nil(t, post.PublishedAt)
	require.Len(t, post.Tags, 1)
	assert.Equal(t, "Ada Lovelace", post.Author.Name)

	_, err = posts.GetPublished(ctx, "first-post")
	assert.ErrorIs(t, err, repository.ErrNotFound, "drafts are hidden")

	published, err := posts.SetPublished(ctx, post.ID, true)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstStamp := *published.PublishedAt
	assert.Len(t, published.Tags, 1, "publishing keeps tags")

	_, err = posts.SetPublished(ctx, post.ID, false)
	require.NoError(t, err)
	again, err := posts.SetPublished(ctx, post.ID, true)
	require.NoError(t, err)
	assert.True(t, firstStamp.Equal(*again.PublishedAt), "first publication time is kept")

	got, err := posts.GetPublished(ctx, "first-post")
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	_, err = posts.Create(ctx, PostInput{Title: "First Post", AuthorID: author.ID})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = posts.Create(ctx, PostInput{Title: "Orphan", AuthorID: 999})
	assert.ErrorIs(t, err, ErrInvalidInput)

	missing := uint(42)
	_, err = posts.Create(ctx, PostInput{Title: "Lost", AuthorID: author.ID, CategoryID: &missing})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = posts.Create(ctx, PostInput{Title: "Bad tags", AuthorID: author.ID, TagIDs: []uint{777}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	page, err := posts.List(ctx, domain.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, defaultPerPage, page.PerPage)
	assert.Equal(t, 1, page.Pages())

	require.NoError(t, posts.Delete(ctx, post.ID))
	assert.ErrorIs(t, posts.Delete(ctx, post.ID), repository.ErrNotFound)
}

func TestSettingsService(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewSettingsService(repos.Settings)
	ctx := context.Background()

	s, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "My Blog", s.SiteName)

	require.NoError(t, svc.EnsureDefaults(ctx))
	require.NoError(t, svc.EnsureDefaults(ctx))

	_, err = svc.Update(ctx, SettingsInput{SiteName: "", PostsPerPage: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Update(ctx, SettingsInput{SiteName: "Blog", PostsPerPage: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(ctx, SettingsInput{SiteName: " Notes ", PostsPerPage: 3, FooterText: "bye"})
	require.NoError(t, err)
	s, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Notes", s.SiteName)
	assert.Equal(t, 3, s.PostsPerPage)
}

func TestDashboardService(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	authors := NewAuthorService(repos.Authors)
	posts := NewPostService(repos.Posts, repos.Authors, repos.Categories)

	author, err := authors.Create(ctx, AuthorInput{Name: "Ada"})
	require.NoError(t, err)
	_, err = posts.Create(ctx, PostInput{Title: "One", AuthorID: author.ID, Published: true})
	require.NoError(t, err)
	_, err = posts.Create(ctx, PostInput{Title: "Two", AuthorID: author.ID})
	require.NoError(t, err)

	stats, err := NewDashboardService(repos.Posts, repos.Authors, repos.Categories, repos.Tags, repos.Users).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Posts: 2, Published: 1, Drafts: 1, Authors: 1}, stats)
}
