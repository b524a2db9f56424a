package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"bloglist/internal/domain"
	"bloglist/internal/repository"
)

// BlogInput carries the caller-supplied fields for a new blog.
type BlogInput struct {
	Title  string
	Author string
	URL    string
	Likes  int
}

// BlogService coordinates blog level operations backed by the repository.
type BlogService interface {
	Create(ctx context.Context, input BlogInput, ownerID string) (*domain.Blog, error)
	Get(ctx context.Context, id string) (*domain.Blog, error)
	List(ctx context.Context) ([]domain.Blog, error)
	Update(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error)
	Delete(ctx context.Context, id, callerID string) error
	Stats(ctx context.Context) (*domain.BlogStats, error)
}

type blogService struct {
	blogs repository.BlogRepository
}

func NewBlogService(blogs repository.BlogRepository) BlogService {
	return &blogService{blogs: blogs}
}

// Create stores a new blog owned by ownerID. A blog missing both title and
// url is rejected; likes defaults to zero.
func (s *blogService) Create(ctx context.Context, input BlogInput, ownerID string) (*domain.Blog, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)
	input.URL = strings.TrimSpace(input.URL)

	if input.Title == "" && input.URL == "" {
		return nil, validationErrorf("title or url must be provided")
	}
	if input.Likes < 0 {
		return nil, validationErrorf("likes must not be negative")
	}

	blog := &domain.Blog{
		ID:      uuid.NewString(),
		Title:   input.Title,
		Author:  input.Author,
		URL:     input.URL,
		Likes:   input.Likes,
		OwnerID: ownerID,
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}
	return s.blogs.Get(ctx, blog.ID)
}

func (s *blogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	return s.blogs.Get(ctx, id)
}

func (s *blogService) List(ctx context.Context) ([]domain.Blog, error) {
	return s.blogs.List(ctx)
}

// Update applies a partial update. Fields absent from the patch keep their
// stored values; id and owner are immutable.
func (s *blogService) Update(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error) {
	if patch.Likes != nil && *patch.Likes < 0 {
		return nil, validationErrorf("likes must not be negative")
	}
	if !patch.IsEmpty() {
		if err := s.blogs.Update(ctx, id, patch); err != nil {
			return nil, err
		}
	}
	return s.blogs.Get(ctx, id)
}

// Delete removes the blog. Blogs with a recorded owner may only be removed
// by that owner; legacy unowned blogs are removable by any authenticated caller.
func (s *blogService) Delete(ctx context.Context, id, callerID string) error {
	blog, err := s.blogs.Get(ctx, id)
	if err != nil {
		return err
	}
	if blog.OwnerID != "" && blog.OwnerID != callerID {
		return ErrNotOwner
	}
	return s.blogs.Delete(ctx, id)
}

// Stats aggregates the full blog list: like total, most liked blog, and
// the author with the most blogs.
func (s *blogService) Stats(ctx context.Context) (*domain.BlogStats, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.BlogStats{Blogs: len(blogs)}
	counts := make(map[string]int)
	for i := range blogs {
		blog := &blogs[i]
		stats.TotalLikes += blog.Likes
		if stats.Favorite == nil || blog.Likes > stats.Favorite.Likes {
			stats.Favorite = blog
		}
		if blog.Author == "" {
			continue
		}
		counts[blog.Author]++
		if stats.TopAuthor == nil || counts[blog.Author] > stats.TopAuthor.Blogs {
			stats.TopAuthor = &domain.AuthorCount{Author: blog.Author, Blogs: counts[blog.Author]}
		}
	}
	return stats, nil
}
