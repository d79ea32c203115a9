package dto

import (
	"time"

	"github.com/edupath-ng/edupath-go-api/internal/models"
)

// BlogCreateRequest carries a new article.
type BlogCreateRequest struct {
	Title     string `json:"title" validate:"required,max=150"`
	Content   string `json:"content" validate:"required,max=5000"`
	BlogImage string `json:"blogImage" validate:"omitempty,url"`
}

// BlogUpdateRequest holds optional article edits.
type BlogUpdateRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=150"`
	Content   *string `json:"content" validate:"omitempty,min=1,max=5000"`
	BlogImage *string `json:"blogImage" validate:"omitempty,url"`
}

// BlogListResponse wraps a paginated blog listing.
type BlogListResponse struct {
	Blogs      []models.Blog  `json:"blogs"`
	Pagination PaginationMeta `json:"pagination"`
}

// TestimonialCreateRequest carries a testimonial submission. The handler
// decides whether it is internal or external; callers cannot set the
// approval flags themselves.
type TestimonialCreateRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Content      string `json:"content" validate:"required,max=2000"`
	Role         string `json:"role" validate:"omitempty,max=128"`
	Company      string `json:"company" validate:"omitempty,max=255"`
	ProfileImage string `json:"profileImage" validate:"omitempty,url"`
}

// TestimonialUpdateRequest holds optional testimonial edits.
type TestimonialUpdateRequest struct {
	FirstName    *string `json:"firstName" validate:"omitempty,min=1"`
	LastName     *string `json:"lastName" validate:"omitempty,min=1"`
	Content      *string `json:"content" validate:"omitempty,min=1,max=2000"`
	Role         *string `json:"role" validate:"omitempty,max=128"`
	Company      *string `json:"company" validate:"omitempty,max=255"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,url"`
}

// SuccessStoryCreateRequest carries a new admission highlight.
type SuccessStoryCreateRequest struct {
	Name       string `json:"name" validate:"required"`
	Score      int    `json:"score" validate:"gte=0"`
	University string `json:"university" validate:"required"`
	Picture    string `json:"picture" validate:"omitempty,url"`
}

// SuccessStoryUpdateRequest holds optional edits.
type SuccessStoryUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Score      *int    `json:"score" validate:"omitempty,gte=0"`
	University *string `json:"university" validate:"omitempty,min=1"`
	Picture    *string `json:"picture" validate:"omitempty,url"`
}

// UploadResponse describes a stored media asset.
type UploadResponse struct {
	ID          uint      `json:"id"`
	FileName    string    `json:"fileName"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
}
