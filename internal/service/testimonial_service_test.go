package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/edupath-ng/edupath-go-api/internal/dto"
	"github.com/edupath-ng/edupath-go-api/internal/models"
	"github.com/edupath-ng/edupath-go-api/internal/repository"
)

func setupTestimonialService(t *testing.T) TestimonialService {
	t.Helper()

	db := openTestDB(t, &models.Testimonial{})

	return NewTestimonialService(repository.NewTestimonialRepository(db), validator.New(validator.WithRequiredStructEnabled()), testLogger())
}

func TestTestimonialModerationFlow(t *testing.T) {
	svc := setupTestimonialService(t)
	ctx := context.Background()

	internal, err := svc.CreateInternal(ctx, dto.TestimonialCreateRequest{
		FirstName: "Ngozi", LastName: "Eze", Content: "Helped me into Unilag.",
	})
	require.NoError(t, err)
	require.False(t, internal.IsExternal)
	require.True(t, internal.IsApproved, "internal submissions are live immediately")

	external, err := svc.CreateExternal(ctx, dto.TestimonialCreateRequest{
		FirstName: "Tunde", LastName: "Alabi", Content: "Great coaching.",
	})
	require.NoError(t, err)
	require.True(t, external.IsExternal)
	require.False(t, external.IsApproved, "external submissions wait for moderation")

	visible, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)

	_, err = svc.Approve(ctx, external.ID)
	require.NoError(t, err)

	visible, err = svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, visible, 2)
}

func TestTestimonialStripsMarkup(t *testing.T) {
	svc := setupTestimonialService(t)

	testimonial, err := svc.CreateExternal(context.Background(), dto.TestimonialCreateRequest{
		FirstName: "Tunde", LastName: "Alabi",
		Content: `Great <b>coaching</b><script>alert(1)</script>`,
	})
	require.NoError(t, err)
	require.Equal(t, "Great coaching", testimonial.Content)
}

func TestTestimonialApproveNotFound(t *testing.T) {
	svc := setupTestimonialService(t)

	_, err := svc.Approve(context.Background(), 404)
	require.ErrorIs(t, err, ErrTestimonialNotFound)
}
