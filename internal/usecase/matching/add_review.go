package matching

import (
	"context"
	"math"

	"github.com/legwalet/le-barber/internal/audit"
	domain "github.com/legwalet/le-barber/internal/domain/matching"
	"github.com/legwalet/le-barber/internal/models"
)

type AddReviewInput struct {
	BarberID string
	ClientID string
	Rating   int
	Comment  string
}

type AddReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddReview(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddReview {
	return &AddReview{
		repo:  repo,
		audit: audit,
	}
}

// Execute stores the review and recomputes the barber's aggregate. The
// stored rating is the plain mean rounded to one decimal.
func (uc *AddReview) Execute(
	ctx context.Context,
	in AddReviewInput,
) (*models.Review, error) {

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		BarberID: barber.ID,
		ClientID: in.ClientID,
		Rating:   in.Rating,
		Comment:  in.Comment,
	}
	if err := uc.repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	reviews, err := uc.repo.ListReviewsForBarber(ctx, barber.ID)
	if err != nil {
		return nil, err
	}

	rating := averageRating(reviews)
	if err := uc.repo.SetBarberRating(ctx, barber.ID, rating, len(reviews)); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "review_added",
		Entity:   "review",
		EntityID: review.ID,
	})

	return review, nil
}

func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}
