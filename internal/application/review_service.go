package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	repo "github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
)

var reviewBootcampPopulate = query.Populate{Path: "bootcamp", Select: []string{"name", "description"}}

type ReviewInput struct {
	Title  string `json:"title" binding:"required,max=100"`
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"required,gte=1,lte=10"`
}

type ReviewPatch struct {
	Title  *string `json:"title" binding:"omitempty,max=100"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating" binding:"omitempty,gte=1,lte=10"`
}

type ReviewService struct {
	Repo       repo.ReviewRepository
	Bootcamps  repo.BootcampRepository
	Finder     repo.Finder
	Aggregates *Aggregates
	Logger     *logrus.Logger
}

func NewReviewService(r repo.ReviewRepository, bootcamps repo.BootcampRepository, finder repo.Finder, agg *Aggregates, logger *logrus.Logger) *ReviewService {
	return &ReviewService{Repo: r, Bootcamps: bootcamps, Finder: finder, Aggregates: agg, Logger: logger}
}

func (s *ReviewService) List(ctx context.Context, spec query.Spec) (query.Result, error) {
	return s.Finder.Find(ctx, repo.ResourceReviews, spec, reviewBootcampPopulate)
}

func (s *ReviewService) ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Review, error) {
	out, err := s.Repo.ListByBootcamp(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entity.Review{}
	}
	return out, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (map[string]any, error) {
	rec, err := s.Finder.FindOne(ctx, repo.ResourceReviews, id, reviewBootcampPopulate)
	if err != nil {
		return nil, notFound(err, "No review found with the id of "+id)
	}
	return rec, nil
}

// Create stores u's review of a bootcamp. A second review by the same user
// fails on the (bootcamp, user) unique index.
func (s *ReviewService) Create(ctx context.Context, u *entity.User, bootcampID string, in ReviewInput) (*entity.Review, error) {
	b, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return nil, notFound(err, "No bootcamp found with the id of "+bootcampID)
	}
	r := &entity.Review{
		Title:      in.Title,
		Text:       in.Text,
		Rating:     in.Rating,
		BootcampID: b.ID,
		UserID:     u.ID,
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.Aggregates.RecomputeRating(ctx, r.BootcampID)
	return r, nil
}

func (s *ReviewService) Update(ctx context.Context, u *entity.User, id string, p ReviewPatch) (*entity.Review, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "No review found with the id of "+id)
	}
	if !canManage(u, r.UserID) {
		return nil, apperror.Forbidden("Not authorized to update this review")
	}

	ratingChanged := p.Rating != nil && *p.Rating != r.Rating
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Text != nil {
		r.Text = *p.Text
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}
	if ratingChanged {
		s.Aggregates.RecomputeRating(ctx, r.BootcampID)
	}
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, u *entity.User, id string) error {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "No review found with the id of "+id)
	}
	if !canManage(u, r.UserID) {
		return apperror.Forbidden("Not authorized to delete this review")
	}
	if err := s.Repo.Delete(ctx, r.ID); err != nil {
		return err
	}
	s.Aggregates.RecomputeRating(ctx, r.BootcampID)
	return nil
}
