package application

import (
	"context"
	"expvar"
	"math"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
)

// aggregateFailures counts swallowed recomputation errors; exposed on /debug/vars.
var aggregateFailures = expvar.NewInt("aggregate_recompute_failures")

// Aggregates keeps a bootcamp's averageCost and averageRating in step with
// its courses and reviews. Failures are logged and never surface to callers.
type Aggregates struct {
	Bootcamps repo.BootcampRepository
	Courses   repo.CourseRepository
	Reviews   repo.ReviewRepository
	Logger    *logrus.Logger
}

func NewAggregates(b repo.BootcampRepository, c repo.CourseRepository, r repo.ReviewRepository, logger *logrus.Logger) *Aggregates {
	return &Aggregates{Bootcamps: b, Courses: c, Reviews: r, Logger: logger}
}

// AverageCost rounds a mean tuition up to the next multiple of ten.
func AverageCost(mean float64) float64 {
	return math.Ceil(mean/10) * 10
}

// AverageRating rounds a mean rating to one decimal place.
func AverageRating(mean float64) float64 {
	return math.Round(mean*10) / 10
}

// RecomputeCost stores the rounded mean tuition, or clears it when the
// bootcamp has no courses.
func (a *Aggregates) RecomputeCost(ctx context.Context, bootcampID string) {
	mean, n, err := a.Courses.AverageTuition(ctx, bootcampID)
	if err != nil {
		a.fail(err, "average cost", bootcampID)
		return
	}
	var v *float64
	if n > 0 {
		c := AverageCost(mean)
		v = &c
	}
	if err := a.Bootcamps.SetAverageCost(ctx, bootcampID, v); err != nil {
		a.fail(err, "average cost", bootcampID)
	}
}

// RecomputeRating stores the rounded mean rating, or clears it when the
// bootcamp has no reviews.
func (a *Aggregates) RecomputeRating(ctx context.Context, bootcampID string) {
	mean, n, err := a.Reviews.AverageRating(ctx, bootcampID)
	if err != nil {
		a.fail(err, "average rating", bootcampID)
		return
	}
	var v *float64
	if n > 0 {
		r := AverageRating(mean)
		v = &r
	}
	if err := a.Bootcamps.SetAverageRating(ctx, bootcampID, v); err != nil {
		a.fail(err, "average rating", bootcampID)
	}
}

func (a *Aggregates) fail(err error, what, bootcampID string) {
	aggregateFailures.Add(1)
	if a.Logger != nil {
		a.Logger.WithError(err).WithFields(logrus.Fields{
			"aggregate":   what,
			"bootcamp_id": bootcampID,
		}).Error("aggregate recompute failed")
	}
}
