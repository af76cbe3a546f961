package repository

import (
	"context"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
)

type BootcampRepository interface {
	Create(ctx context.Context, b *entity.Bootcamp) error
	GetByID(ctx context.Context, id string) (*entity.Bootcamp, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, b *entity.Bootcamp) error
	Delete(ctx context.Context, id string) error
	UpdatePhoto(ctx context.Context, id, photo string) error
	// SetAverageCost and SetAverageRating store derived aggregates; nil clears them.
	SetAverageCost(ctx context.Context, id string, v *float64) error
	SetAverageRating(ctx context.Context, id string, v *float64) error
	// WithinRadius returns bootcamps whose location lies within radius radians of (lat, lng).
	WithinRadius(ctx context.Context, lat, lng, radius float64) ([]entity.Bootcamp, error)
}

type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) error
	ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Course, error)
	DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error)
	// AverageTuition returns the mean tuition and the number of courses.
	AverageTuition(ctx context.Context, bootcampID string) (float64, int64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id string) error
	ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Review, error)
	DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error)
	// AverageRating returns the mean rating and the number of reviews.
	AverageRating(ctx context.Context, bootcampID string) (float64, int64, error)
}
