package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
)

type ReviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id::text, title, text, rating, created_at, bootcamp_id::text, user_id::text`

func scanReview(row scanner) (*entity.Review, error) {
	rv := &entity.Review{}
	var rating int16
	if err := row.Scan(&rv.ID, &rv.Title, &rv.Text, &rating, &rv.CreatedAt, &rv.BootcampID, &rv.UserID); err != nil {
		return nil, translateError(err)
	}
	rv.Rating = int(rating)
	return rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	row := conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO reviews (title, text, rating, bootcamp_id, user_id)
		VALUES ($1, $2, $3, $4::text::uuid, $5::text::uuid)
		RETURNING id::text, created_at
	`, rv.Title, rv.Text, int16(rv.Rating), rv.BootcampID, rv.UserID)
	return translateError(row.Scan(&rv.ID, &rv.CreatedAt))
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return scanReview(conn(ctx, r.db).QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1::text::uuid`, id))
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	if err := checkID(rv.ID); err != nil {
		return err
	}
	res, err := conn(ctx, r.db).Exec(ctx, `
		UPDATE reviews SET title = $1, text = $2, rating = $3 WHERE id = $4::text::uuid
	`, rv.Title, rv.Text, int16(rv.Rating), rv.ID)
	if err != nil {
		return translateError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM reviews WHERE id = $1::text::uuid`, id)
	if err != nil {
		return translateError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Review, error) {
	if err := checkID(bootcampID); err != nil {
		return nil, err
	}
	rows, err := conn(ctx, r.db).Query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE bootcamp_id = $1::text::uuid ORDER BY created_at`, bootcampID)
	if err != nil {
		return nil, translateError(err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Review, error) {
		rv, err := scanReview(row)
		if err != nil {
			return entity.Review{}, err
		}
		return *rv, nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	if out == nil {
		out = []entity.Review{}
	}
	return out, nil
}

func (r *ReviewRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error) {
	if err := checkID(bootcampID); err != nil {
		return 0, err
	}
	res, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM reviews WHERE bootcamp_id = $1::text::uuid`, bootcampID)
	if err != nil {
		return 0, translateError(err)
	}
	return res.RowsAffected(), nil
}

func (r *ReviewRepository) AverageRating(ctx context.Context, bootcampID string) (float64, int64, error) {
	if err := checkID(bootcampID); err != nil {
		return 0, 0, err
	}
	var (
		avg float64
		n   int64
	)
	err := conn(ctx, r.db).QueryRow(ctx, `
		SELECT coalesce(avg(rating), 0)::float8, count(*) FROM reviews WHERE bootcamp_id = $1::text::uuid
	`, bootcampID).Scan(&avg, &n)
	return avg, n, translateError(err)
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
