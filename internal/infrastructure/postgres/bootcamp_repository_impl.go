package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
)

type BootcampRepository struct {
	db DBTX
}

func NewBootcampRepository(db DBTX) *BootcampRepository {
	return &BootcampRepository{db: db}
}

const bootcampColumns = `t.id::text, t.name, t.slug, t.description, coalesce(t.website, ''), coalesce(t.phone, ''),
	coalesce(t.email, ''), t.location_type, t.longitude, t.latitude, coalesce(t.formatted_address, ''),
	coalesce(t.street, ''), coalesce(t.city, ''), coalesce(t.state, ''), coalesce(t.zipcode, ''),
	coalesce(t.country, ''), t.careers, t.average_rating, t.average_cost, t.photo, t.housing,
	t.job_assistance, t.job_guarantee, t.accept_gi, t.created_at, t.user_id::text`

func scanBootcamp(row scanner) (*entity.Bootcamp, error) {
	b := &entity.Bootcamp{}
	var (
		loc      entity.Location
		lng, lat *float64
	)
	if err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.Description, &b.Website, &b.Phone, &b.Email,
		&loc.Type, &lng, &lat, &loc.FormattedAddress, &loc.Street, &loc.City, &loc.State,
		&loc.Zipcode, &loc.Country, &b.Careers, &b.AverageRating, &b.AverageCost, &b.Photo,
		&b.Housing, &b.JobAssistance, &b.JobGuarantee, &b.AcceptGi, &b.CreatedAt, &b.UserID); err != nil {
		return nil, translateError(err)
	}
	if lng != nil && lat != nil {
		loc.Coordinates = [2]float64{*lng, *lat}
		b.Location = &loc
	}
	return b, nil
}

// locationArgs flattens an optional location into column values.
func locationArgs(l *entity.Location) []any {
	if l == nil {
		return []any{"Point", nil, nil, nil, nil, nil, nil, nil, nil}
	}
	typ := l.Type
	if typ == "" {
		typ = "Point"
	}
	return []any{typ, l.Longitude(), l.Latitude(), l.FormattedAddress, l.Street, l.City, l.State, l.Zipcode, l.Country}
}

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp) error {
	if b.Photo == "" {
		b.Photo = entity.DefaultPhoto
	}
	args := []any{b.Name, b.Slug, b.Description, nullable(b.Website), nullable(b.Phone), nullable(b.Email)}
	args = append(args, locationArgs(b.Location)...)
	args = append(args, b.Careers, b.Photo, b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi, b.UserID)

	row := conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO bootcamps (name, slug, description, website, phone, email,
			location_type, longitude, latitude, formatted_address, street, city, state, zipcode, country,
			careers, photo, housing, job_assistance, job_guarantee, accept_gi, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22::text::uuid)
		RETURNING id::text, created_at
	`, args...)
	return translateError(row.Scan(&b.ID, &b.CreatedAt))
}

func (r *BootcampRepository) GetByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return scanBootcamp(conn(ctx, r.db).QueryRow(ctx, `SELECT `+bootcampColumns+` FROM bootcamps t WHERE t.id = $1::text::uuid`, id))
}

func (r *BootcampRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if err := checkID(userID); err != nil {
		return 0, err
	}
	var n int64
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT count(*) FROM bootcamps WHERE user_id = $1::text::uuid`, userID).Scan(&n)
	return n, translateError(err)
}

// Update writes the editable columns. Aggregates and photo have their own setters.
func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	if err := checkID(b.ID); err != nil {
		return err
	}
	args := []any{b.Name, b.Slug, b.Description, nullable(b.Website), nullable(b.Phone), nullable(b.Email)}
	args = append(args, locationArgs(b.Location)...)
	args = append(args, b.Careers, b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi, b.ID)

	res, err := conn(ctx, r.db).Exec(ctx, `
		UPDATE bootcamps
		SET name = $1, slug = $2, description = $3, website = $4, phone = $5, email = $6,
			location_type = $7, longitude = $8, latitude = $9, formatted_address = $10, street = $11,
			city = $12, state = $13, zipcode = $14, country = $15, careers = $16,
			housing = $17, job_assistance = $18, job_guarantee = $19, accept_gi = $20
		WHERE id = $21::text::uuid
	`, args...)
	if err != nil {
		return translateError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM bootcamps WHERE id = $1::text::uuid`, id)
}

func (r *BootcampRepository) UpdatePhoto(ctx context.Context, id, photo string) error {
	return r.exec(ctx, `UPDATE bootcamps SET photo = $2 WHERE id = $1::text::uuid`, id, photo)
}

func (r *BootcampRepository) SetAverageCost(ctx context.Context, id string, v *float64) error {
	return r.exec(ctx, `UPDATE bootcamps SET average_cost = $2 WHERE id = $1::text::uuid`, id, v)
}

func (r *BootcampRepository) SetAverageRating(ctx context.Context, id string, v *float64) error {
	return r.exec(ctx, `UPDATE bootcamps SET average_rating = $2 WHERE id = $1::text::uuid`, id, v)
}

func (r *BootcampRepository) exec(ctx context.Context, sql, id string, args ...any) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := conn(ctx, r.db).Exec(ctx, sql, append([]any{id}, args...)...)
	if err != nil {
		return translateError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// WithinRadius filters by great-circle angular distance, pre-narrowed by a
// latitude band so the (latitude, longitude) index is usable.
func (r *BootcampRepository) WithinRadius(ctx context.Context, lat, lng, radius float64) ([]entity.Bootcamp, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT `+bootcampColumns+` FROM bootcamps t
		WHERE t.latitude BETWEEN $1 - degrees($3) AND $1 + degrees($3)
		  AND 2 * asin(sqrt(
		        power(sin(radians(t.latitude - $1) / 2), 2) +
		        cos(radians($1)) * cos(radians(t.latitude)) * power(sin(radians(t.longitude - $2) / 2), 2)
		      )) <= $3
		ORDER BY t.created_at DESC
	`, lat, lng, radius)
	if err != nil {
		return nil, translateError(err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Bootcamp, error) {
		b, err := scanBootcamp(row)
		if err != nil {
			return entity.Bootcamp{}, err
		}
		return *b, nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ repository.BootcampRepository = (*BootcampRepository)(nil)
