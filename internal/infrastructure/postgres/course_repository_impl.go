package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
)

type CourseRepository struct {
	db DBTX
}

func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = `id::text, title, description, weeks, tuition, minimum_skill,
	scholarship_available, created_at, bootcamp_id::text, user_id::text`

func scanCourse(row scanner) (*entity.Course, error) {
	c := &entity.Course{}
	var skill string
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Weeks, &c.Tuition, &skill,
		&c.ScholarshipAvailable, &c.CreatedAt, &c.BootcampID, &c.UserID); err != nil {
		return nil, translateError(err)
	}
	c.MinimumSkill = entity.Skill(skill)
	return c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	row := conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO courses (title, description, weeks, tuition, minimum_skill, scholarship_available, bootcamp_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7::text::uuid, $8::text::uuid)
		RETURNING id::text, created_at
	`, c.Title, c.Description, c.Weeks, c.Tuition, string(c.MinimumSkill), c.ScholarshipAvailable, c.BootcampID, c.UserID)
	return translateError(row.Scan(&c.ID, &c.CreatedAt))
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return scanCourse(conn(ctx, r.db).QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1::text::uuid`, id))
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	if err := checkID(c.ID); err != nil {
		return err
	}
	res, err := conn(ctx, r.db).Exec(ctx, `
		UPDATE courses
		SET title = $1, description = $2, weeks = $3, tuition = $4, minimum_skill = $5, scholarship_available = $6
		WHERE id = $7::text::uuid
	`, c.Title, c.Description, c.Weeks, c.Tuition, string(c.MinimumSkill), c.ScholarshipAvailable, c.ID)
	if err != nil {
		return translateError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM courses WHERE id = $1::text::uuid`, id)
	if err != nil {
		return translateError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Course, error) {
	if err := checkID(bootcampID); err != nil {
		return nil, err
	}
	rows, err := conn(ctx, r.db).Query(ctx, `SELECT `+courseColumns+` FROM courses WHERE bootcamp_id = $1::text::uuid ORDER BY created_at`, bootcampID)
	if err != nil {
		return nil, translateError(err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Course, error) {
		c, err := scanCourse(row)
		if err != nil {
			return entity.Course{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	if out == nil {
		out = []entity.Course{}
	}
	return out, nil
}

func (r *CourseRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error) {
	if err := checkID(bootcampID); err != nil {
		return 0, err
	}
	res, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM courses WHERE bootcamp_id = $1::text::uuid`, bootcampID)
	if err != nil {
		return 0, translateError(err)
	}
	return res.RowsAffected(), nil
}

func (r *CourseRepository) AverageTuition(ctx context.Context, bootcampID string) (float64, int64, error) {
	if err := checkID(bootcampID); err != nil {
		return 0, 0, err
	}
	var (
		avg float64
		n   int64
	)
	err := conn(ctx, r.db).QueryRow(ctx, `
		SELECT coalesce(avg(tuition), 0), count(*) FROM courses WHERE bootcamp_id = $1::text::uuid
	`, bootcampID).Scan(&avg, &n)
	return avg, n, translateError(err)
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
