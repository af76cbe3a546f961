package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/internal/application"
	pginfra "github.com/oksasatya/go-bootcamp-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
)

//go:embed data/*.json
var dataFS embed.FS

type userFixture struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type locationFixture struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formattedAddress"`
	Street           string  `json:"street"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	Zipcode          string  `json:"zipcode"`
	Country          string  `json:"country"`
}

type bootcampFixture struct {
	ID            string          `json:"id"`
	User          string          `json:"user"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Website       string          `json:"website"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	Location      locationFixture `json:"location"`
	Careers       []string        `json:"careers"`
	Housing       bool            `json:"housing"`
	JobAssistance bool            `json:"jobAssistance"`
	JobGuarantee  bool            `json:"jobGuarantee"`
	AcceptGi      bool            `json:"acceptGi"`
}

type courseFixture struct {
	ID                   string  `json:"id"`
	Bootcamp             string  `json:"bootcamp"`
	User                 string  `json:"user"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Weeks                string  `json:"weeks"`
	Tuition              float64 `json:"tuition"`
	MinimumSkill         string  `json:"minimumSkill"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

type reviewFixture struct {
	ID       string `json:"id"`
	Bootcamp string `json:"bootcamp"`
	User     string `json:"user"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Rating   int    `json:"rating"`
}

type fixtures struct {
	Users     []userFixture
	Bootcamps []bootcampFixture
	Courses   []courseFixture
	Reviews   []reviewFixture
}

func loadFixtures() (fixtures, error) {
	var fx fixtures
	files := map[string]any{
		"data/users.json":     &fx.Users,
		"data/bootcamps.json": &fx.Bootcamps,
		"data/courses.json":   &fx.Courses,
		"data/reviews.json":   &fx.Reviews,
	}
	for name, dst := range files {
		b, err := dataFS.ReadFile(name)
		if err != nil {
			return fx, err
		}
		if err := json.Unmarshal(b, dst); err != nil {
			return fx, fmt.Errorf("%s: %w", name, err)
		}
	}
	return fx, nil
}

type seeder struct {
	pool   *pgxpool.Pool
	agg    *application.Aggregates
	logger *logrus.Logger
}

func newSeeder(pool *pgxpool.Pool, logger *logrus.Logger) *seeder {
	agg := application.NewAggregates(
		pginfra.NewBootcampRepository(pool),
		pginfra.NewCourseRepository(pool),
		pginfra.NewReviewRepository(pool),
		logger,
	)
	return &seeder{pool: pool, agg: agg, logger: logger}
}

// Destroy removes every row, children first.
func (s *seeder) Destroy(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE reviews, courses, bootcamps, users`)
	return err
}

// Import inserts the fixtures in one transaction and then derives the
// bootcamp averages from the inserted courses and reviews.
func (s *seeder) Import(ctx context.Context, fx fixtures) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, u := range fx.Users {
		hash, err := helpers.HashPassword(u.Password)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO users (id, name, email, role, password_hash, is_email_confirmed) VALUES ($1, $2, $3, $4, $5, true)`,
			u.ID, u.Name, u.Email, u.Role, hash); err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
	}
	for _, b := range fx.Bootcamps {
		l := b.Location
		if _, err := tx.Exec(ctx, `
			INSERT INTO bootcamps (id, name, slug, description, website, phone, email,
				longitude, latitude, formatted_address, street, city, state, zipcode, country,
				careers, housing, job_assistance, job_guarantee, accept_gi, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
			b.ID, b.Name, slug.Make(b.Name), b.Description, b.Website, b.Phone, b.Email,
			l.Longitude, l.Latitude, l.FormattedAddress, l.Street, l.City, l.State, l.Zipcode, l.Country,
			b.Careers, b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi, b.User); err != nil {
			return fmt.Errorf("bootcamp %s: %w", b.Name, err)
		}
	}
	for _, c := range fx.Courses {
		if _, err := tx.Exec(ctx, `
			INSERT INTO courses (id, title, description, weeks, tuition, minimum_skill, scholarship_available, bootcamp_id, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			c.ID, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill, c.ScholarshipAvailable, c.Bootcamp, c.User); err != nil {
			return fmt.Errorf("course %s: %w", c.Title, err)
		}
	}
	for _, r := range fx.Reviews {
		if _, err := tx.Exec(ctx, `
			INSERT INTO reviews (id, title, text, rating, bootcamp_id, user_id) VALUES ($1, $2, $3, $4, $5, $6)`,
			r.ID, r.Title, r.Text, r.Rating, r.Bootcamp, r.User); err != nil {
			return fmt.Errorf("review %s: %w", r.Title, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	for _, b := range fx.Bootcamps {
		s.agg.RecomputeCost(ctx, b.ID)
		s.agg.RecomputeRating(ctx, b.ID)
	}
	s.logger.WithFields(logrus.Fields{
		"users":     len(fx.Users),
		"bootcamps": len(fx.Bootcamps),
		"courses":   len(fx.Courses),
		"reviews":   len(fx.Reviews),
	}).Info("fixtures inserted")
	return nil
}
