package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	repo "github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
)

// CourseBootcampPopulate is the bootcamp summary embedded in course reads.
var CourseBootcampPopulate = query.Populate{
	Path:   "bootcamp",
	Select: []string{"name", "description", "email", "website", "location.city"},
}

type CourseInput struct {
	Title                string   `json:"title" binding:"required,max=100"`
	Description          string   `json:"description" binding:"required"`
	Weeks                string   `json:"weeks" binding:"required"`
	Tuition              *float64 `json:"tuition" binding:"required,gte=0"`
	MinimumSkill         string   `json:"minimumSkill" binding:"required,skill"`
	ScholarshipAvailable bool     `json:"scholarshipAvailable"`
}

type CoursePatch struct {
	Title                *string  `json:"title" binding:"omitempty,max=100"`
	Description          *string  `json:"description"`
	Weeks                *string  `json:"weeks"`
	Tuition              *float64 `json:"tuition" binding:"omitempty,gte=0"`
	MinimumSkill         *string  `json:"minimumSkill" binding:"omitempty,skill"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
}

type CourseService struct {
	Repo       repo.CourseRepository
	Bootcamps  repo.BootcampRepository
	Finder     repo.Finder
	Aggregates *Aggregates
	Logger     *logrus.Logger
}

func NewCourseService(r repo.CourseRepository, bootcamps repo.BootcampRepository, finder repo.Finder, agg *Aggregates, logger *logrus.Logger) *CourseService {
	return &CourseService{Repo: r, Bootcamps: bootcamps, Finder: finder, Aggregates: agg, Logger: logger}
}

func (s *CourseService) List(ctx context.Context, spec query.Spec) (query.Result, error) {
	return s.Finder.Find(ctx, repo.ResourceCourses, spec, CourseBootcampPopulate)
}

func (s *CourseService) ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Course, error) {
	out, err := s.Repo.ListByBootcamp(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entity.Course{}
	}
	return out, nil
}

// Get returns the course with its bootcamp summary embedded.
func (s *CourseService) Get(ctx context.Context, id string) (map[string]any, error) {
	rec, err := s.Finder.FindOne(ctx, repo.ResourceCourses, id,
		query.Populate{Path: "bootcamp", Select: []string{"name", "description"}})
	if err != nil {
		return nil, notFound(err, "No course with the id of "+id)
	}
	return rec, nil
}

// Create adds a course to a bootcamp the caller manages.
func (s *CourseService) Create(ctx context.Context, u *entity.User, bootcampID string, in CourseInput) (*entity.Course, error) {
	b, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return nil, notFound(err, "No bootcamp with the id of "+bootcampID)
	}
	if !canManage(u, b.UserID) {
		return nil, apperror.Forbidden(fmt.Sprintf("User with ID %s is not authorized to add a course to bootcamp with ID %s", u.ID, b.ID))
	}

	c := &entity.Course{
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		MinimumSkill:         entity.Skill(in.MinimumSkill),
		ScholarshipAvailable: in.ScholarshipAvailable,
		BootcampID:           b.ID,
		UserID:               u.ID,
	}
	if in.Tuition != nil {
		c.Tuition = *in.Tuition
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.Aggregates.RecomputeCost(ctx, c.BootcampID)
	return c, nil
}

func (s *CourseService) Update(ctx context.Context, u *entity.User, id string, p CoursePatch) (*entity.Course, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "No course with the id of "+id)
	}
	if !canManage(u, c.UserID) {
		return nil, apperror.Forbidden(fmt.Sprintf("User with ID %s is not authorized to update course with ID %s", u.ID, c.ID))
	}

	tuitionChanged := p.Tuition != nil && *p.Tuition != c.Tuition
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Weeks != nil {
		c.Weeks = *p.Weeks
	}
	if p.Tuition != nil {
		c.Tuition = *p.Tuition
	}
	if p.MinimumSkill != nil {
		c.MinimumSkill = entity.Skill(*p.MinimumSkill)
	}
	if p.ScholarshipAvailable != nil {
		c.ScholarshipAvailable = *p.ScholarshipAvailable
	}

	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	if tuitionChanged {
		s.Aggregates.RecomputeCost(ctx, c.BootcampID)
	}
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, u *entity.User, id string) error {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "No course with the id of "+id)
	}
	if !canManage(u, c.UserID) {
		return apperror.Forbidden(fmt.Sprintf("User with ID %s is not authorized to delete course with ID %s", u.ID, c.ID))
	}
	if err := s.Repo.Delete(ctx, c.ID); err != nil {
		return err
	}
	s.Aggregates.RecomputeCost(ctx, c.BootcampID)
	return nil
}
