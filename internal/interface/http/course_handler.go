package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/internal/application"
	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
	"github.com/oksasatya/go-bootcamp-directory/pkg/response"
)

type CourseUsecase interface {
	List(ctx context.Context, spec query.Spec) (query.Result, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Course, error)
	Get(ctx context.Context, id string) (map[string]any, error)
	Create(ctx context.Context, u *entity.User, bootcampID string, in application.CourseInput) (*entity.Course, error)
	Update(ctx context.Context, u *entity.User, id string, p application.CoursePatch) (*entity.Course, error)
	Delete(ctx context.Context, u *entity.User, id string) error
}

type CourseHandler struct {
	Svc    CourseUsecase
	Logger *logrus.Logger
}

func NewCourseHandler(svc CourseUsecase, logger *logrus.Logger) *CourseHandler {
	return &CourseHandler{Svc: svc, Logger: logger}
}

// List GET /api/v1/courses and GET /api/v1/bootcamps/:bootcampId/courses
func (h *CourseHandler) List(c *gin.Context) {
	if id := c.Param("bootcampId"); id != "" {
		out, err := h.Svc.ListByBootcamp(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, out, "All Courses retrieved successfully.", response.WithCount(int64(len(out))))
		return
	}

	spec, ok := parseSpec(c)
	if !ok {
		return
	}
	res, err := h.Svc.List(c.Request.Context(), spec)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, res, spec, "All Courses retrieved successfully")
}

// Get GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	rec, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec, "Course retrieved successfully.")
}

// Create POST /api/v1/bootcamps/:bootcampId/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req application.CourseInput
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.Svc.Create(c.Request.Context(), principal(c), c.Param("bootcampId"), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, course, "Course created successfully.")
}

// Update PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	var req application.CoursePatch
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.Svc.Update(c.Request.Context(), principal(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, course, "Course updated successfully.")
}

// Delete DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Course deleted successfully.")
}
