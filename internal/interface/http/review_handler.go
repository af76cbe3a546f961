package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/internal/application"
	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
	"github.com/oksasatya/go-bootcamp-directory/pkg/response"
)

type ReviewUsecase interface {
	List(ctx context.Context, spec query.Spec) (query.Result, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Review, error)
	Get(ctx context.Context, id string) (map[string]any, error)
	Create(ctx context.Context, u *entity.User, bootcampID string, in application.ReviewInput) (*entity.Review, error)
	Update(ctx context.Context, u *entity.User, id string, p application.ReviewPatch) (*entity.Review, error)
	Delete(ctx context.Context, u *entity.User, id string) error
}

type ReviewHandler struct {
	Svc    ReviewUsecase
	Logger *logrus.Logger
}

func NewReviewHandler(svc ReviewUsecase, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Logger: logger}
}

// List GET /api/v1/reviews and GET /api/v1/bootcamps/:bootcampId/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	if id := c.Param("bootcampId"); id != "" {
		out, err := h.Svc.ListByBootcamp(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, out,
			fmt.Sprintf("Reviews for Bootcamp ID %s fetched successfully.", id),
			response.WithCount(int64(len(out))))
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
	response.List(c, res, spec, "All Reviews retrieved successfully")
}

// Get GET /api/v1/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	id := c.Param("id")
	rec, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec, fmt.Sprintf("Review with ID %s fetched successfully.", id))
}

// Create POST /api/v1/bootcamps/:bootcampId/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req application.ReviewInput
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Svc.Create(c.Request.Context(), principal(c), c.Param("bootcampId"), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r, "Review added successfully.")
}

// Update PUT /api/v1/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	var req application.ReviewPatch
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Svc.Update(c.Request.Context(), principal(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, r, "Review updated successfully.")
}

// Delete DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Review deleted successfully.")
}
