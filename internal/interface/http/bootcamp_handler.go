package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/internal/application"
	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
	"github.com/oksasatya/go-bootcamp-directory/pkg/response"
)

type BootcampUsecase interface {
	List(ctx context.Context, spec query.Spec) (query.Result, error)
	Get(ctx context.Context, id string) (*entity.Bootcamp, error)
	Create(ctx context.Context, u *entity.User, in application.BootcampInput) (*entity.Bootcamp, error)
	Update(ctx context.Context, u *entity.User, id string, p application.BootcampPatch) (*entity.Bootcamp, error)
	Delete(ctx context.Context, u *entity.User, id string) error
	WithinRadius(ctx context.Context, zipcode string, distance float64) ([]entity.Bootcamp, error)
	UploadPhoto(ctx context.Context, u *entity.User, id string, f application.PhotoUpload) (string, error)
	SearchText(ctx context.Context, q string, size int) ([]map[string]any, error)
}

type BootcampHandler struct {
	Svc    BootcampUsecase
	Logger *logrus.Logger
}

func NewBootcampHandler(svc BootcampUsecase, logger *logrus.Logger) *BootcampHandler {
	return &BootcampHandler{Svc: svc, Logger: logger}
}

// List GET /api/v1/bootcamps
func (h *BootcampHandler) List(c *gin.Context) {
	spec, ok := parseSpec(c)
	if !ok {
		return
	}
	res, err := h.Svc.List(c.Request.Context(), spec)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, res, spec, "All Bootcamps retrieved successfully")
}

// Get GET /api/v1/bootcamps/:id
func (h *BootcampHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b, "Bootcamp retrieved successfully.")
}

// Create POST /api/v1/bootcamps
func (h *BootcampHandler) Create(c *gin.Context) {
	var req application.BootcampInput
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b, "Bootcamp created successfully.")
}

// Update PUT /api/v1/bootcamps/:id
func (h *BootcampHandler) Update(c *gin.Context) {
	var req application.BootcampPatch
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Svc.Update(c.Request.Context(), principal(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b, "Bootcamp updated successfully.")
}

// Delete DELETE /api/v1/bootcamps/:id
func (h *BootcampHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Bootcamp deleted successfully.")
}

// WithinRadius GET /api/v1/bootcamps/radius/:zipcode/:distance
func (h *BootcampHandler) WithinRadius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		fail(c, apperror.Validation("Distance must be a number"))
		return
	}
	out, err := h.Svc.WithinRadius(c.Request.Context(), c.Param("zipcode"), distance)
	if err != nil {
		fail(c, err)
		return
	}
	msg := fmt.Sprintf("Bootcamps within the specified radius of %.2f miles have been successfully retrieved.",
		distance/application.EarthRadiusMiles)
	response.Success(c, http.StatusOK, out, msg, response.WithCount(int64(len(out))))
}

// UploadPhoto PUT /api/v1/bootcamps/:id/photo
func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, apperror.Wrap(apperror.KindValidation, "Please upload a file", err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, apperror.Wrap(apperror.KindValidation, "Please upload a file", err))
		return
	}
	defer func() { _ = f.Close() }()

	name, err := h.Svc.UploadPhoto(c.Request.Context(), principal(c), c.Param("id"), application.PhotoUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, name, "Bootcamp photo uploaded successfully.")
}

// Search GET /api/v1/bootcamps/search?q=&limit=
func (h *BootcampHandler) Search(c *gin.Context) {
	size, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(query.DefaultLimit)))
	if err != nil || size < 1 {
		size = query.DefaultLimit
	}
	hits, err := h.Svc.SearchText(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "Bootcamps matching the search retrieved successfully.",
		response.WithCount(int64(len(hits))))
}
