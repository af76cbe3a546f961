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

type UserUsecase interface {
	List(ctx context.Context, spec query.Spec) (query.Result, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, in application.CreateUserInput) (*entity.User, error)
	Update(ctx context.Context, id string, p application.UserPatch) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}

// UserHandler serves the admin user endpoints.
type UserHandler struct {
	Svc    UserUsecase
	Logger *logrus.Logger
}

func NewUserHandler(svc UserUsecase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func (h *UserHandler) List(c *gin.Context) {
	spec, ok := parseSpec(c)
	if !ok {
		return
	}
	res, err := h.Svc.List(c.Request.Context(), spec)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, res, spec, "All Users retrieved successfully")
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "User retrieved successfully")
}

func (h *UserHandler) Create(c *gin.Context) {
	var req application.CreateUserInput
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "User created successfully")
}

func (h *UserHandler) Update(c *gin.Context) {
	var req application.UserPatch
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "User updated successfully")
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "User deleted successfully")
}
