package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	repo "github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
)

type CreateUserInput struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,anyrole"`
}

type UserPatch struct {
	Name     *string `json:"name" binding:"omitempty,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,pwd"`
	Role     *string `json:"role" binding:"omitempty,anyrole"`
}

// UserService is the admin-only account CRUD.
type UserService struct {
	Repo   repo.UserRepository
	Finder repo.Finder
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, finder repo.Finder, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Finder: finder, Logger: logger}
}

func (s *UserService) List(ctx context.Context, spec query.Spec) (query.Result, error) {
	return s.Finder.Find(ctx, repo.ResourceUsers, spec)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "No user found with the ID of "+id)
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := entity.Role(in.Role)
	if role == "" {
		role = entity.RoleUser
	}
	u := &entity.User{
		Name:     in.Name,
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Role:     role,
		Password: hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, p UserPatch) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User not found with id of "+id)
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Role != nil {
		u.Role = entity.Role(*p.Role)
	}
	if p.Password != nil {
		hash, err := helpers.HashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return notFound(err, "User not found with id of "+id)
	}
	return s.Repo.Delete(ctx, id)
}
