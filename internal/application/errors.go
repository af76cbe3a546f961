package application

import (
	"errors"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	repo "github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
)

var (
	ErrInvalidCredentials = apperror.Unauthenticated("Invalid credentials")
	ErrMissingCredentials = apperror.Validation("Please provide an email and password")
	ErrWrongPassword      = apperror.Unauthenticated("Password is incorrect")
	ErrInvalidResetToken  = apperror.Validation("Invalid token or token has expired")
	ErrInvalidConfirm     = apperror.Validation("Invalid Token")
	ErrInvalidTwoFactor   = apperror.Validation("Invalid or expired two-factor code")
)

// notFound replaces a missing-row error with a resource specific message.
// Other errors, including malformed-id NotFound errors, pass through.
func notFound(err error, message string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperror.NotFound(message)
	}
	return err
}

// canManage reports whether u owns a resource held by ownerID or is an admin.
func canManage(u *entity.User, ownerID string) bool {
	return u != nil && (u.Role == entity.RoleAdmin || u.ID == ownerID)
}
