package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
)

// postgres SQLSTATE codes we classify.
const (
	codeUniqueViolation     = "23505"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeForeignKeyViolation = "23503"
	codeStringTooLong       = "22001"
	codeInvalidText         = "22P02"
)

// checkMessages maps constraint names to the message shown to clients.
var checkMessages = map[string]string{
	"reviews_rating_check":           "Rating must be between 1 and 10",
	"bootcamps_average_rating_check": "Rating must be between 1 and 10",
	"bootcamps_careers_check":        "Please add at least one career",
	"courses_minimum_skill_check":    "Minimum skill must be beginner, intermediate or advanced",
	"users_role_check":               "Role must be user, publisher or admin",
}

// translateError classifies driver errors into the application taxonomy.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return apperror.Duplicate(err)
	case codeNotNullViolation:
		return apperror.Wrap(apperror.KindValidation, "Please add a "+pgErr.ColumnName, err)
	case codeCheckViolation:
		if msg, ok := checkMessages[pgErr.ConstraintName]; ok {
			return apperror.Wrap(apperror.KindValidation, msg, err)
		}
		return apperror.Wrap(apperror.KindValidation, "Invalid value", err)
	case codeStringTooLong:
		return apperror.Wrap(apperror.KindValidation, "Value is too long", err)
	case codeForeignKeyViolation:
		return apperror.Wrap(apperror.KindValidation, referencedMessage(pgErr), err)
	case codeInvalidText:
		return apperror.Wrap(apperror.KindNotFound, "Resource not found", err)
	}
	return err
}

func referencedMessage(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName == "bootcamps_user_id_fkey" {
		return "User still owns a bootcamp"
	}
	return "Referenced resource is still in use or does not exist"
}

// checkID rejects malformed identifiers before they reach the database.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.ResourceNotFound(id)
	}
	return nil
}
