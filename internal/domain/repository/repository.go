package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
)

// ErrNotFound is returned when a well-formed id matches no row.
var ErrNotFound = errors.New("not found")

// Listable resources.
const (
	ResourceBootcamps = "bootcamps"
	ResourceCourses   = "courses"
	ResourceReviews   = "reviews"
	ResourceUsers     = "users"
)

// Finder runs advanced list queries against a named resource.
type Finder interface {
	Find(ctx context.Context, resource string, spec query.Spec, populate ...query.Populate) (query.Result, error)
	// FindOne returns a single record by id, or ErrNotFound.
	FindOne(ctx context.Context, resource, id string, populate ...query.Populate) (map[string]any, error)
}

// TxManager runs fn in a transaction carried by ctx.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
