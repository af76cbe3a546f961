package application

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	repo "github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
)

func newUserService(db *memDB, finder *fakeFinder) *UserService {
	logger, _ := test.NewNullLogger()
	return NewUserService(fakeUsers{db}, finder, logger)
}

func TestUserServiceCRUD(t *testing.T) {
	db := newMemDB()
	svc := newUserService(db, &fakeFinder{})
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserInput{Name: "Eve", Email: "Eve@Example.com", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.Equal(t, "eve@example.com", u.Email)

	_, err = svc.Create(ctx, CreateUserInput{Name: "Eve2", Email: "eve@example.com", Password: "123456"})
	assert.True(t, apperror.Is(err, apperror.KindDuplicate))

	got, err := svc.Update(ctx, u.ID, UserPatch{Role: str("publisher"), Password: str("abcdef")})
	require.NoError(t, err)
	assert.Equal(t, entity.RolePublisher, got.Role)
	assert.True(t, helpers.CheckPassword(db.users[u.ID].Password, "abcdef"))

	require.NoError(t, svc.Delete(ctx, u.ID))
	_, err = svc.Get(ctx, u.ID)
	assert.Equal(t, "No user found with the ID of "+u.ID, err.Error())

	err = svc.Delete(ctx, u.ID)
	assert.Equal(t, "User not found with id of "+u.ID, err.Error())
	_, err = svc.Update(ctx, u.ID, UserPatch{})
	assert.Equal(t, "User not found with id of "+u.ID, err.Error())
}

func TestUserServiceList(t *testing.T) {
	finder := &fakeFinder{}
	svc := newUserService(newMemDB(), finder)

	_, err := svc.List(context.Background(), query.Spec{Page: 1, Limit: 25})
	require.NoError(t, err)
	assert.Equal(t, repo.ResourceUsers, finder.calls[0].Resource)
	assert.Empty(t, finder.calls[0].Populate)
}
