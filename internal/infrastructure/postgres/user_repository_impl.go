package postgres

import (
	"context"
	"time"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id::text, name, email, role, password_hash, reset_password_token,
	reset_password_expire, confirm_email_token, is_email_confirmed, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.Password, &u.ResetPasswordToken,
		&u.ResetPasswordExpire, &u.ConfirmEmailToken, &u.IsEmailConfirmed, &u.CreatedAt); err != nil {
		return nil, translateError(err)
	}
	u.Role = entity.Role(role)
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	row := conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO users (name, email, role, password_hash, confirm_email_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text, created_at
	`, u.Name, u.Email, string(u.Role), u.Password, u.ConfirmEmailToken)

	return translateError(row.Scan(&u.ID, &u.CreatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return scanUser(conn(ctx, r.db).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1::text::uuid`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(conn(ctx, r.db).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

func (r *UserRepository) GetByResetToken(ctx context.Context, hash string, now time.Time) (*entity.User, error) {
	return scanUser(conn(ctx, r.db).QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE reset_password_token = $1 AND reset_password_expire > $2
	`, hash, now))
}

func (r *UserRepository) GetByConfirmToken(ctx context.Context, hash string) (*entity.User, error) {
	return scanUser(conn(ctx, r.db).QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE confirm_email_token = $1 AND is_email_confirmed = false
	`, hash))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	if err := checkID(u.ID); err != nil {
		return err
	}
	res, err := conn(ctx, r.db).Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, role = $3, password_hash = $4,
		    reset_password_token = $5, reset_password_expire = $6,
		    confirm_email_token = $7, is_email_confirmed = $8
		WHERE id = $9::text::uuid
	`, u.Name, u.Email, string(u.Role), u.Password, u.ResetPasswordToken, u.ResetPasswordExpire,
		u.ConfirmEmailToken, u.IsEmailConfirmed, u.ID)
	if err != nil {
		return translateError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM users WHERE id = $1::text::uuid`, id)
	if err != nil {
		return translateError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
