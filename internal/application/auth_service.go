package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	repo "github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/go-bootcamp-directory/pkg/mailer"
	mailtpl "github.com/oksasatya/go-bootcamp-directory/pkg/mailer/templates"
)

const (
	resetTokenTTL    = 10 * time.Minute
	twoFactorCodeTTL = 10 * time.Minute
)

// CodeStore holds pending two-factor code hashes.
type CodeStore interface {
	Save(ctx context.Context, userID, hash string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, bool, error)
	Delete(ctx context.Context, userID string) error
}

// Session is an issued token and the user it names.
type Session struct {
	Token   string
	Expires time.Time
	User    *entity.User
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,selfrole"`
}

type AuthService struct {
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
	Mailer  mailer.Sender
	Codes   CodeStore
	AppName string
	Logger  *logrus.Logger

	now func() time.Time
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, sender mailer.Sender, codes CodeStore, appName string, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:   users,
		JWT:     jwt,
		Mailer:  sender,
		Codes:   codes,
		AppName: appName,
		Logger:  logger,
		now:     time.Now,
	}
}

func (s *AuthService) issue(u *entity.User) (Session, error) {
	tok, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return Session{}, err
	}
	return Session{Token: tok, Expires: exp, User: u}, nil
}

func (s *AuthService) mail(ctx context.Context, tmpl string, u *entity.User, opts ...mailtpl.Option) error {
	data := mailtpl.NewEmailData(s.AppName, u.Name, u.Email, opts...)
	subject, text, html, err := mailtpl.Render(tmpl, data)
	if err != nil {
		return err
	}
	return s.Mailer.Send(ctx, mailer.Message{To: u.Email, Subject: subject, Text: text, HTML: html})
}

// Authenticate resolves the user named by a session token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindUnauthenticated, "Not authorized to access this route", err)
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Unauthenticated("Not authorized to access this route")
		}
		return nil, err
	}
	return u, nil
}

// Register creates the account and mails a confirmation link built on
// baseURL. The account is removed again when the mail cannot be sent.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, baseURL string) (Session, error) {
	role := entity.Role(in.Role)
	if role == "" {
		role = entity.RoleUser
	}
	if !role.SelfAssignable() {
		return Session{}, apperror.Validation("Role must be user or publisher")
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return Session{}, err
	}
	raw, confirmHash, err := helpers.NewConfirmToken()
	if err != nil {
		return Session{}, err
	}

	u := &entity.User{
		Name:              in.Name,
		Email:             strings.ToLower(strings.TrimSpace(in.Email)),
		Role:              role,
		Password:          hash,
		ConfirmEmailToken: &confirmHash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return Session{}, err
	}

	link := baseURL + "/api/v1/auth/confirmEmail?token=" + raw
	if err := s.mail(ctx, mailtpl.ConfirmEmail, u, mailtpl.WithActionURL(link)); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("confirmation email failed")
		}
		if derr := s.Users.Delete(ctx, u.ID); derr != nil && s.Logger != nil {
			s.Logger.WithError(derr).WithField("user_id", u.ID).Error("rollback registration failed")
		}
		return Session{}, apperror.Wrap(apperror.KindUpstream, "There was an error sending the email. Please try again later.", err)
	}
	return s.issue(u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if !helpers.CheckPassword(u.Password, password) {
		return Session{}, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *AuthService) UpdateDetails(ctx context.Context, u *entity.User, name, email string) (*entity.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, apperror.Validation("Please provide both name and email")
	}
	fresh, err := s.Users.GetByID(ctx, u.ID)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	fresh.Name = strings.TrimSpace(name)
	fresh.Email = strings.ToLower(strings.TrimSpace(email))
	if err := s.Users.Update(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, u *entity.User, current, next string) (Session, error) {
	if current == "" || next == "" {
		return Session{}, apperror.Validation("Please provide both current and new passwords")
	}
	fresh, err := s.Users.GetByID(ctx, u.ID)
	if err != nil {
		return Session{}, notFound(err, "User not found")
	}
	if !helpers.CheckPassword(fresh.Password, current) {
		return Session{}, ErrWrongPassword
	}
	if err := s.setPassword(ctx, fresh, next); err != nil {
		return Session{}, err
	}
	return s.issue(fresh)
}

// ForgotPassword stores a reset token hash for ten minutes and mails the
// raw token. The token is cleared again when the mail cannot be sent.
func (s *AuthService) ForgotPassword(ctx context.Context, email, baseURL string) error {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return notFound(err, "There is no user with that email")
	}
	raw, err := helpers.RandomHex(20)
	if err != nil {
		return err
	}
	hash := helpers.SHA256Hex(raw)
	exp := s.now().Add(resetTokenTTL)
	u.ResetPasswordToken = &hash
	u.ResetPasswordExpire = &exp
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}

	link := baseURL + "/api/v1/auth/resetPassword/" + raw
	if err := s.mail(ctx, mailtpl.ResetPassword, u, mailtpl.WithActionURL(link), mailtpl.WithExpiresIn(resetTokenTTL)); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("reset email failed")
		}
		u.ClearReset()
		if uerr := s.Users.Update(ctx, u); uerr != nil && s.Logger != nil {
			s.Logger.WithError(uerr).WithField("user_id", u.ID).Error("clear reset token failed")
		}
		return apperror.Wrap(apperror.KindUpstream, "Email could not be sent", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, raw, password string) (Session, error) {
	u, err := s.Users.GetByResetToken(ctx, helpers.SHA256Hex(raw), s.now())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Session{}, ErrInvalidResetToken
		}
		return Session{}, err
	}
	u.ClearReset()
	if err := s.setPassword(ctx, u, password); err != nil {
		return Session{}, err
	}
	return s.issue(u)
}

func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidConfirm
	}
	u, err := s.Users.GetByConfirmToken(ctx, helpers.ConfirmTokenHash(token))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Session{}, ErrInvalidConfirm
		}
		return Session{}, err
	}
	u.ConfirmEmailToken = nil
	u.IsEmailConfirmed = true
	if err := s.Users.Update(ctx, u); err != nil {
		return Session{}, err
	}
	return s.issue(u)
}

// SendTwoFactorCode mails a fresh six digit code valid for ten minutes.
func (s *AuthService) SendTwoFactorCode(ctx context.Context, u *entity.User) error {
	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	if err := s.Codes.Save(ctx, u.ID, helpers.SHA256Hex(code), twoFactorCodeTTL); err != nil {
		return err
	}
	if err := s.mail(ctx, mailtpl.TwoFactor, u, mailtpl.WithCode(code), mailtpl.WithExpiresIn(twoFactorCodeTTL)); err != nil {
		return apperror.Wrap(apperror.KindUpstream, "Two-factor code could not be sent", err)
	}
	return nil
}

// VerifyTwoFactorCode consumes the pending code when it matches.
func (s *AuthService) VerifyTwoFactorCode(ctx context.Context, u *entity.User, code string) error {
	want, ok, err := s.Codes.Get(ctx, u.ID)
	if err != nil {
		return err
	}
	got := helpers.SHA256Hex(strings.TrimSpace(code))
	if !ok || code == "" || subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
		return ErrInvalidTwoFactor
	}
	if err := s.Codes.Delete(ctx, u.ID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("delete two-factor code failed")
	}
	return nil
}

func (s *AuthService) setPassword(ctx context.Context, u *entity.User, plain string) error {
	if len(plain) < 6 {
		return apperror.Validation("Password must be at least 6 characters")
	}
	hash, err := helpers.HashPassword(plain)
	if err != nil {
		return err
	}
	u.Password = hash
	return s.Users.Update(ctx, u)
}
