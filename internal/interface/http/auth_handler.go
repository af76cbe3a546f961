package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/internal/application"
	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/go-bootcamp-directory/pkg/response"
)

// AuthUsecase is the account and session workflow behind /auth.
type AuthUsecase interface {
	Register(ctx context.Context, in application.RegisterInput, baseURL string) (application.Session, error)
	Login(ctx context.Context, email, password string) (application.Session, error)
	UpdateDetails(ctx context.Context, u *entity.User, name, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, u *entity.User, current, next string) (application.Session, error)
	ForgotPassword(ctx context.Context, email, baseURL string) error
	ResetPassword(ctx context.Context, raw, password string) (application.Session, error)
	ConfirmEmail(ctx context.Context, token string) (application.Session, error)
	SendTwoFactorCode(ctx context.Context, u *entity.User) error
	VerifyTwoFactorCode(ctx context.Context, u *entity.User, code string) error
}

type AuthHandler struct {
	Svc     AuthUsecase
	Cookies *helpers.Manager
	// CookieTTL bounds the token cookie lifetime. Zero follows the token expiry.
	CookieTTL time.Duration
	// BaseURL prefixes links sent by email. Empty uses the request host.
	BaseURL string
	Logger  *logrus.Logger
}

func NewAuthHandler(svc AuthUsecase, cookies *helpers.Manager, cookieTTL time.Duration, baseURL string, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, CookieTTL: cookieTTL, BaseURL: strings.TrimRight(baseURL, "/"), Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateDetailsRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Email string `json:"email" binding:"required,email"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,pwd"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,pwd"`
}

type twoFactorRequest struct {
	Code string `json:"code" binding:"required"`
}

// sendToken sets the token cookie and writes {success,status,message,token}.
func (h *AuthHandler) sendToken(c *gin.Context, status int, s application.Session, message string) {
	exp := s.Expires
	if h.CookieTTL > 0 {
		exp = time.Now().Add(h.CookieTTL)
	}
	h.Cookies.SetToken(c, s.Token, exp)
	response.Success(c, status, nil, message, response.WithToken(s.Token))
}

func (h *AuthHandler) baseURL(c *gin.Context) string {
	if h.BaseURL != "" {
		return h.BaseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := c.GetHeader("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	return scheme + "://" + c.Request.Host
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterInput
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.Register(c.Request.Context(), req, h.baseURL(c))
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, s, "Registration successful. Please check your email to confirm your account.")
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, s, "Login successful")
}

// Logout GET /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Expire(c)
	response.Success(c, http.StatusOK, gin.H{}, "User logged out successfully")
}

// CurrentUser GET /api/v1/auth/currentUser
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	response.Success(c, http.StatusOK, principal(c), "Current authenticated user retrieved successfully")
}

// UpdateDetails PUT /api/v1/auth/updateDetails
func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	var req updateDetailsRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.UpdateDetails(c.Request.Context(), principal(c), req.Name, req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "User details updated successfully")
}

// UpdatePassword PUT /api/v1/auth/updatePassword
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.UpdatePassword(c.Request.Context(), principal(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, s, "Password updated successfully")
}

// ForgotPassword POST /api/v1/auth/forgotPassword
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email, h.baseURL(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Email sent", "")
}

// ResetPassword PUT /api/v1/auth/resetPassword/:resetToken
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("resetToken"), req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, s, "Password reset successful")
}

// ConfirmEmail GET /api/v1/auth/confirmEmail?token=
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	s, err := h.Svc.ConfirmEmail(c.Request.Context(), c.Query("token"))
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, s, "Email confirmed successfully.")
}

// SendTwoFactorCode POST /api/v1/auth/sendTwoFactorCode
func (h *AuthHandler) SendTwoFactorCode(c *gin.Context) {
	if err := h.Svc.SendTwoFactorCode(c.Request.Context(), principal(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Two-factor authentication code sent successfully")
}

// VerifyTwoFactorCode POST /api/v1/auth/verifyTwoFactorCode
func (h *AuthHandler) VerifyTwoFactorCode(c *gin.Context) {
	var req twoFactorRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.VerifyTwoFactorCode(c.Request.Context(), principal(c), req.Code); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Two-factor authentication code verified successfully")
}
