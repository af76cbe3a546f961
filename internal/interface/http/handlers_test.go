package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-bootcamp-directory/internal/application"
	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/go-bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
	"github.com/oksasatya/go-bootcamp-directory/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

var admin = &entity.User{ID: "a1", Name: "Admin", Email: "admin@b.io", Role: entity.RoleAdmin}

// newEngine mounts handlers behind the error responder and binds admin as
// the principal, standing in for Protect.
func newEngine(mount func(r *gin.Engine)) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorResponder(nil), func(c *gin.Context) {
		c.Set(middleware.CtxUserKey, admin)
		c.Next()
	})
	mount(r)
	return r
}

func do(r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

// ---- auth ----

type fakeAuth struct {
	session   application.Session
	err       error
	gotBase   string
	gotCode   string
	gotReset  string
	gotReg    application.RegisterInput
	forgotErr error
}

func (f *fakeAuth) Register(_ context.Context, in application.RegisterInput, baseURL string) (application.Session, error) {
	f.gotReg, f.gotBase = in, baseURL
	return f.session, f.err
}
func (f *fakeAuth) Login(context.Context, string, string) (application.Session, error) {
	return f.session, f.err
}
func (f *fakeAuth) UpdateDetails(_ context.Context, u *entity.User, name, email string) (*entity.User, error) {
	out := *u
	out.Name, out.Email = name, email
	return &out, f.err
}
func (f *fakeAuth) UpdatePassword(context.Context, *entity.User, string, string) (application.Session, error) {
	return f.session, f.err
}
func (f *fakeAuth) ForgotPassword(_ context.Context, _ string, baseURL string) error {
	f.gotBase = baseURL
	return f.forgotErr
}
func (f *fakeAuth) ResetPassword(_ context.Context, raw, _ string) (application.Session, error) {
	f.gotReset = raw
	return f.session, f.err
}
func (f *fakeAuth) ConfirmEmail(context.Context, string) (application.Session, error) {
	return f.session, f.err
}
func (f *fakeAuth) SendTwoFactorCode(context.Context, *entity.User) error { return f.err }
func (f *fakeAuth) VerifyTwoFactorCode(_ context.Context, _ *entity.User, code string) error {
	f.gotCode = code
	return f.err
}

func authEngine(f *fakeAuth, baseURL string) *gin.Engine {
	h := NewAuthHandler(f, helpers.NewCookie("", false), 24*time.Hour, baseURL, nil)
	return newEngine(func(r *gin.Engine) {
		g := r.Group("/api/v1/auth")
		g.POST("/register", h.Register)
		g.POST("/login", h.Login)
		g.GET("/logout", h.Logout)
		g.GET("/currentUser", h.CurrentUser)
		g.PUT("/updateDetails", h.UpdateDetails)
		g.POST("/forgotPassword", h.ForgotPassword)
		g.PUT("/resetPassword/:resetToken", h.ResetPassword)
		g.POST("/verifyTwoFactorCode", h.VerifyTwoFactorCode)
	})
}

func tokenCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.TokenCookie {
			return c
		}
	}
	return nil
}

func TestLoginSetsCookieAndToken(t *testing.T) {
	f := &fakeAuth{session: application.Session{Token: "tok", Expires: time.Now().Add(time.Hour), User: admin}}
	w := do(authEngine(f, ""), http.MethodPost, "/api/v1/auth/login", gin.H{"email": "admin@b.io", "password": "123456"})

	require.Equal(t, http.StatusOK, w.Code)
	b := body(t, w)
	assert.Equal(t, true, b["success"])
	assert.Equal(t, "Login successful", b["message"])
	assert.Equal(t, "tok", b["token"])
	assert.NotContains(t, b, "data")

	c := tokenCookie(w)
	require.NotNil(t, c)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)
	// cookie lifetime follows the configured cookie TTL, not the token expiry
	assert.Greater(t, c.MaxAge, int(23*time.Hour/time.Second))
}

func TestLoginFailure(t *testing.T) {
	f := &fakeAuth{err: application.ErrInvalidCredentials}
	w := do(authEngine(f, ""), http.MethodPost, "/api/v1/auth/login", gin.H{"email": "x@b.io", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", body(t, w)["error"])
	assert.Nil(t, tokenCookie(w))
}

func TestRegisterValidationAndBaseURL(t *testing.T) {
	f := &fakeAuth{session: application.Session{Token: "tok", Expires: time.Now().Add(time.Hour)}}
	r := authEngine(f, "")

	w := do(r, http.MethodPost, "/api/v1/auth/register", gin.H{"name": "Jane", "email": "jane@b.io", "password": "123", "role": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg := body(t, w)["error"].(string)
	assert.Contains(t, msg, "Password must be at least 6 characters")

	w = do(r, http.MethodPost, "/api/v1/auth/register", gin.H{"name": "Jane", "email": "jane@b.io", "password": "123456", "role": "publisher"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Registration successful. Please check your email to confirm your account.", body(t, w)["message"])
	assert.Equal(t, "http://example.com", f.gotBase)
	assert.Equal(t, "publisher", f.gotReg.Role)
}

func TestForgotPasswordUsesConfiguredBaseURL(t *testing.T) {
	f := &fakeAuth{}
	w := do(authEngine(f, "https://api.devcamper.io/"), http.MethodPost, "/api/v1/auth/forgotPassword", gin.H{"email": "jane@b.io"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Email sent", body(t, w)["data"])
	assert.Equal(t, "https://api.devcamper.io", f.gotBase)

	f.forgotErr = apperror.NotFound("There is no user with that email")
	w = do(authEngine(f, ""), http.MethodPost, "/api/v1/auth/forgotPassword", gin.H{"email": "ghost@b.io"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogoutExpiresCookie(t *testing.T) {
	w := do(authEngine(&fakeAuth{}, ""), http.MethodGet, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	b := body(t, w)
	assert.Equal(t, "User logged out successfully", b["message"])
	assert.Equal(t, map[string]any{}, b["data"])
	c := tokenCookie(w)
	require.NotNil(t, c)
	assert.Equal(t, "none", c.Value)
	assert.Equal(t, 5, c.MaxAge)
}

func TestCurrentUserAndDetails(t *testing.T) {
	r := authEngine(&fakeAuth{}, "")
	w := do(r, http.MethodGet, "/api/v1/auth/currentUser", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := body(t, w)["data"].(map[string]any)
	assert.Equal(t, "a1", data["id"])
	assert.NotContains(t, data, "password")

	w = do(r, http.MethodPut, "/api/v1/auth/updateDetails", gin.H{"name": "New"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/v1/auth/updateDetails", gin.H{"name": "New", "email": "new@b.io"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new@b.io", body(t, w)["data"].(map[string]any)["email"])
}

func TestResetAndTwoFactorParams(t *testing.T) {
	f := &fakeAuth{session: application.Session{Token: "tok", Expires: time.Now().Add(time.Hour)}}
	r := authEngine(f, "")

	w := do(r, http.MethodPut, "/api/v1/auth/resetPassword/abc123", gin.H{"password": "newpass"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", f.gotReset)
	assert.Equal(t, "Password reset successful", body(t, w)["message"])

	w = do(r, http.MethodPost, "/api/v1/auth/verifyTwoFactorCode", gin.H{"code": "123456"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "123456", f.gotCode)

	f.err = application.ErrInvalidTwoFactor
	w = do(r, http.MethodPost, "/api/v1/auth/verifyTwoFactorCode", gin.H{"code": "000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired two-factor code", body(t, w)["error"])
}

// ---- bootcamps ----

type fakeBootcamps struct {
	list     query.Result
	radius   []entity.Bootcamp
	upload   application.PhotoUpload
	uploaded []byte
	err      error
}

func (f *fakeBootcamps) List(context.Context, query.Spec) (query.Result, error) { return f.list, f.err }
func (f *fakeBootcamps) Get(_ context.Context, id string) (*entity.Bootcamp, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Bootcamp{ID: id, Name: "Devworks"}, nil
}
func (f *fakeBootcamps) Create(_ context.Context, u *entity.User, in application.BootcampInput) (*entity.Bootcamp, error) {
	return &entity.Bootcamp{ID: "b1", Name: in.Name, UserID: u.ID}, f.err
}
func (f *fakeBootcamps) Update(_ context.Context, _ *entity.User, id string, _ application.BootcampPatch) (*entity.Bootcamp, error) {
	return &entity.Bootcamp{ID: id}, f.err
}
func (f *fakeBootcamps) Delete(context.Context, *entity.User, string) error { return f.err }
func (f *fakeBootcamps) WithinRadius(context.Context, string, float64) ([]entity.Bootcamp, error) {
	return f.radius, f.err
}
func (f *fakeBootcamps) UploadPhoto(_ context.Context, _ *entity.User, id string, p application.PhotoUpload) (string, error) {
	f.upload = p
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(p.Body)
	f.uploaded = buf.Bytes()
	return "photo_" + id + ".jpg", f.err
}
func (f *fakeBootcamps) SearchText(_ context.Context, q string, _ int) ([]map[string]any, error) {
	return []map[string]any{{"id": "b1", "name": q}}, f.err
}

func bootcampEngine(f *fakeBootcamps) *gin.Engine {
	h := NewBootcampHandler(f, nil)
	return newEngine(func(r *gin.Engine) {
		g := r.Group("/api/v1/bootcamps")
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/search", h.Search)
		g.GET("/radius/:zipcode/:distance", h.WithinRadius)
		g.GET("/:id", h.Get)
		g.DELETE("/:id", h.Delete)
		g.PUT("/:id/photo", h.UploadPhoto)
	})
}

func TestBootcampListEnvelope(t *testing.T) {
	f := &fakeBootcamps{list: query.Result{Total: 30, Records: []map[string]any{{"id": "b1"}}}}
	w := do(bootcampEngine(f), http.MethodGet, "/api/v1/bootcamps?page=2&limit=10", nil)

	require.Equal(t, http.StatusOK, w.Code)
	b := body(t, w)
	assert.Equal(t, "All Bootcamps retrieved successfully", b["message"])
	assert.Equal(t, float64(30), b["count"])
	assert.Len(t, b["data"], 1)
	pg := b["pagination"].(map[string]any)
	assert.Contains(t, pg, "next")
	assert.Contains(t, pg, "prev")
}

func TestBootcampListEmptyIsArray(t *testing.T) {
	w := do(bootcampEngine(&fakeBootcamps{}), http.MethodGet, "/api/v1/bootcamps", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, body(t, w)["data"])
}

func TestBootcampListBadOperator(t *testing.T) {
	w := do(bootcampEngine(&fakeBootcamps{}), http.MethodGet, "/api/v1/bootcamps?averageCost[regex]=1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBootcampCreateValidates(t *testing.T) {
	r := bootcampEngine(&fakeBootcamps{})
	w := do(r, http.MethodPost, "/api/v1/bootcamps", gin.H{"name": "X", "description": "d", "address": "a", "careers": []string{"Basket Weaving"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body(t, w)["error"], "Basket Weaving is not a supported career")

	w = do(r, http.MethodPost, "/api/v1/bootcamps", gin.H{"name": "X", "description": "d", "address": "a", "careers": []string{"Business"}})
	require.Equal(t, http.StatusCreated, w.Code)
	b := body(t, w)
	assert.Equal(t, "Bootcamp created successfully.", b["message"])
	assert.Equal(t, "a1", b["data"].(map[string]any)["user"])
}

func TestBootcampGetNotFound(t *testing.T) {
	f := &fakeBootcamps{err: apperror.NotFound("Bootcamp not found with id of x")}
	w := do(bootcampEngine(f), http.MethodGet, "/api/v1/bootcamps/x", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Bootcamp not found with id of x", body(t, w)["error"])
}

func TestBootcampDeleteEnvelope(t *testing.T) {
	w := do(bootcampEngine(&fakeBootcamps{}), http.MethodDelete, "/api/v1/bootcamps/b1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{}, body(t, w)["data"])
}

func TestWithinRadiusMessage(t *testing.T) {
	f := &fakeBootcamps{radius: []entity.Bootcamp{{ID: "b1"}, {ID: "b2"}}}
	w := do(bootcampEngine(f), http.MethodGet, "/api/v1/bootcamps/radius/02118/100", nil)

	require.Equal(t, http.StatusOK, w.Code)
	b := body(t, w)
	assert.Equal(t, "Bootcamps within the specified radius of 0.03 miles have been successfully retrieved.", b["message"])
	assert.Equal(t, float64(2), b["count"])

	w = do(bootcampEngine(f), http.MethodGet, "/api/v1/bootcamps/radius/02118/far", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch(t *testing.T) {
	w := do(bootcampEngine(&fakeBootcamps{}), http.MethodGet, "/api/v1/bootcamps/search?q=devworks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body(t, w)["count"])
}

func TestUploadPhoto(t *testing.T) {
	f := &fakeBootcamps{}
	r := bootcampEngine(f)

	w := do(r, http.MethodPut, "/api/v1/bootcamps/b1/photo", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please upload a file", body(t, w)["error"])

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="me.jpg"`)
	hdr.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/bootcamps/b1/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	b := body(t, w)
	assert.Equal(t, "Bootcamp photo uploaded successfully.", b["message"])
	assert.Equal(t, "photo_b1.jpg", b["data"])
	assert.Equal(t, "me.jpg", f.upload.Filename)
	assert.Equal(t, "image/jpeg", f.upload.ContentType)
	assert.Equal(t, int64(len("jpeg-bytes")), f.upload.Size)
	assert.Equal(t, "jpeg-bytes", string(f.uploaded))
}

// ---- courses and reviews ----

type fakeCourses struct {
	byBootcamp string
	list       query.Result
}

func (f *fakeCourses) List(context.Context, query.Spec) (query.Result, error) { return f.list, nil }
func (f *fakeCourses) ListByBootcamp(_ context.Context, id string) ([]entity.Course, error) {
	f.byBootcamp = id
	return []entity.Course{{ID: "c1", BootcampID: id}}, nil
}
func (f *fakeCourses) Get(_ context.Context, id string) (map[string]any, error) {
	return map[string]any{"id": id, "bootcamp": map[string]any{"name": "Devworks"}}, nil
}
func (f *fakeCourses) Create(_ context.Context, _ *entity.User, bootcampID string, in application.CourseInput) (*entity.Course, error) {
	return &entity.Course{ID: "c2", Title: in.Title, BootcampID: bootcampID}, nil
}
func (f *fakeCourses) Update(_ context.Context, _ *entity.User, id string, _ application.CoursePatch) (*entity.Course, error) {
	return &entity.Course{ID: id}, nil
}
func (f *fakeCourses) Delete(context.Context, *entity.User, string) error { return nil }

func TestCourseListNestedAndTopLevel(t *testing.T) {
	f := &fakeCourses{list: query.Result{Total: 0}}
	h := NewCourseHandler(f, nil)
	r := newEngine(func(r *gin.Engine) {
		r.GET("/api/v1/courses", h.List)
		r.GET("/api/v1/bootcamps/:bootcampId/courses", h.List)
		r.POST("/api/v1/bootcamps/:bootcampId/courses", h.Create)
	})

	w := do(r, http.MethodGet, "/api/v1/bootcamps/b1/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	b := body(t, w)
	assert.Equal(t, "All Courses retrieved successfully.", b["message"])
	assert.Equal(t, float64(1), b["count"])
	assert.NotContains(t, b, "pagination")
	assert.Equal(t, "b1", f.byBootcamp)

	w = do(r, http.MethodGet, "/api/v1/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	b = body(t, w)
	assert.Equal(t, "All Courses retrieved successfully", b["message"])
	assert.Contains(t, b, "pagination")

	w = do(r, http.MethodPost, "/api/v1/bootcamps/b1/courses", gin.H{"title": "Go", "description": "d", "weeks": "8", "tuition": 0, "minimumSkill": "expert"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/bootcamps/b1/courses", gin.H{"title": "Go", "description": "d", "weeks": "8", "tuition": 0, "minimumSkill": "beginner"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b1", body(t, w)["data"].(map[string]any)["bootcamp"])
}

type fakeReviews struct{}

func (fakeReviews) List(context.Context, query.Spec) (query.Result, error) { return query.Result{}, nil }
func (fakeReviews) ListByBootcamp(context.Context, string) ([]entity.Review, error) {
	return nil, nil
}
func (fakeReviews) Get(_ context.Context, id string) (map[string]any, error) {
	return map[string]any{"id": id}, nil
}
func (fakeReviews) Create(_ context.Context, u *entity.User, bootcampID string, in application.ReviewInput) (*entity.Review, error) {
	return &entity.Review{ID: "r1", Title: in.Title, Rating: in.Rating, BootcampID: bootcampID, UserID: u.ID}, nil
}
func (fakeReviews) Update(_ context.Context, _ *entity.User, id string, _ application.ReviewPatch) (*entity.Review, error) {
	return &entity.Review{ID: id}, nil
}
func (fakeReviews) Delete(context.Context, *entity.User, string) error {
	return apperror.Forbidden("Not authorized to delete this review")
}

func TestReviewRoutes(t *testing.T) {
	h := NewReviewHandler(fakeReviews{}, nil)
	r := newEngine(func(r *gin.Engine) {
		r.GET("/api/v1/bootcamps/:bootcampId/reviews", h.List)
		r.POST("/api/v1/bootcamps/:bootcampId/reviews", h.Create)
		r.GET("/api/v1/reviews/:id", h.Get)
		r.DELETE("/api/v1/reviews/:id", h.Delete)
	})

	w := do(r, http.MethodGet, "/api/v1/bootcamps/b9/reviews", nil)
	require.Equal(t, http.StatusOK, w.Code)
	b := body(t, w)
	assert.Equal(t, "Reviews for Bootcamp ID b9 fetched successfully.", b["message"])
	assert.Equal(t, float64(0), b["count"])

	w = do(r, http.MethodGet, "/api/v1/reviews/r7", nil)
	assert.Equal(t, "Review with ID r7 fetched successfully.", body(t, w)["message"])

	w = do(r, http.MethodPost, "/api/v1/bootcamps/b9/reviews", gin.H{"title": "t", "text": "x", "rating": 11})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/bootcamps/b9/reviews", gin.H{"title": "t", "text": "x", "rating": 9})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Review added successfully.", body(t, w)["message"])

	w = do(r, http.MethodDelete, "/api/v1/reviews/r7", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ---- users ----

type fakeUsers struct{ created application.CreateUserInput }

func (f *fakeUsers) List(context.Context, query.Spec) (query.Result, error) {
	return query.Result{Total: 1, Records: []map[string]any{{"id": "u1"}}}, nil
}
func (f *fakeUsers) Get(_ context.Context, id string) (*entity.User, error) {
	return &entity.User{ID: id, Password: "hash"}, nil
}
func (f *fakeUsers) Create(_ context.Context, in application.CreateUserInput) (*entity.User, error) {
	f.created = in
	return &entity.User{ID: "u2", Name: in.Name, Email: in.Email, Role: entity.Role(in.Role)}, nil
}
func (f *fakeUsers) Update(_ context.Context, id string, _ application.UserPatch) (*entity.User, error) {
	return &entity.User{ID: id}, nil
}
func (f *fakeUsers) Delete(context.Context, string) error { return nil }

func TestUserRoutes(t *testing.T) {
	f := &fakeUsers{}
	h := NewUserHandler(f, nil)
	r := newEngine(func(r *gin.Engine) {
		r.GET("/api/v1/users", h.List)
		r.POST("/api/v1/users", h.Create)
		r.GET("/api/v1/users/:id", h.Get)
	})

	w := do(r, http.MethodGet, "/api/v1/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "All Users retrieved successfully", body(t, w)["message"])

	w = do(r, http.MethodGet, "/api/v1/users/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, strings.Contains(w.Body.String(), "hash"))

	w = do(r, http.MethodPost, "/api/v1/users", gin.H{"name": "N", "email": "bad", "password": "123456"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please add a valid email", body(t, w)["error"])

	w = do(r, http.MethodPost, "/api/v1/users", gin.H{"name": "N", "email": "n@b.io", "password": "123456", "role": "admin"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "admin", f.created.Role)
}
