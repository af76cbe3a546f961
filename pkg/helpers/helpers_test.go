package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	tok, exp, err := m.Generate("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Same(t, m, DefaultJWT())
}

func TestJWTRejectsForeignSignatureAndExpiry(t *testing.T) {
	tok, _, err := NewJWTManager("one", time.Hour).Generate("u")
	require.NoError(t, err)
	_, err = NewJWTManager("two", time.Hour).Parse(tok)
	assert.Error(t, err)

	expired, _, err := NewJWTManager("one", -time.Minute).Generate("u")
	require.NoError(t, err)
	_, err = NewJWTManager("one", time.Hour).Parse(expired)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "123456"))
	assert.False(t, CheckPassword(hash, "1234567"))
}

func TestConfirmToken(t *testing.T) {
	raw, hash, err := NewConfirmToken()
	require.NoError(t, err)

	head, tail, ok := strings.Cut(raw, ".")
	require.True(t, ok)
	assert.Len(t, head, 40)
	assert.Len(t, tail, 200)
	assert.Equal(t, hash, ConfirmTokenHash(raw))
	assert.Equal(t, SHA256Hex(head), hash)
}

func TestGenOTPCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenOTPCode()
		require.NoError(t, err)
		assert.Regexp(t, `^\d{6}$`, code)
	}
}

func TestCookieManager(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	NewCookie("", false).SetToken(c, "abc", time.Now().Add(time.Hour))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, TokenCookie, cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	NewCookie("", false).Expire(c)
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "none", cookies[0].Value)
	assert.Equal(t, 5, cookies[0].MaxAge)
}

func TestMailQueueDeadLetters(t *testing.T) {
	assert.Equal(t, "email.jobs.dead", DeadLetterQueue("email.jobs"))

	args := mailQueueArgs("email.jobs")
	assert.Equal(t, "", args["x-dead-letter-exchange"])
	assert.Equal(t, "email.jobs.dead", args["x-dead-letter-routing-key"])
}

func TestLoggerLevelAndAppField(t *testing.T) {
	logger := NewLogger("devcamper", "production", "warn")
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	hook := test.NewLocal(logger)
	logger.Warn("hello")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "devcamper", hook.LastEntry().Data["app"])

	assert.Equal(t, logrus.DebugLevel, NewLogger("x", "development", "").GetLevel())
}
