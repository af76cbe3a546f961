package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConfirmEmail(t *testing.T) {
	data := NewEmailData("DevCamper", "Ada", "ada@example.com",
		WithActionURL("http://localhost:5000/api/v1/auth/confirmEmail?token=abc.def"))

	subject, text, html, err := Render(ConfirmEmail, data)
	require.NoError(t, err)
	assert.Equal(t, "Email Confirmation Required", subject)
	assert.Contains(t, text, "Please confirm your email address")
	assert.Contains(t, text, "confirmEmail?token=abc.def")
	assert.Contains(t, html, "Dear Ada,")
}

func TestRenderResetPasswordFromMap(t *testing.T) {
	data := ToMap(NewEmailData("", "", "x@example.com", WithActionURL("http://h/api/v1/auth/resetPassword/tok")))

	subject, text, _, err := Render(ResetPassword, data)
	require.NoError(t, err)
	assert.Equal(t, "Password Reset Token Request", subject)
	assert.Contains(t, text, "Dear there,")
	assert.Contains(t, text, "resetPassword/tok")
	assert.Contains(t, text, "Bootcamp Directory")
}

func TestRenderTwoFactor(t *testing.T) {
	subject, text, html, err := Render(TwoFactor, NewEmailData("App", "Bo", "b@example.com", WithCode("042917")))
	require.NoError(t, err)
	assert.Equal(t, "Your Two-Factor Authentication Code", subject)
	assert.Contains(t, text, "042917")
	assert.Contains(t, html, "042917")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", EmailData{})
	assert.Error(t, err)
}
