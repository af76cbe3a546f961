package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-bootcamp-directory/pkg/mailer"
	mailtpl "github.com/oksasatya/go-bootcamp-directory/pkg/mailer/templates"
)

func TestRenderPrerendered(t *testing.T) {
	msg, err := render(mailer.EmailJob{To: "a@b.io", Subject: "Hi", Text: "body"})
	require.NoError(t, err)
	assert.Equal(t, mailer.Message{To: "a@b.io", Subject: "Hi", Text: "body"}, msg)
}

func TestRenderTemplate(t *testing.T) {
	data := mailtpl.ToMap(mailtpl.NewEmailData("DevCamper", "Jane", "jane@b.io", mailtpl.WithCode("123456")))
	msg, err := render(mailer.EmailJob{To: "jane@b.io", Template: mailtpl.TwoFactor, Data: data})
	require.NoError(t, err)
	assert.Equal(t, "jane@b.io", msg.To)
	assert.NotEmpty(t, msg.Subject)
	assert.Contains(t, msg.Text, "123456")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := render(mailer.EmailJob{To: "x@y.io", Template: "nope"})
	assert.Error(t, err)
}
