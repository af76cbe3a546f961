package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines the fields available to templates.
type EmailData struct {
	Name          string `json:"Name"`
	Email         string `json:"Email"`
	AppName       string `json:"AppName"`
	ActionURL     string `json:"ActionURL"`
	Code          string `json:"Code"`
	ExpiresAtText string `json:"ExpiresAtText"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

type Option func(*EmailData)

func WithActionURL(url string) Option { return func(d *EmailData) { d.ActionURL = url } }
func WithCode(code string) Option     { return func(d *EmailData) { d.Code = code } }

func WithExpiresIn(dur time.Duration) Option {
	return func(d *EmailData) {
		d.ExpiresAtText = time.Now().Add(dur).UTC().Format("02 January 2006, 15:04 MST")
	}
}

func NewEmailData(appName, name, email string, opts ...Option) EmailData {
	d := EmailData{Name: name, Email: email, AppName: appName}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func baseFuncs() map[string]any {
	return map[string]any{
		"upper": strings.ToUpper,
		"default": func(fallback string, value any) string {
			s := ""
			if value != nil {
				s = strings.TrimSpace(fmt.Sprint(value))
			}
			if s == "" {
				return fallback
			}
			return s
		},
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

const (
	ConfirmEmail  = "confirm_email"
	ResetPassword = "reset_password"
	TwoFactor     = "two_factor"
)

// renderFile loads and renders a single template file from the embedded FS.
// isHTML indicates whether to use html/template (true) or text/template (false).
func renderFile(filename string, isHTML bool, data any) (string, error) {
	var (
		buf bytes.Buffer
		err error
	)

	if isHTML {
		tpl, e := htmpl.New(filename).Funcs(htmlFuncMap).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse html %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	} else {
		tpl, e := texttpl.New(filename).Funcs(textFuncMap).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse text %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render loads and renders subject, text, and html templates for the given base name.
// Expects: <name>.subject.tmpl, <name>.text.tmpl, <name>.html.tmpl
func Render(name string, data any) (subject string, text string, html string, err error) {
	subject, err = renderFile(name+".subject.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	text, err = renderFile(name+".text.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderFile(name+".html.tmpl", true, data)
	if err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
