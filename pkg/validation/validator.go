package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the domain tags (career, skill, selfrole, pwd).
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}

func register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("career", func(fl validator.FieldLevel) bool {
		return entity.IsCareer(fl.Field().String())
	})
	v.RegisterAlias("skill", "oneof=beginner intermediate advanced")
	v.RegisterAlias("selfrole", "oneof=user publisher")
	v.RegisterAlias("anyrole", "oneof=user publisher admin")
	v.RegisterAlias("pwd", "min=6")
	v.RegisterAlias("phone", "max=20")
}

// ToDetails converts binding errors into a map[field]message.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return map[string]string{"payload": "Request body is empty"}
	case errors.As(err, &se):
		return map[string]string{"payload": "Invalid JSON payload"}
	case errors.As(err, &ute):
		return map[string]string{ute.Field: fmt.Sprintf("%s must be a %s", ute.Field, ute.Type.Kind())}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fieldPath(fe)] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "Invalid payload"}
}

// Message flattens ToDetails into one comma-separated sentence, ordered by field.
func Message(err error) string {
	details := ToDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, details[k])
	}
	return strings.Join(msgs, ", ")
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "Please add a " + field
	case "email":
		return "Please add a valid email"
	case "url":
		return "Please use a valid URL with HTTP or HTTPS"
	case "career":
		return fmt.Sprintf("%v is not a supported career", fe.Value())
	case "skill":
		return "Minimum skill must be beginner, intermediate or advanced"
	case "selfrole":
		return "Role must be user or publisher"
	case "anyrole":
		return "Role must be user, publisher or admin"
	case "pwd":
		return "Password must be at least 6 characters"
	case "phone":
		return "Phone number can not be longer than 20 characters"
	case "max":
		if isNumberKind(fe.Kind()) {
			return fmt.Sprintf("%s can not be more than %s", field, param)
		}
		return fmt.Sprintf("%s can not be more than %s characters", field, param)
	case "min":
		if isNumberKind(fe.Kind()) {
			return fmt.Sprintf("%s must be at least %s", field, param)
		}
		if n, err := strconv.Atoi(param); err == nil && (fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array) {
			return fmt.Sprintf("%s must contain at least %d item(s)", field, n)
		}
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "lte":
		return fmt.Sprintf("%s can not be more than %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(param), ", "))
	default:
		if param != "" {
			return fmt.Sprintf("%s failed validation '%s=%s'", field, fe.Tag(), param)
		}
		return fmt.Sprintf("%s failed validation '%s'", field, fe.Tag())
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
