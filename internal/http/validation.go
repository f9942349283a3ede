package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators agrega al validador de gin las reglas propias del dominio
// y usa los nombres JSON en los mensajes de error.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return ValidPassword(fl.Field().String())
		})
	})
}

// ValidPassword exige 8 a 12 caracteres alfanumericos, al menos una mayuscula,
// al menos una minuscula y exactamente dos digitos no consecutivos.
func ValidPassword(pw string) bool {
	if len(pw) < 8 || len(pw) > 12 {
		return false
	}
	var upper, lower bool
	digits := 0
	prevDigit := false
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
			prevDigit = false
		case r >= 'a' && r <= 'z':
			lower = true
			prevDigit = false
		case r >= '0' && r <= '9':
			if prevDigit {
				return false
			}
			digits++
			prevDigit = true
		default:
			return false
		}
	}
	return upper && lower && digits == 2
}

// bindingMessage agrupa los errores de campo en un unico mensaje.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fieldPath(fe)+": "+fieldMessage(fe))
	}
	return strings.Join(parts, ", ")
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "invalid email format"
	case "password":
		return "must have one uppercase letter, one lowercase letter, exactly two non-consecutive digits and between 8 and 12 characters"
	case "number":
		return "must contain only digits"
	case "min":
		return fmt.Sprintf("must have at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must have at most %s characters", fe.Param())
	case "gt":
		return "must be a positive number"
	default:
		return "is invalid"
	}
}
