package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/sadopc/swimlog/internal/practice"
)

var registerOnce sync.Once

// registerValidators installs the "stroke" rule on gin's validator and makes
// its errors report wire field names.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(wireName)
		if err := v.RegisterValidation("stroke", validateStroke); err != nil {
			panic(fmt.Sprintf("register stroke validation: %v", err))
		}
	})
}

func validateStroke(fl validator.FieldLevel) bool {
	_, err := practice.ParseStroke(fl.Field().String())
	return err == nil
}

func wireName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// describeBindError turns a binding failure into a client-facing detail.
func describeBindError(err error) string {
	var perr *practice.ValidationError
	if errors.As(err, &perr) {
		return perr.Error()
	}
	var terr *json.UnmarshalTypeError
	if errors.As(err, &terr) {
		return fmt.Sprintf("invalid %s: must be %s", terr.Field, describeKind(terr.Type))
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("invalid %s: is required", fe.Field())
	case "gt":
		return fmt.Sprintf("invalid %s: must be greater than %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("invalid %s: expected YYYY-MM-DD, got %q", fe.Field(), fe.Value())
	case "stroke":
		return fmt.Sprintf("invalid %s: must be one of %s, got %q", fe.Field(), strings.Join(practice.StrokeNames(), ", "), fe.Value())
	}
	return fmt.Sprintf("invalid %s: failed %s", fe.Field(), fe.Tag())
}

func describeKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	}
	return "a " + t.Kind().String()
}
