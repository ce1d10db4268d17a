package accountsdk

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the signup request. Returns field name to message, or nil.
func (r SignupRequest) Validate() map[string]string { return validateStruct(r) }

// Validate checks the admin create request.
func (r AdminCreateUserRequest) Validate() map[string]string { return validateStruct(r) }

// Validate checks the change password request.
func (r ChangePasswordRequest) Validate() map[string]string { return validateStruct(r) }

// Validate checks the avatar update request.
func (r AvatarUpdateRequest) Validate() map[string]string { return validateStruct(r) }

func validateStruct(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = reason(fe)
	}
	return out
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("too long (max %s)", fe.Param())
	case "min":
		return fmt.Sprintf("too short (min %s)", fe.Param())
	default:
		return "invalid"
	}
}

// ValidationDetail flattens field errors into one stable sentence, e.g.
// "email: must be a valid email address; password: required".
func ValidationDetail(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+errs[k])
	}
	return strings.Join(parts, "; ")
}
