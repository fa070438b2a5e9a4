package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/intellixel001/suvashpanel/internal/apiclient"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

// apiCaller is the subset of apiclient.Client used by the services.
type apiCaller interface {
	Get(ctx context.Context, path string) (apiclient.Payload, error)
	Post(ctx context.Context, path string, body interface{}) (apiclient.Payload, error)
	Put(ctx context.Context, path string, body interface{}) (apiclient.Payload, error)
	Delete(ctx context.Context, path string) (apiclient.Payload, error)
}

// Clock returns the current time.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return strings.TrimPrefix(name, "_")
	})
	return v
}

// validationError turns validator output into a VALIDATION_ERROR naming the
// first offending field.
func validationError(err error, fallback string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fieldMessage(fe))
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fallback)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "len":
		return fmt.Sprintf("%s must have exactly %s entries", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func requireID(id, name string) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Clone(appErrors.ErrValidation, name+" is required")
	}
	return nil
}

// decodeList reads a JSON array stored under field. A missing field is an empty list.
func decodeList[T any](payload apiclient.Payload, field string) ([]T, error) {
	items := []T{}
	list := payload.Field(field)
	if list == nil {
		return items, nil
	}
	if err := list.Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}
