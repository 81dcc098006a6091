package dataset

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"demographics-insights-go/internal/types"
)

var (
	vOnce sync.Once
	v     *validator.Validate
)

func get() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
	})
	return v
}

// Validate checks a record before it reaches the engine: id present, age not
// negative.
func Validate(p types.Person) error {
	err := get().Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid person %q: %s failed %s=%s", p.ID, fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("invalid person %q: %w", p.ID, err)
}

// ValidateAll validates every record, reporting the first failure by position.
func ValidateAll(people []types.Person) error {
	for i, p := range people {
		if err := Validate(p); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
