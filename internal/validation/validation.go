package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field path (snake_case, dot separated) to a message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add keeps the first message recorded for a field.
func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

func (fe FieldErrors) Merge(prefix string, other FieldErrors) {
	for k, v := range other {
		if prefix != "" {
			k = prefix + "." + k
		}
		fe.Add(k, v)
	}
}

func (fe FieldErrors) Fields() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// OrNil returns nil when no field failed so callers can `return fe.OrNil()`.
func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// ======================================================
// go-playground engine
// ======================================================

var (
	engine     *validator.Validate
	engineOnce sync.Once
)

func Engine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return IsClock(fl.Field().String())
		})

		engine = v
	})
	return engine
}

// Struct validates s and converts failures into FieldErrors keyed by json path.
// The root struct name is stripped and slice indexes become path segments:
// "alternate_slots[1].time" is reported as "alternate_slots.1.time".
func Struct(s any) FieldErrors {
	fe := FieldErrors{}

	err := Engine().Struct(s)
	if err == nil {
		return fe
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add("_", err.Error())
		return fe
	}

	for _, e := range verrs {
		fe.Add(fieldPath(e.Namespace()), message(e))
	}
	return fe
}

func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	ns = strings.ReplaceAll(ns, "]", "")
	return ns
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "hhmm":
		return "must be a time formatted HH:MM"
	case "datetime":
		return "must be a date formatted YYYY-MM-DD"
	case "timezone":
		return "unknown timezone"
	case "max":
		return "at most " + e.Param() + " entries"
	case "min":
		return "too short"
	case "email":
		return "must be a valid email"
	}
	return "invalid (" + e.Tag() + ")"
}

// ======================================================
// HH:MM helpers
// ======================================================

func IsClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// ClockMinutes returns minutes since midnight for an "HH:MM" label.
func ClockMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}
