package vikor

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
}

// ValidateInput checks an Input before any scoring happens. Weight problems are
// reported as ErrInvalidWeights, missing data as ErrEmptyInput and row-level
// problems as ErrValidation with one message per violation. Every problem is
// reported; when several kinds occur they are joined in that order.
func ValidateInput(in Input) error {
	return JoinValidation(in.Weights.Validate(), validateRows(in))
}

// JoinValidation combines validation errors, dropping nils. A single error is
// returned unchanged.
func JoinValidation(errs ...error) error {
	var kept []error
	for _, err := range errs {
		if err != nil {
			kept = append(kept, err)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return errors.Join(kept...)
}

func validateRows(in Input) error {
	var empty []string
	if len(in.Individuals) == 0 {
		empty = append(empty, "no individuals supplied")
	}
	if len(in.Alternatives) == 0 {
		empty = append(empty, "no alternatives supplied")
	}
	var emptyErr error
	if len(empty) > 0 {
		emptyErr = &ValidationError{Kind: ErrEmptyInput, Problems: empty}
	}

	var problems []string
	if in.V < 0 || in.V > 1 || math.IsNaN(in.V) {
		problems = append(problems, fmt.Sprintf("v must be between 0 and 1, got %v", in.V))
	}
	if in.Thresholds != nil {
		problems = append(problems, structProblems("thresholds", in.Thresholds)...)
	}

	names := make(map[string]int, len(in.Individuals))
	for i, ind := range in.Individuals {
		row := fmt.Sprintf("individual row %d", i+1)
		if ind.Name != "" {
			row = fmt.Sprintf("individual row %d (%s)", i+1, ind.Name)
			if first, dup := names[ind.Name]; dup {
				problems = append(problems, fmt.Sprintf("%s: duplicate name, first seen on row %d", row, first))
			} else {
				names[ind.Name] = i + 1
			}
		}
		problems = append(problems, structProblems(row, &ind)...)
	}

	codes := make(map[string]int, len(in.Alternatives))
	for i, alt := range in.Alternatives {
		row := fmt.Sprintf("alternative row %d", i+1)
		if alt.Code != "" {
			row = fmt.Sprintf("alternative row %d (%s)", i+1, alt.Code)
			if first, dup := codes[alt.Code]; dup {
				problems = append(problems, fmt.Sprintf("%s: duplicate code, first seen on row %d", row, first))
			} else {
				codes[alt.Code] = i + 1
			}
		}
		problems = append(problems, structProblems(row, &alt)...)
	}

	for name, dists := range in.DistanceOverrides {
		for id, d := range dists {
			if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
				problems = append(problems, fmt.Sprintf("distance override %s -> %s must be a finite nonnegative number, got %v", name, id, d))
			}
		}
	}

	var rowErr error
	if len(problems) > 0 {
		rowErr = &ValidationError{Kind: ErrValidation, Problems: problems}
	}
	return JoinValidation(emptyErr, rowErr)
}

func structProblems(prefix string, v interface{}) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{fmt.Sprintf("%s: %v", prefix, err)}
	}
	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fmt.Sprintf("%s: %s", prefix, describeFieldError(fe)))
	}
	return out
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' must not be empty", fe.Field())
	case "gte":
		return fmt.Sprintf("field '%s' must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("field '%s' must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "finite":
		return fmt.Sprintf("field '%s' must be a finite number, got %v", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("field '%s' failed '%s' check", fe.Field(), fe.Tag())
	}
}
