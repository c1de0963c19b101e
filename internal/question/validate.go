package question

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes a question that violates the bank invariants.
type ValidationError struct {
	Index  int
	ID     string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("question #%d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("question #%d (%s): %s", e.Index, e.ID, e.Reason)
}

var (
	validateOnce sync.Once
	structRules  *validator.Validate
)

func rules() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		err := v.RegisterValidation("question_type", func(fl validator.FieldLevel) bool {
			return Type(fl.Field().String()).Valid()
		})
		if err != nil {
			panic(fmt.Sprintf("question: register question_type rule: %v", err))
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		structRules = v
	})
	return structRules
}

// Validate checks every question against the bank invariants: required
// fields, a known type, at least two options, an answer index inside the
// option range, and ids unique across the list. All violations are
// returned joined; each is a *ValidationError.
func Validate(qs []Question) error {
	var errs []error
	seen := make(map[string]int, len(qs))

	for i, q := range qs {
		if err := rules().Struct(q); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) {
				for _, fe := range fieldErrs {
					errs = append(errs, &ValidationError{
						Index:  i,
						ID:     q.ID,
						Reason: fmt.Sprintf("field %s failed %q", fe.Namespace(), fe.Tag()),
					})
				}
			} else {
				errs = append(errs, &ValidationError{Index: i, ID: q.ID, Reason: err.Error()})
			}
		}

		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			errs = append(errs, &ValidationError{
				Index:  i,
				ID:     q.ID,
				Reason: fmt.Sprintf("answerIndex %d out of range for %d options", q.AnswerIndex, len(q.Options)),
			})
		}

		if q.ID != "" {
			if first, dup := seen[q.ID]; dup {
				errs = append(errs, &ValidationError{
					Index:  i,
					ID:     q.ID,
					Reason: fmt.Sprintf("duplicate id (first seen at #%d)", first),
				})
			} else {
				seen[q.ID] = i
			}
		}
	}

	return errors.Join(errs...)
}
