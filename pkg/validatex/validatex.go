// Package validatex validates request structs with go-playground/validator
// and reports failures as result.Issue lists with English messages.
package validatex

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/shanco/accessissues/pkg/idx"
	"github.com/shanco/accessissues/pkg/result"
)

var ErrTranslatorNotFound = errors.New("validatex: translator not found")

// Validator wraps a configured validator and its English translator.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a Validator with English messages, JSON field names and the
// custom rules `ulid` and `otp`.
func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report json names ("userId") rather than Go names ("UserID").
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		default:
			return name
		}
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if err := registerCustom(validate, trans); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, translator: trans}, nil
}

var (
	defaultOnce sync.Once
	defaultV    *Validator
	defaultErr  error
)

// Default returns a process-wide Validator, built on first use.
func Default() (*Validator, error) {
	defaultOnce.Do(func() {
		defaultV, defaultErr = New()
	})
	return defaultV, defaultErr
}

// Validate checks data and returns one Issue per failing field. The error is
// non-nil only when data cannot be validated at all (not a struct, for
// instance); a failing field is never an error.
func (v *Validator) Validate(data any) ([]result.Issue, error) {
	err := v.validate.Struct(data)
	if err == nil {
		return nil, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}

	issues := make([]result.Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, result.Issue{
			Path:    issuePath(fe.Namespace()),
			Message: fe.Translate(v.translator),
		})
	}
	return issues, nil
}

// Var validates a single value against tag, e.g. Var(email, "required,email").
func (v *Validator) Var(value any, tag string) ([]result.Issue, error) {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}

	issues := make([]result.Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, result.Issue{Message: fe.Translate(v.translator)})
	}
	return issues, nil
}

// issuePath drops the root struct name: "CreateInput.session.userId" becomes
// "session.userId".
func issuePath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func registerCustom(validate *validator.Validate, trans ut.Translator) error {
	rules := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{
			tag: "ulid",
			fn: func(fl validator.FieldLevel) bool {
				return idx.Valid(fl.Field().String())
			},
			message: "{0} must be a valid id",
		},
		{
			tag: "otp",
			fn: func(fl validator.FieldLevel) bool {
				s := fl.Field().String()
				if len(s) != 6 {
					return false
				}
				for _, c := range s {
					if c < '0' || c > '9' {
						return false
					}
				}
				return true
			},
			message: "{0} must be 6 digits",
		},
	}

	for _, rule := range rules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return err
		}

		// `ulid` replaces the built-in rule, translation included.
		message := rule.message
		err := validate.RegisterTranslation(rule.tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(rule.tag, message, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, err := ut.T(fe.Tag(), fe.Field())
				if err != nil {
					return fe.Error()
				}
				return t
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}
