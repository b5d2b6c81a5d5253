package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	contractNumberRe = regexp.MustCompile(`^[A-Z0-9-]+$`)
	isoDateRe        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailRe          = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRe          = regexp.MustCompile(`^[0-9+\-\s()]+$`)
	usernameRe       = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// Validate is shared by every form; custom tags are registered once.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	regexTag := func(tag string, re *regexp.Regexp) {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	regexTag("contractnum", contractNumberRe)
	regexTag("isodate", isoDateRe)
	regexTag("emailaddr", emailRe)
	regexTag("phone", phoneRe)
	regexTag("username", usernameRe)

	if err := v.RegisterValidation("posdecimal", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && d.IsPositive()
	}); err != nil {
		panic(err)
	}

	v.RegisterStructValidation(contractDates, ContractForm{})
	v.RegisterStructValidation(userPassword, UserForm{})
	return v
}

// ValidationErrors maps a form field name to its message.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func check(form any) (ValidationErrors, bool) {
	err := Validate.Struct(form)
	if err == nil {
		return ValidationErrors{}, true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{"_": err.Error()}, false
	}

	t := reflect.TypeOf(form)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := make(ValidationErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(labelOf(t, fe.StructField()), fe)
	}
	return out, false
}

func labelOf(t reflect.Type, field string) string {
	if f, ok := t.FieldByName(field); ok {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
	}
	return field
}

func message(label string, fe validator.FieldError) string {
	numeric := fe.Kind() >= reflect.Int && fe.Kind() <= reflect.Float64
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if numeric {
			return fmt.Sprintf("%s must be at least %s", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("%s must be at most %s", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "gt":
		return "Please select " + strings.ToLower(label)
	case "oneof":
		return label + " is not a valid option"
	case "contractnum":
		return "Contract number must contain only uppercase letters, numbers, and hyphens"
	case "isodate":
		return "Date must be in YYYY-MM-DD format"
	case "emailaddr":
		return "Invalid email address"
	case "phone":
		return "Invalid phone number format"
	case "username":
		return "Username can only contain letters, numbers, underscores, and hyphens"
	case "posdecimal":
		return label + " must be a positive number"
	case "enddate":
		return "End date must be after or equal to start date"
	default:
		return label + " is invalid"
	}
}
