package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. Custom type registrations must
// happen in init() before the first call to Struct.
var v = validator.New()

var (
	uppercaseRe = regexp.MustCompile(`[A-Z]`)
	lowercaseRe = regexp.MustCompile(`[a-z]`)
	digitRe     = regexp.MustCompile(`[0-9]`)
	specialRe   = regexp.MustCompile(`[@$!%*?&]`)
)

func init() {
	// password: 8-32 chars with upper, lower, digit and one of @$!%*?&.
	must(v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		if len(p) < 8 || len(p) > 32 {
			return false
		}
		return uppercaseRe.MatchString(p) &&
			lowercaseRe.MatchString(p) &&
			digitRe.MatchString(p) &&
			specialRe.MatchString(p)
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Struct validates the given struct using its validate tags.
// Returns a human-readable error or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
