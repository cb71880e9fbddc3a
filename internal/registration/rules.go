package registration

import (
	"context"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Custom validation tags
const (
	TagFilled         = "filled"         // non-blank after trimming
	TagTrimMin        = "trimmin"        // minimum rune count after trimming
	TagLetters        = "letters"        // letters and spaces only
	TagEmailAddr      = "emailaddr"      // local@domain.tld
	TagIndianMobile   = "indianmobile"   // 10 digits starting 6-9, optional 91 prefix
	TagPostalCode     = "postalcode"     // 4-10 digits
	TagStrongPassword = "strongpassword" // all six strength checks
	TagISODate        = "isodate"        // YYYY-MM-DD
	TagNotFuture      = "notfuture"      // date not after today
	TagMinAge         = "minage"         // age in whole years >= param
	TagMaxAge         = "maxage"         // age in whole years <= param
	TagYearRange      = "yearrange"      // param <= year <= current year
)

const dateLayout = "2006-01-02"

var (
	lettersRegex    = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailRegex      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	postalCodeRegex = regexp.MustCompile(`^[0-9]{4,10}$`)
)

type nowKey struct{}

func withNow(ctx context.Context, now time.Time) context.Context {
	return context.WithValue(ctx, nowKey{}, now)
}

func nowFrom(ctx context.Context) time.Time {
	if t, ok := ctx.Value(nowKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation(TagFilled, validateFilled)
	_ = v.RegisterValidation(TagTrimMin, validateTrimMin)
	_ = v.RegisterValidation(TagLetters, matchNonEmpty(lettersRegex))
	_ = v.RegisterValidation(TagEmailAddr, matchNonEmpty(emailRegex))
	_ = v.RegisterValidation(TagPostalCode, matchNonEmpty(postalCodeRegex))
	_ = v.RegisterValidation(TagIndianMobile, validateIndianMobile)
	_ = v.RegisterValidation(TagStrongPassword, validateStrongPassword)
	_ = v.RegisterValidation(TagISODate, validateISODate)
	_ = v.RegisterValidationCtx(TagNotFuture, validateNotFuture)
	_ = v.RegisterValidationCtx(TagMinAge, validateMinAge)
	_ = v.RegisterValidationCtx(TagMaxAge, validateMaxAge)
	_ = v.RegisterValidationCtx(TagYearRange, validateYearRange)
	return v
}

func validateFilled(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateTrimMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

// matchNonEmpty leaves empty values to the filled rule.
func matchNonEmpty(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return re.MatchString(value)
	}
}

func validateIndianMobile(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return IsIndianMobile(value)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return PasswordStrength(value).Score == MaxStrengthScore
}

func validateISODate(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

func parseDate(fl validator.FieldLevel) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(fl.Field().String()))
	return t, err == nil
}

func validateNotFuture(ctx context.Context, fl validator.FieldLevel) bool {
	d, ok := parseDate(fl)
	if !ok {
		return true
	}
	now := nowFrom(ctx)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !d.After(today)
}

func validateMinAge(ctx context.Context, fl validator.FieldLevel) bool {
	d, ok := parseDate(fl)
	if !ok {
		return true
	}
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return AgeAt(d, nowFrom(ctx)) >= limit
}

func validateMaxAge(ctx context.Context, fl validator.FieldLevel) bool {
	d, ok := parseDate(fl)
	if !ok {
		return true
	}
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return AgeAt(d, nowFrom(ctx)) <= limit
}

func validateYearRange(ctx context.Context, fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return false
	}
	first, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return year >= first && year <= nowFrom(ctx).Year()
}

// AgeAt returns completed years between dob and now.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
