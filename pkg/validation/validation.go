package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/vinimqsz/projeto-eng-software/internal/scheduling"
)

// custom validation tags
const (
	HHMMTag    = "hhmm"
	WeekdayTag = "weekday"
)

var (
	translator ut.Translator
	once       sync.Once
)

// Setup registers the custom tags and English messages on gin's validator.
// Safe to call more than once.
func Setup() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		Register(v)
	})
}

// Register installs the custom tags, JSON field names and translations on v.
func Register(v *validator.Validate) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	// JSON names in messages instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation(HHMMTag, hhmmValidation)
	_ = v.RegisterValidation(WeekdayTag, weekdayValidation)

	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{HHMMTag, WeekdayTag} {
		_ = v.RegisterTranslation(tag, translator, registerFn, translateCustom)
	}
}

// Translate flattens validation errors into "field: message; ..." text.
// Any other error is returned as-is.
func Translate(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || translator == nil {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+": "+fe.Translate(translator))
	}
	return strings.Join(msgs, "; ")
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case HHMMTag:
		return fe.Field() + " must be a time of day as HH:MM"
	case WeekdayTag:
		return fe.Field() + " must be between 0 (Monday) and 6 (Sunday)"
	default:
		return ""
	}
}

// hhmmValidation accepts "HH:MM" or "HH:MM:SS" strings.
func hhmmValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := scheduling.ParseTimeOfDay(s)
	return err == nil
}

func weekdayValidation(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scheduling.Weekday(fl.Field().Int()).Valid()
	}
	return false
}
