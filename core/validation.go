package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

const notBlankTag = "notblank"

// NewTranslator returns the shared english translator.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = entranslations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, "this field cannot be blank")
}

// RegisterCustomTranslation registers an error message for a custom validation tag.
// A validator.RegisterTranslationsFunc is required for registering the Translator,
// but it has already been registered as the default translation;
// so a noop func is passed to bypass this requirement.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string) {
	registerFn := func(ut.Translator) error { return nil }
	_ = validate.RegisterTranslation(tag, translator, registerFn, func(_ ut.Translator, _ validator.FieldError) string {
		return text
	})
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// TranslateValidationErrors flattens validator errors into FieldErrors.
func TranslateValidationErrors(err validator.ValidationErrors, translator ut.Translator) []FieldError {
	flds := make([]FieldError, 0, len(err))
	for _, vErr := range err {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(translator)})
	}
	return flds
}
