package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"hostmarket_backend/pkg/apperrors"
)

// ValidationError - ошибки валидации "поле" -> "сообщение".
// Поле - json-путь, для вложенных структур через точку (recruit.pay).
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	var errMsgs []string
	for _, d := range e.Details() {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", d.Field, d.Message))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Details - детали в стабильном порядке для конверта ответа
func (e *ValidationError) Details() []apperrors.FieldError {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]apperrors.FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, apperrors.FieldError{Field: f, Message: e.Errors[f]})
	}
	return out
}

// AppError переводит ошибку в VALIDATION_FAILED 422
func (e *ValidationError) AppError() *apperrors.AppError {
	return apperrors.ValidationError(e.Details())
}

// Validator - обертка над go-playground/validator
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// В сообщениях используем имена из json-тегов, а не имена полей Go
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate проверяет структуру. При ошибках возвращает *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	customErrors := make(map[string]string)
	for _, fe := range validationErrors {
		customErrors[fieldPath(fe)] = v.getErrorMessage(fe)
	}

	return &ValidationError{Errors: customErrors}
}

// fieldPath отрезает имя корневой структуры из namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s items/characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Replace(fe.Param(), " ", ", ", -1))
	case "url":
		return "Must be a valid URL"
	case "uuid":
		return "Must be a valid UUID"
	default:
		if msg, ok := ruleMessages[fe.Tag()]; ok {
			return msg
		}
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
