package utils

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules to gin's validator.
// It is safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		err = v.RegisterValidation("objectid", isObjectID)
	})
	return err
}

func isObjectID(fl validator.FieldLevel) bool {
	return primitive.IsValidObjectID(fl.Field().String())
}

var bindingTemplates = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"objectid": "%s must be a valid id",
}

var bindingTemplatesWithParam = map[string]string{
	"gt":  "%s must be greater than %s",
	"min": "%s must be at least %s",
	"max": "%s must be at most %s",
}

// BindingMessage turns a binding error into a client facing message.
// Non-validation errors (malformed JSON) return a generic message.
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, translateFieldError(fe))
	}
	return strings.Join(messages, "; ")
}

func translateFieldError(fe validator.FieldError) string {
	field := fe.Field()
	if tmpl, ok := bindingTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := bindingTemplatesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
