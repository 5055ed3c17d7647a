package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/quizdesk/internal/model"
)

// RegisterValidators installs the custom binding tags on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("quiz_category", validateCategory)
}

// validateCategory accepts the question categories plus "mixed".
func validateCategory(fl validator.FieldLevel) bool {
	c := model.Category(fl.Field().String())
	return c == model.CategoryMixed || c.Valid()
}
