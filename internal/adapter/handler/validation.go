package handler

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/leondli/centriq/internal/domain/entity"
)

var registerOnce sync.Once

// RegisterValidators adds the domain rules to gin's binding validator
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("task_status", validateTaskStatus)
	})
}

func validateTaskStatus(fl validator.FieldLevel) bool {
	return entity.TaskStatus(fl.Field().String()).IsValid()
}
