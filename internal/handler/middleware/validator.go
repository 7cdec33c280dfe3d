package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the date and time tags used by request DTOs.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		slog.Warn("gin validator engine is not go-playground/validator; custom tags unavailable")
		return
	}
	_ = v.RegisterValidation("yyyymmdd", layoutValidator("2006-01-02"))
	_ = v.RegisterValidation("hhmm", layoutValidator("15:04"))
}

func layoutValidator(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.Parse(layout, s)
		return err == nil
	}
}
