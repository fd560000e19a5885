package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

// registerValidators installs enum validators on gin's binding engine so
// request DTOs can carry tags like binding:"platform" or binding:"playstyle".
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	rules := map[string]func(string) bool{
		"platform":        domain.ValidPlatform,
		"genre":           domain.ValidGenre,
		"playtime":        domain.ValidPlayTime,
		"region":          domain.ValidRegion,
		"report_category": domain.ValidReportCategory,
	}
	for tag, valid := range rules {
		valid := valid
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
	}

	_ = v.RegisterValidation("playstyle", func(fl validator.FieldLevel) bool {
		return domain.ValidPlaystyle(domain.Playstyle(fl.Field().String()))
	})
	_ = v.RegisterValidation("swipe_action", func(fl validator.FieldLevel) bool {
		return domain.ValidSwipeAction(domain.SwipeAction(fl.Field().String()))
	})
}
