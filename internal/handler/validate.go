package handler

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const oneOfCITag = "oneofci"

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation(oneOfCITag, oneOfCI)
}

// oneOfCI is oneof with case and surrounding space ignored.
func oneOfCI(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	for _, opt := range strings.Fields(fl.Param()) {
		if strings.EqualFold(s, opt) {
			return true
		}
	}
	return false
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
