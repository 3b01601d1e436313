package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// IsSlug 是一个自定义的校验函数，用于验证 slug 格式
func IsSlug(fl validator.FieldLevel) bool {
	return slugRe.MatchString(fl.Field().String())
}
