package dto

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// 旧资料里常见 "(02)2345-6789"、"02 2345 6789"、"+886-912-345-678"
	phonePattern = regexp.MustCompile(`^\+?[0-9()\- ]+$`)
	registerOnce sync.Once
)

const (
	phoneMinDigits = 6
	phoneMaxDigits = 20
)

// RegisterValidators 向gin的validator注册自定义tag
// - phone: 客户/员工电话，数字、空格、括号与连字符，可带+号前缀，数字6-20位
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("phone", validatePhone)
		}
	})
}

func validatePhone(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !phonePattern.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= phoneMinDigits && digits <= phoneMaxDigits
}
