package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// MinPasswordLength 注册密码最小长度
const MinPasswordLength = 6

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeEmail 去掉首尾空白并转小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
