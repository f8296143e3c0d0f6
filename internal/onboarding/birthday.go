package onboarding

import (
	"strconv"
	"strings"
)

// ConvertBirthday 把 MM/DD/YYYY 转为 YYYY-MM-DD，月和日不足两位时左侧补 0。
// 按 "/" 切分后重排，不校验日期合法性；段数不是 3 时原样返回。
func ConvertBirthday(s string) string {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return s
	}
	month, day, year := padTwo(parts[0]), padTwo(parts[1]), parts[2]
	return year + "-" + month + "-" + day
}

func padTwo(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}

// ParseYearsSkiing 取文本开头的整数部分，"5 years" -> 5，"abc" -> nil。
// 允许前导空白和一个正负号。
func ParseYearsSkiing(s string) *int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return nil
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}
