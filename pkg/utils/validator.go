package utils

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidEmailFormat = errors.New("无效的邮箱格式")
	ErrInvalidCoordinates = errors.New("无效的地理坐标")
	ErrInvalidDateFormat  = errors.New("日期格式无效，请使用 YYYY-MM-DD 或类似格式")
)

// ValidateEmailFormat 校验邮箱格式。
func ValidateEmailFormat(email string) bool {
	trimmedEmail := strings.TrimSpace(email)
	if trimmedEmail == "" {
		return true // 空字符串不进行格式校验，业务逻辑决定是否允许为空
	}
	// 一个常用且相对简单的邮箱正则
	match, _ := regexp.MatchString(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`, trimmedEmail)
	return match
}

// ValidateCoordinates 校验经纬度是否在合法范围内。
// 纬度 [-90, 90]，经度 [-180, 180]。
func ValidateCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return ErrInvalidCoordinates
	}
	if longitude < -180 || longitude > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// ParseDate 解析日期字符串，支持多种常见格式。
// 支持 YYYY-MM-DD, YYYY/MM/DD, YYYY-M-D, YYYY/M/D 等及其变体。
func ParseDate(dateStr string) (time.Time, error) {
	trimmedDateStr := strings.TrimSpace(dateStr)
	if trimmedDateStr == "" {
		return time.Time{}, ErrInvalidDateFormat
	}

	normalizedDateStr := strings.ReplaceAll(trimmedDateStr, "/", "-")

	// 包含补零和不补零的情况
	dateLayouts := []string{
		"2006-01-02", // YYYY-MM-DD
		"2006-1-2",   // YYYY-M-D
		"2006-01-2",  // YYYY-MM-D
		"2006-1-02",  // YYYY-M-DD
	}

	var parsedDate time.Time
	var err error

	for _, layout := range dateLayouts {
		parsedDate, err = time.Parse(layout, normalizedDateStr)
		if err == nil {
			return parsedDate, nil
		}
	}
	return time.Time{}, ErrInvalidDateFormat
}
