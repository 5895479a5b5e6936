package useragent

import (
	"strings"
)

// 设备分类
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// Info 从 User-Agent 解析出的客户端信息
type Info struct {
	DeviceType string
	Browser    string
	OS         string
}

// Parse 解析 User-Agent。只做登录历史展示级别的粗分类，
// 不追求覆盖所有 UA 变体。
func Parse(ua string) Info {
	lower := strings.ToLower(ua)

	return Info{
		DeviceType: deviceType(lower),
		Browser:    browser(lower),
		OS:         operatingSystem(lower),
	}
}

// IsMobile 判断是否为移动端客户端
func IsMobile(ua string) bool {
	return deviceType(strings.ToLower(ua)) == DeviceMobile
}

func deviceType(lower string) string {
	switch {
	case strings.Contains(lower, "ipad"),
		strings.Contains(lower, "tablet"):
		return DeviceTablet
	case strings.Contains(lower, "mobile"),
		strings.Contains(lower, "iphone"),
		strings.Contains(lower, "android"):
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

func browser(lower string) string {
	switch {
	case strings.Contains(lower, "edg/"):
		return "Edge"
	case strings.Contains(lower, "firefox"):
		return "Firefox"
	case strings.Contains(lower, "chrome"):
		return "Chrome"
	case strings.Contains(lower, "safari"):
		return "Safari"
	default:
		return "Unknown"
	}
}

func operatingSystem(lower string) string {
	switch {
	case strings.Contains(lower, "windows"):
		return "Windows"
	case strings.Contains(lower, "android"):
		return "Android"
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"):
		return "iOS"
	case strings.Contains(lower, "mac os"):
		return "macOS"
	case strings.Contains(lower, "linux"):
		return "Linux"
	default:
		return "Unknown"
	}
}
