package click

import "strings"

// 设备类型
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
	DeviceUnknown = "unknown"
)

// Device 从 User-Agent 解析出的设备信息
type Device struct {
	Type    string
	Browser string
	OS      string
}

var botMarkers = []string{"bot", "crawler", "spider", "slurp", "curl", "wget", "python-requests", "headless"}

// Classify 按关键字粗略分类 User-Agent
func Classify(userAgent string) Device {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return Device{Type: DeviceUnknown, Browser: "Other", OS: "Other"}
	}
	return Device{
		Type:    deviceType(ua),
		Browser: browser(ua),
		OS:      operatingSystem(ua),
	}
}

func deviceType(ua string) string {
	for _, marker := range botMarkers {
		if strings.Contains(ua, marker) {
			return DeviceBot
		}
	}
	switch {
	case strings.Contains(ua, "ipad"), strings.Contains(ua, "tablet"),
		strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		return DeviceTablet
	case strings.Contains(ua, "mobi"), strings.Contains(ua, "iphone"), strings.Contains(ua, "ipod"):
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

// 顺序有意义: Edge 和 Opera 的 UA 同时包含 chrome, Chrome 的 UA 同时包含 safari
func browser(ua string) string {
	switch {
	case strings.Contains(ua, "edg/"), strings.Contains(ua, "edge/"):
		return "Edge"
	case strings.Contains(ua, "opr/"), strings.Contains(ua, "opera"):
		return "Opera"
	case strings.Contains(ua, "firefox/"), strings.Contains(ua, "fxios/"):
		return "Firefox"
	case strings.Contains(ua, "chrome/"), strings.Contains(ua, "crios/"):
		return "Chrome"
	case strings.Contains(ua, "safari/"):
		return "Safari"
	case strings.Contains(ua, "msie"), strings.Contains(ua, "trident/"):
		return "IE"
	default:
		return "Other"
	}
}

func operatingSystem(ua string) string {
	switch {
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ipod"):
		return "iOS"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "cros "):
		return "ChromeOS"
	case strings.Contains(ua, "mac os x"), strings.Contains(ua, "macintosh"):
		return "macOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	default:
		return "Other"
	}
}
