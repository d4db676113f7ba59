package utils

import (
	"net"

	"github.com/gin-gonic/gin"
)

// ExtractClientIP returns the client IP address of the request.
//
// Header X-Forwarded-For / X-Real-IP chỉ được dùng khi RemoteAddr thuộc
// trusted proxies của engine (router.SetTrustedProxies); client gửi trực
// tiếp thì luôn lấy RemoteAddr.
func ExtractClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); isValidIP(ip) {
		return ip
	}
	return "127.0.0.1"
}

func isValidIP(ip string) bool {
	return ip != "" && net.ParseIP(ip) != nil
}

// IsPrivateIP checks if an IP address is loopback or in a private range.
func IsPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsPrivate() || parsed.IsLoopback()
}
