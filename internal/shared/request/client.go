// Package request inspects incoming request metadata.
package request

import "strings"

const (
	ClientWeb    = "WEB"
	ClientMobile = "MOBILE"
	ClientAPI    = "API"
)

// ResolveClientType prefers the explicit X-Client-Type header and falls
// back to a User-Agent sniff.
func ResolveClientType(header, userAgent string) string {
	switch strings.ToUpper(strings.TrimSpace(header)) {
	case ClientWeb:
		return ClientWeb
	case ClientMobile:
		return ClientMobile
	case ClientAPI:
		return ClientAPI
	}

	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "mozilla"):
		return ClientWeb
	case strings.Contains(ua, "okhttp"), strings.Contains(ua, "cfnetwork"), strings.Contains(ua, "dart"):
		return ClientMobile
	default:
		return ClientAPI
	}
}

func IsWebClient(clientType string) bool {
	return clientType == ClientWeb
}
