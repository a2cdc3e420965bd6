package request

import "strings"

const (
	ClientWeb    = "web"
	ClientMobile = "mobile"
)

// ResolveClientType decides whether tokens ride in cookies (web) or the
// response body (mobile/API). An explicit X-Client-Type header wins;
// otherwise the user agent is sniffed.
func ResolveClientType(headerValue, userAgent string) string {
	switch strings.ToLower(strings.TrimSpace(headerValue)) {
	case ClientWeb:
		return ClientWeb
	case ClientMobile:
		return ClientMobile
	}

	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "mozilla") || strings.Contains(ua, "chrome") || strings.Contains(ua, "safari") {
		return ClientWeb
	}
	return ClientMobile
}

func IsWebClient(clientType string) bool {
	return clientType == ClientWeb
}
