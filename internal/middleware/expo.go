package middleware

import "net/http"

const (
	ProtocolVersionHeader = "expo-protocol-version"
	SFVVersionHeader      = "expo-sfv-version"
)

// ExpoHeaders stamps the update protocol headers on every response.
func ExpoHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(ProtocolVersionHeader, "1")
		w.Header().Set(SFVVersionHeader, "0")
		next.ServeHTTP(w, r)
	})
}
