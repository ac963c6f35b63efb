package middleware

import (
	"slices"

	"github.com/go-chi/cors"
)

// CORSOptions returns CORS options for the update endpoints. A "*" entry
// opens every origin; credentials are only allowed for explicit origins.
func CORSOptions(allowedOrigins []string) cors.Options {
	return cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Content-Type", RequestIDHeader,
			"expo-platform", "expo-runtime-version", "expo-channel-name",
			"expo-protocol-version", "expo-expect-signature",
		},
		ExposedHeaders:   []string{RequestIDHeader, ProtocolVersionHeader, SFVVersionHeader},
		AllowCredentials: !slices.Contains(allowedOrigins, "*"),
		MaxAge:           300,
	}
}
