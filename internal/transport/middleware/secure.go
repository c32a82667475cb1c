package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureHeaders applies the standard security header set. Development
// mode relaxes the checks so plain-HTTP local requests still pass.
func SecureHeaders(isDevelopment bool) func(http.Handler) http.Handler {
	sec := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'self'",
		IsDevelopment:         isDevelopment,
	})
	return sec.Handler
}
