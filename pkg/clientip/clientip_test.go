package clientip

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote addr with port", "10.0.0.7:5123", nil, false, "10.0.0.7"},
		{"remote addr without port", "10.0.0.7", nil, false, "10.0.0.7"},
		{"forwarded header ignored when untrusted", "10.0.0.7:5123", map[string]string{"X-Forwarded-For": "203.0.113.9"}, false, "10.0.0.7"},
		{"first forwarded hop when trusted", "10.0.0.7:5123", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, true, "203.0.113.9"},
		{"garbage forwarded falls back to real ip", "10.0.0.7:5123", map[string]string{"X-Forwarded-For": "unknown", "X-Real-IP": "198.51.100.4"}, true, "198.51.100.4"},
		{"no headers when trusted", "[::1]:8080", nil, true, "::1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, RealClientIP(r, tc.trustProxy))
		})
	}
}
