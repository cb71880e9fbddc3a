package metadata

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jurify/pkg/requestcontext"
)

func TestClientIPFromRequest(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.50"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		trusted []netip.Prefix
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded header ignored without trusted proxies", nil, map[string]string{"X-Forwarded-For": "198.51.100.1"}, "203.0.113.7:4000", "203.0.113.7"},
		{"forwarded header ignored from untrusted peer", proxies, map[string]string{"X-Forwarded-For": "198.51.100.1"}, "203.0.113.7:4000", "203.0.113.7"},
		{"real ip ignored from untrusted peer", proxies, map[string]string{"X-Real-IP": "198.51.100.4"}, "203.0.113.7:4000", "203.0.113.7"},
		{"trusted peer forwards the client", proxies, map[string]string{"X-Forwarded-For": "203.0.113.7"}, "10.0.0.2:1234", "203.0.113.7"},
		{"trusted hops are skipped right to left", proxies, map[string]string{"X-Forwarded-For": "198.51.100.9, 203.0.113.7, 10.1.1.1"}, "192.0.2.50:80", "203.0.113.7"},
		{"all hops trusted keeps the leftmost", proxies, map[string]string{"X-Forwarded-For": "10.9.9.9, 10.1.1.1"}, "10.0.0.2:1234", "10.9.9.9"},
		{"trusted peer real ip header", proxies, map[string]string{"X-Real-IP": " 198.51.100.4 "}, "10.0.0.2:1234", "198.51.100.4"},
		{"trusted peer without headers", proxies, nil, "10.0.0.2:1234", "10.0.0.2"},
		{"ipv4 remote addr", nil, nil, "192.0.2.1:5555", "192.0.2.1"},
		{"ipv6 remote addr", nil, nil, "[::1]:5555", "::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIPFromRequest(r, tt.trusted))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	got, err := ParseTrustedProxies([]string{" 10.0.0.0/8 ", "", "2001:db8::1", "172.16.5.4/12"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "10.0.0.0/8", got[0].String())
	assert.Equal(t, "2001:db8::1/128", got[1].String())
	assert.Equal(t, "172.16.0.0/12", got[2].String())

	_, err = ParseTrustedProxies([]string{"not-an-ip"})
	assert.Error(t, err)
	_, err = ParseTrustedProxies([]string{"10.0.0.0/99"})
	assert.Error(t, err)
}

func TestClientMetadataMiddleware(t *testing.T) {
	var gotIP, gotUA string
	h := ClientMetadata()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIP = requestcontext.ClientIP(r.Context())
		gotUA = requestcontext.UserAgent(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.9:80"
	r.Header.Set("User-Agent", "jurify-test")
	r.Header.Set("X-Forwarded-For", "198.51.100.1")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "192.0.2.9", gotIP)
	assert.Equal(t, "jurify-test", gotUA)
}
