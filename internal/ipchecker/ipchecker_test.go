package ipchecker

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New("not-a-cidr")
	assert.Error(t, err)

	checker, err := New("")
	require.NoError(t, err)
	assert.True(t, checker.Check(net.ParseIP("203.0.113.7")))
}

func TestCheck(t *testing.T) {
	checker, err := New("127.0.0.0/8")
	require.NoError(t, err)

	assert.True(t, checker.Check(net.ParseIP("127.0.0.1")))
	assert.True(t, checker.Check(net.ParseIP("127.10.0.3")))
	assert.False(t, checker.Check(net.ParseIP("192.168.0.10")))
	assert.False(t, checker.Check(nil))
}

func TestGuard(t *testing.T) {
	checker, err := New("127.0.0.0/8")
	require.NoError(t, err)
	handler := checker.Guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		wantStatus int
	}{
		{name: "loopback", remoteAddr: "127.0.0.1:52100", wantStatus: http.StatusNoContent},
		{name: "outside the subnet", remoteAddr: "10.1.2.3:52100", wantStatus: http.StatusForbidden},
		{name: "spoofed forwarding header", remoteAddr: "10.1.2.3:52100", forwarded: "127.0.0.1", wantStatus: http.StatusForbidden},
		{name: "garbage remote address", remoteAddr: "nonsense", wantStatus: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
				req.Header.Set("X-Real-IP", tt.forwarded)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
