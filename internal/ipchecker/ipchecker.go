// Package ipchecker restricts the presentation server to clients from a
// trusted subnet. The server holds the session token, so by default only
// loopback clients may drive it.
package ipchecker

import (
	"fmt"
	"net"
	"net/http"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/logger"
)

// IPChecker validates that a client address belongs to a trusted subnet.
type IPChecker struct {
	trustedSubnet *net.IPNet
}

// New creates an IPChecker for a subnet in CIDR notation, e.g. "127.0.0.0/8".
// An empty string disables the check: every client is allowed.
func New(trustedSubnet string) (*IPChecker, error) {
	if trustedSubnet == "" {
		return &IPChecker{}, nil
	}
	_, allowedNet, err := net.ParseCIDR(trustedSubnet)
	if err != nil {
		return nil, fmt.Errorf("parsing trusted subnet %q: %w", trustedSubnet, err)
	}

	return &IPChecker{trustedSubnet: allowedNet}, nil
}

// Check reports whether clientIP may use the server.
func (checker *IPChecker) Check(clientIP net.IP) bool {
	if checker.trustedSubnet == nil {
		return true
	}
	return clientIP != nil && checker.trustedSubnet.Contains(clientIP)
}

// ClientIP extracts the peer address of the connection. Forwarding headers
// are ignored: the server is reached directly, never through a proxy.
func ClientIP(request *http.Request) (net.IP, error) {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return nil, fmt.Errorf("splitting remote address %q: %w", request.RemoteAddr, err)
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return nil, fmt.Errorf("remote address %q is not an IP", request.RemoteAddr)
	}

	return ip, nil
}

// Guard is an HTTP middleware answering 403 to clients outside the subnet.
func (checker *IPChecker) Guard(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		ip, err := ClientIP(request)
		if err != nil || !checker.Check(ip) {
			logger.Log.Infoln("rejecting untrusted client", "remote_addr", request.RemoteAddr, "error", err)
			http.Error(response, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		h.ServeHTTP(response, request)
	}

	return http.HandlerFunc(middleware)
}
