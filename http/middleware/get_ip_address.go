package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/httpd"
)

// UnknownIPAddress stands in for a client whose address cannot be determined.
const UnknownIPAddress = "0.0.0.0"

// IANA defined IPv4 non-public ranges
var privateRanges = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress grabs the client IP address of the *http.Request
// and promotes it to *http.Request.Context under httpd.IpAddrKey.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.Clone(context.WithValue(r.Context(), httpd.IpAddrKey, GetIPAddress(r)))
			h.ServeHTTP(w, r)
		})
	}
}

// GetIPAddress parses "X-Forwarded-For" and "X-Real-Ip" headers for the IP address
// of the client making r, falling back to the remote address of the connection.
//
// GetIPAddress skips header addresses from non-public ranges.
func GetIPAddress(r *http.Request) string {
	for _, h := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		addresses := strings.Split(r.Header.Get(h), ",")
		// march from right to left until we get a public address
		// that will be the address right before our proxy.
		for i := len(addresses) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(addresses[i]))
			if err != nil || !addr.IsGlobalUnicast() || isPrivateSubnet(addr) {
				continue
			}

			return addr.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.String()
	}

	return UnknownIPAddress
}

// isPrivateSubnet checks whether the IP address is in a private subnet.
func isPrivateSubnet(addr netip.Addr) bool {
	if addr.IsPrivate() {
		return true
	}

	for _, r := range privateRanges {
		if r.Contains(addr.Unmap()) {
			return true
		}
	}

	return false
}

// ipAddress reads the address InjectIPAddress stashed for r.
func ipAddress(r *http.Request) string {
	if ip, ok := r.Context().Value(httpd.IpAddrKey).(string); ok {
		return ip
	}

	return GetIPAddress(r)
}
