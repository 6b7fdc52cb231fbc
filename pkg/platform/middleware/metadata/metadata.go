package metadata

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"lahu/pkg/requestcontext"
)

// ClientMetadata extracts client IP address and User-Agent from the request
// and adds them to the context for use by handlers and services.
// Forwarding headers are honoured only when the direct peer falls inside one
// of trustedProxies. This middleware should be applied early in the chain.
func ClientMetadata(trustedProxies []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIPFromRequest(r, trustedProxies)
			ctx := requestcontext.WithClientMetadata(r.Context(), ip, r.Header.Get("User-Agent"))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseTrustedProxies accepts CIDRs ("10.0.0.0/8") and bare addresses.
func ParseTrustedProxies(raw []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q", s)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// ClientIPFromRequest returns the RemoteAddr host unless the peer is a
// trusted proxy. Behind a trusted proxy, X-Forwarded-For is walked right to
// left and the first untrusted hop wins; X-Real-IP is the fallback.
func ClientIPFromRequest(r *http.Request, trustedProxies []netip.Prefix) string {
	peer := remoteHost(r.RemoteAddr)
	if peer == "" {
		return "unknown"
	}
	if !isTrusted(peer, trustedProxies) {
		return peer
	}

	if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if _, err := netip.ParseAddr(hop); err != nil {
				// a garbled hop cannot be attributed; stop at the last good one
				break
			}
			if !isTrusted(hop, trustedProxies) {
				return hop
			}
			peer = hop
		}
		return peer
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if _, err := netip.ParseAddr(xri); err == nil {
			return xri
		}
	}
	return peer
}

// remoteHost strips the port from "ip:port" or "[::1]:port".
func remoteHost(addr string) string {
	if addr == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func isTrusted(ip string, trustedProxies []netip.Prefix) bool {
	if len(trustedProxies) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trustedProxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
