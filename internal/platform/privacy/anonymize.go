// Package privacy masks personal data before it reaches logs.
package privacy

import "net/netip"

const (
	ipv4Prefix = 24
	ipv6Prefix = 48
)

// AnonymizeIP keeps the network part of an address: a /24 for IPv4
// (including IPv4-mapped IPv6) and a /48 for IPv6. Empty input yields
// "unknown" and anything unparseable yields "invalid".
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "invalid"
	}
	addr = addr.Unmap().WithZone("")
	bits := ipv6Prefix
	if addr.Is4() {
		bits = ipv4Prefix
	}
	prefix, err := addr.Prefix(bits)
	if err != nil {
		return "invalid"
	}
	return prefix.Addr().String()
}

// LogAttrs returns the masked client address as slog key-value pairs.
func LogAttrs(ip string) []any {
	return []any{"client_ip", AnonymizeIP(ip)}
}
