package iputil

import "net"

// IsCidr determines if the given ip is a cidr range
func IsCidr(ip string) bool {
	_, _, err := net.ParseCIDR(ip)
	return err == nil
}

// IsIP determines if the given string is a valid ip
func IsIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// IsIPPort determines if the given string is an ip followed by a port
func IsIPPort(value string) bool {
	host, port, err := net.SplitHostPort(value)
	if err != nil || port == "" {
		return false
	}
	return IsIP(host)
}

// URLHost returns value in a form usable as the host part of a URL,
// bracketing bare IPv6 addresses
func URLHost(value string) string {
	if ip := net.ParseIP(value); ip != nil && ip.To4() == nil {
		return "[" + value + "]"
	}
	return value
}
