// Package netx resolves local network identity for system info snapshots.
package netx

import (
	"net"
)

// OutboundIP returns the preferred outbound IPv4 address of the host.
// It opens a UDP socket towards a public address; no packets are sent,
// the kernel just picks the route and source address. Falls back to
// 127.0.0.1 when the host has no route.
func OutboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "127.0.0.1"
	}
	return addr.IP.String()
}

// PrimaryMAC returns the hardware address of the first non-loopback
// interface that is up, or the empty string when none qualifies.
func PrimaryMAC() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if len(iface.HardwareAddr) == 0 {
			continue
		}
		return iface.HardwareAddr.String()
	}
	return ""
}
