package net

import (
	"fmt"
	"log"
	"net"
)

// URLScheme prefixes share links that open a tree in the app.
const URLScheme = "treeornament://"

// OutgoingIP finds the local address other machines on the LAN can reach
// this host on.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet; pick an interface address instead.
		return firstIPv4().String()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// ShareLink returns the link clients use to join the tree.
func ShareLink(ip string, port int) string {
	return fmt.Sprintf("%s%s", URLScheme, net.JoinHostPort(ip, fmt.Sprint(port)))
}

// ParseShareLink extracts host:port from a share link.
func ParseShareLink(link string) (string, error) {
	if len(link) <= len(URLScheme) || link[:len(URLScheme)] != URLScheme {
		return "", fmt.Errorf("not a tree link: %q", link)
	}
	addr := link[len(URLScheme):]
	for len(addr) > 0 && addr[len(addr)-1] == '/' {
		addr = addr[:len(addr)-1]
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", fmt.Errorf("bad tree link %q: %w", link, err)
	}
	return addr, nil
}

func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	log.Println("No suitable local IP found, link generation may fail.")
	return net.IPv4(127, 0, 0, 1)
}
