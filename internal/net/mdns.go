package net

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_treeornament._tcp"

const treeTXTPrefix = "tree="

// Service is a tree found on the local network.
type Service struct {
	Tree string
	Addr string
}

// Advertise announces a hosted tree on the LAN. Call Shutdown on the
// returned server when the host stops.
func Advertise(port int, treeName string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(
		host,
		serviceType,
		"",
		"",
		port,
		nil,
		[]string{treeTXTPrefix + treeName},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[MDNS] Advertising tree %q on port %d", treeName, port)
	return server, nil
}

// Browse looks for advertised trees for the given time.
func Browse(timeout time.Duration) ([]Service, error) {
	entries := make(chan *mdns.ServiceEntry, 16)
	found := make(chan []Service, 1)
	go func() {
		var services []Service
		seen := make(map[string]bool)
		for e := range entries {
			s, ok := serviceFromEntry(e)
			if !ok || seen[s.Addr] {
				continue
			}
			seen[s.Addr] = true
			services = append(services, s)
		}
		found <- services
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	services := <-found
	if err != nil {
		return services, fmt.Errorf("mDNS lookup failed: %w", err)
	}
	return services, nil
}

func serviceFromEntry(e *mdns.ServiceEntry) (Service, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return Service{}, false
	}
	s := Service{Addr: fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port)}
	for _, f := range e.InfoFields {
		if strings.HasPrefix(f, treeTXTPrefix) {
			s.Tree = strings.TrimPrefix(f, treeTXTPrefix)
		}
	}
	if s.Tree == "" {
		s.Tree = e.Host
	}
	return s, true
}
