package server

import (
	"fmt"
	"log"
	"net"
	"strconv"

	"github.com/libp2p/zeroconf/v2"
)

const (
	mdnsInstance = "Virtual Input"
	mdnsService  = "_http._tcp"
	mdnsDomain   = "local."
)

// Advertise announces the HTTP listener on the local network. The returned
// function withdraws the announcement.
func Advertise(addr string) (func(), error) {
	port, err := listenPort(addr)
	if err != nil {
		return nil, err
	}

	mdns, err := zeroconf.Register(mdnsInstance, mdnsService, mdnsDomain, port, []string{"path=/"}, nil)
	if err != nil {
		return nil, fmt.Errorf("mdns register: %w", err)
	}
	log.Printf("Advertising %s on port %d via mDNS", mdnsService, port)
	return mdns.Shutdown, nil
}

func listenPort(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(p)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("listen address %q has no usable port", addr)
	}
	return port, nil
}
