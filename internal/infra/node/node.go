package node

import (
	"net"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Info identifies this server process in health checks and telemetry
type Info struct {
	ID         string `json:"id"`
	Hostname   string `json:"hostname"`
	IPAddress  string `json:"ip_address"`
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
}

// Set at build time through -ldflags.
var Version = "development"
var CommitHash = "unknown"

var (
	info     Info
	infoOnce sync.Once
)

func GetInfo() Info {
	infoOnce.Do(func() {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		info = Info{
			ID:         uuid.NewString(),
			Hostname:   hostname,
			IPAddress:  localIPAddress(),
			Version:    Version,
			CommitHash: CommitHash,
		}
	})
	return info
}

func localIPAddress() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip := ipNet.IP.To4(); ip != nil {
			return ip.String()
		}
	}
	return "127.0.0.1"
}
