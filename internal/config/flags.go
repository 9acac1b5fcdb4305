package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the client flags from args.
//
// Flags:
//
//	-mode local or remote
//	-a garage server address in format [host]:[port]
//	-request-timeout request timeout (e.g., "15s")
//	-page-size items per page
//	-d storage DSN (SQLite file, .json file or :memory:)
//	-persist-timeout background write timeout (e.g., "5s")
//	-c/-config JSON or YAML config file path
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		serverAddress  NetAddress
		mode           string
		requestTimeout time.Duration
		pageSize       int
		databaseDSN    string
		persistTimeout time.Duration
		configPath     string
	)

	fs := flag.NewFlagSet("garage", flag.ContinueOnError)
	fs.StringVar(&mode, "mode", "", "Application mode: local or remote")
	fs.Var(&serverAddress, "a", "Garage server address host:port")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.IntVar(&pageSize, "page-size", 0, "Items per page")
	fs.StringVar(&databaseDSN, "d", "", "Storage DSN")
	fs.DurationVar(&persistTimeout, "persist-timeout", 0, "Background write timeout (e.g., 5s)")
	fs.StringVar(&configPath, "c", "", "JSON/YAML config file path")
	fs.StringVar(&configPath, "config", "", "JSON/YAML config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{Mode: mode},
		Adapter: Adapter{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			PageSize:       pageSize,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Workers:        Workers{PersistTimeout: persistTimeout},
		ConfigFilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress, or "" when
// nothing is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
