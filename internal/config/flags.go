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

// ParseFlags parses all configuration flags from the process arguments.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-storage document store backend (sql|file)
//	-driver database driver (pgx|sqlite3)
//	-d database DSN
//	-f flat-file data directory
//	-u uploads directory
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-max-upload-size multipart body limit in bytes
//	-redis-addr redis address for form events
//	-webhook-url webhook endpoint for form events
func ParseFlags(args []string) (*StructuredConfig, error) {
	return parseFlags(args)
}

func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-form-keeper", flag.ContinueOnError)

	var serverAddress NetAddress
	var storageBackend, dbDriver, databaseDSN string
	var dataDir, uploadsDir string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var maxUploadSize int64
	var redisAddr, webhookURL string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&storageBackend, "storage", "", "Document store backend (sql|file)")
	fs.StringVar(&dbDriver, "driver", "", "Database driver (pgx|sqlite3)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&dataDir, "f", "", "Flat-file data directory")
	fs.StringVar(&uploadsDir, "u", "", "Uploads directory")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Int64Var(&maxUploadSize, "max-upload-size", 0, "Max multipart body size in bytes")
	fs.StringVar(&redisAddr, "redis-addr", "", "Redis address for form events")
	fs.StringVar(&webhookURL, "webhook-url", "", "Webhook URL for form events")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			MaxUploadSize: maxUploadSize,
		},
		Storage: Storage{
			Backend: storageBackend,
			DB: DB{
				Driver: dbDriver,
				DSN:    databaseDSN,
			},
			Files: Files{
				DataDir: dataDir,
			},
			Uploads: Uploads{
				Dir: uploadsDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Notifier: Notifier{
			RedisAddr:  redisAddr,
			WebhookURL: webhookURL,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
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
