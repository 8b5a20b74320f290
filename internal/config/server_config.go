package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// ModuleName is the service identifier used in logs, metrics and the CLI.
const ModuleName = "go-signer"

// EchoServer holds the HTTP listener settings.
type EchoServer struct {
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	GracePeriod                    time.Duration
}

// LoggerServer holds zerolog settings.
type LoggerServer struct {
	Level              zerolog.Level
	PrettyPrintConsole bool
}

// KeystoreServer holds the encrypted key directory settings.
type KeystoreServer struct {
	Dir string
}

// ManagementServer guards the /-/ management endpoints.
type ManagementServer struct {
	Secret string
}

// Server is the full service configuration.
type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Keystore   KeystoreServer
	Management ManagementServer
}

// DefaultServiceConfigFromEnv returns the service config, every setting
// overridable through SIGNER_* environment variables.
func DefaultServiceConfigFromEnv() Server {
	v := viper.New()
	v.SetEnvPrefix("SIGNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.listen_address", ":8080")
	v.SetDefault("server.hide_internal_server_error_details", true)
	v.SetDefault("server.grace_period", 30*time.Second)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.pretty_print_console", false)
	v.SetDefault("keystore.dir", defaultKeystoreDir())
	v.SetDefault("management.secret", "")

	level, err := zerolog.ParseLevel(v.GetString("logger.level"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	return Server{
		Echo: EchoServer{
			ListenAddress:                  v.GetString("server.listen_address"),
			HideInternalServerErrorDetails: v.GetBool("server.hide_internal_server_error_details"),
			GracePeriod:                    v.GetDuration("server.grace_period"),
		},
		Logger: LoggerServer{
			Level:              level,
			PrettyPrintConsole: v.GetBool("logger.pretty_print_console"),
		},
		Keystore: KeystoreServer{
			Dir: v.GetString("keystore.dir"),
		},
		Management: ManagementServer{
			Secret: v.GetString("management.secret"),
		},
	}
}

func defaultKeystoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".keystore"
	}
	return filepath.Join(home, "."+ModuleName, "keystore")
}
