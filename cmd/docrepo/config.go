package main

import (
	"github.com/urfave/cli/v2"

	"docrepo/internal/config"
)

// settings is what the global flags fill in before a command runs.
type settings struct {
	Storage  config.StorageConfig
	MinIO    config.MinIOConfig
	LogLevel string
}

// settingsFlags has the cli.Flags for settings. Defaults mirror the server's env config.
func settingsFlags(s *settings, defaults *config.AppConfig) []cli.Flag {
	return []cli.Flag{
		// Storage

		&cli.StringFlag{
			Name:        "driver",
			Usage:       "storage driver (local, minio)",
			EnvVars:     []string{"STORAGE_DRIVER"},
			Value:       defaults.Storage.Driver,
			Destination: &s.Storage.Driver,
		},
		&cli.StringFlag{
			Name:        "root",
			Usage:       "storage root directory for the local driver",
			EnvVars:     []string{"STORAGE_ROOT"},
			Value:       defaults.Storage.Root,
			Destination: &s.Storage.Root,
		},

		// MinIO

		&cli.StringFlag{
			Name:        "minio-endpoint",
			Usage:       "minio endpoint (host:port)",
			EnvVars:     []string{"MINIO_ENDPOINT"},
			Value:       defaults.MinIO.Endpoint,
			Destination: &s.MinIO.Endpoint,
		},
		&cli.StringFlag{
			Name:        "minio-access-key",
			Usage:       "minio access key",
			EnvVars:     []string{"MINIO_ACCESS_KEY"},
			Destination: &s.MinIO.AccessKey,
		},
		&cli.StringFlag{
			Name:        "minio-secret-key",
			Usage:       "minio secret key",
			EnvVars:     []string{"MINIO_SECRET_KEY"},
			Destination: &s.MinIO.SecretKey,
		},
		&cli.StringFlag{
			Name:        "minio-bucket",
			Usage:       "minio bucket",
			EnvVars:     []string{"MINIO_BUCKET"},
			Value:       defaults.MinIO.Bucket,
			Destination: &s.MinIO.Bucket,
		},
		&cli.BoolFlag{
			Name:        "minio-use-ssl",
			Usage:       "use https for minio",
			EnvVars:     []string{"MINIO_USE_SSL"},
			Value:       defaults.MinIO.UseSSL,
			Destination: &s.MinIO.UseSSL,
		},

		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level",
			EnvVars:     []string{"LOG_LEVEL"},
			Value:       "warn",
			Destination: &s.LogLevel,
		},
	}
}

func folderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "section",
			Aliases:  []string{"s"},
			Usage:    "section identifier",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "type",
			Aliases:  []string{"t"},
			Usage:    "incoming or outgoing",
			Required: true,
		},
	}
}
