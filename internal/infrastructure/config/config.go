package config

import (
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"github.com/polancolabs/growthlab/internal/util"
)

// Database holds libsql database configuration. When no path is given the
// database lives in the XDG data directory.
type Database struct {
	Path string `envconfig:"GROWTHLAB_DB_PATH"`
}

// Realtime holds Redis pub/sub configuration. An empty address disables
// realtime notifications; everything still works, just without live refresh.
type Realtime struct {
	RedisAddr     string `envconfig:"GROWTHLAB_REDIS_ADDR"`
	RedisPassword string `envconfig:"GROWTHLAB_REDIS_PASSWORD"`
	Workspace     string `envconfig:"GROWTHLAB_WORKSPACE" default:"default"`
}

// Server holds configuration for the web dashboard.
type Server struct {
	Database Database
	Realtime Realtime
	Addr     string `envconfig:"GROWTHLAB_ADDR" default:":8321"`
}

// LoadServer loads server configuration from environment variables. A
// single pass suffices: envconfig walks the nested structs.
func LoadServer() (*Server, error) {
	var cfg Server
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDBPath returns the configured database path, defaulting to
// growthlab.db under the XDG data directory.
func (d Database) ResolveDBPath() (string, error) {
	if d.Path != "" {
		return d.Path, nil
	}
	dir, err := util.GetXDGDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "growthlab.db"), nil
}
