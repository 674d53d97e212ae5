package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server holds API server settings, read from the environment.
type Server struct {
	Port      string `env:"API_PORT"   envDefault:"8080"`
	Env       string `env:"API_ENV"    envDefault:"development"`
	StaticDir string `env:"STATIC_DIR" envDefault:"./web/dist"`

	PoolPath         string        `env:"POOL_PATH"         envDefault:"castle-solutions.csv"`
	PoolFormat       string        `env:"POOL_FORMAT"`
	PoolTotal        int           `env:"POOL_TOTAL"        envDefault:"100"`
	PoolBattlefields int           `env:"POOL_BATTLEFIELDS" envDefault:"10"`
	PoolCacheTTL     time.Duration `env:"POOL_CACHE_TTL"    envDefault:"1h"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// MaxWork caps n*m*candidates for a single request.
	MaxWork int64 `env:"MAX_WORK" envDefault:"50000000"`
}

func (s Server) Production() bool { return s.Env == "production" }

// LoadServer parses Server from the environment.
func LoadServer() (*Server, error) {
	var s Server
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if s.MaxWork <= 0 {
		return nil, fmt.Errorf("MAX_WORK must be > 0")
	}
	return &s, nil
}
