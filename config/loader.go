package config

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/victoralfred/gowritter/safepath"
	"gopkg.in/yaml.v3"
)

// Loader loads configuration from a YAML file. Loading an unchanged file
// returns the previously parsed configuration.
type Loader struct {
	path     string
	safePath *safepath.SafePath
	mu       sync.RWMutex
	config   *Config
	lastHash []byte
	lastLoad time.Time
}

// NewLoader creates a configuration loader. basePath is the directory
// containing the file; configFile is the name relative to basePath.
func NewLoader(basePath, configFile string) (*Loader, error) {
	sp, err := safepath.New(basePath)
	if err != nil {
		return nil, fmt.Errorf("creating safe path: %w", err)
	}
	return &Loader{
		path:     configFile,
		safePath: sp,
	}, nil
}

// Load reads and parses the configuration file. Unset fields fall back
// to defaults.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.safePath.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	hash := sha256.Sum256(data)
	if l.config != nil && string(hash[:]) == string(l.lastHash) {
		return l.config, nil
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	l.config = &cfg
	l.lastHash = hash[:]
	l.lastLoad = time.Now()

	return l.config, nil
}

// Get returns the current configuration without reloading, or nil when
// nothing has been loaded yet.
func (l *Loader) Get() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

// LastLoad returns the time the configuration was last parsed, or the
// zero time when nothing has been loaded yet. Cache hits in Load do not
// advance it.
func (l *Loader) LastLoad() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastLoad
}
