// Package config loads pagecore configuration from YAML files and
// PAGECORE_-prefixed environment variables, with optional hot reload of
// the config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/pagekit/pagecore/logging"
)

// Defaults applied when the file or environment leaves a value unset.
const (
	DefaultCapacity = 20
	DefaultPrefetch = 1
)

var (
	config *Config
	path   string
	once   sync.Once
	mu     sync.Mutex
	v      *viper.Viper
)

func init() {
	v = viper.New()
}

// Snapshot configures snapshot persistence.
type Snapshot struct {
	Path     string
	RedisKey string
	Redis    *Redis
}

// Redis holds connection settings for the redis snapshot store.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Config represents the configuration implementation.
type Config struct {
	AppName  string
	RunMode  string
	Capacity int
	Prefetch int
	Logger   *logging.Config
	Snapshot *Snapshot
	Viper    *viper.Viper
}

// Init initializes and loads the configuration from configPath.
func Init(configPath string) (cfg *Config, err error) {
	once.Do(func() {
		path = configPath
		cfg, err = loadConfiguration()
	})
	return cfg, err
}

// GetConfig returns the loaded configuration, loading it if needed.
func GetConfig() (*Config, error) {
	if config == nil {
		var err error
		config, err = loadConfiguration()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize config: %w", err)
		}
	}
	return config, nil
}

func loadConfiguration() (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	config = cfg
	return cfg, nil
}

// LoadConfig loads the configuration from the file. An empty path searches
// the usual locations; a missing file is tolerated and yields defaults.
func LoadConfig(configPath string) (*Config, error) {
	nv := viper.New()
	setDefaults(nv)
	nv.SetEnvPrefix("PAGECORE")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		ex, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		nv.SetConfigName("pagecore")
		nv.AddConfigPath("/etc/pagecore")
		nv.AddConfigPath("$HOME/.pagecore")
		nv.AddConfigPath(".")
		nv.AddConfigPath(filepath.Dir(ex))
	}

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		AppName:  nv.GetString("app_name"),
		RunMode:  nv.GetString("run_mode"),
		Capacity: nv.GetInt("paging.capacity"),
		Prefetch: nv.GetInt("paging.prefetch"),
		Logger:   getLoggerConfig(nv),
		Snapshot: getSnapshotConfig(nv),
		Viper:    nv,
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Prefetch < 0 {
		cfg.Prefetch = DefaultPrefetch
	}

	v = nv
	return cfg, nil
}

// Reload reloads the configuration from the file.
func Reload() error {
	mu.Lock()
	defer mu.Unlock()

	newConfig, err := LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	config = newConfig
	return nil
}

// Watch watches the configuration file and reloads it when it changes.
func Watch(callback func(*Config)) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		if err := Reload(); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
			return
		}
		callback(config)
	})
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "pagecore")
	v.SetDefault("run_mode", "release")
	v.SetDefault("paging.capacity", DefaultCapacity)
	v.SetDefault("paging.prefetch", DefaultPrefetch)
	v.SetDefault("logger.level", 4) // logrus info
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stderr")
}

func getLoggerConfig(v *viper.Viper) *logging.Config {
	return &logging.Config{
		Level:      v.GetInt("logger.level"),
		Format:     v.GetString("logger.format"),
		Output:     v.GetString("logger.output"),
		OutputFile: v.GetString("logger.output_file"),
	}
}

func getSnapshotConfig(v *viper.Viper) *Snapshot {
	s := &Snapshot{
		Path:     v.GetString("snapshot.path"),
		RedisKey: v.GetString("snapshot.redis_key"),
	}
	if addr := v.GetString("snapshot.redis.addr"); addr != "" {
		s.Redis = &Redis{
			Addr:     addr,
			Password: v.GetString("snapshot.redis.password"),
			DB:       v.GetInt("snapshot.redis.db"),
		}
	}
	return s
}
