package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/pelletier/go-toml/v2"
)

// EnvConfigFile names an optional TOML file read before environment overrides
const EnvConfigFile = "CONFIG_FILE"

// Store backends
const (
	StoreMemory = "memory"
	StoreAzure  = "azure"
	StoreRedis  = "redis"
)

// Write modes
const (
	WriteStrict = "strict"
	WriteRepair = "repair"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ProbeTimeout       time.Duration
	MaxRequestBodySize int64
	MaxUploadSize      int64
	StorageHostPattern string
	StoreType          string
	WriteMode          string
	LogLevel           string
	Azure              AzureConfig
	Redis              RedisConfig
}

type AzureConfig struct {
	AccountName string
	AccountKey  string
	Container   string
	// ServiceURL overrides https://<account>.blob.core.windows.net, e.g. for Azurite
	ServiceURL string
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	Namespace string
}

// fileConfig is the TOML layout; every value is a string so that sizes and
// durations share the environment variable syntax.
type fileConfig struct {
	Server struct {
		Host               string `toml:"host"`
		Port               string `toml:"port"`
		RequestTimeout     string `toml:"request_timeout"`
		MaxRequestBodySize string `toml:"max_request_body_size"`
	} `toml:"server"`
	Images struct {
		MaxUploadSize      string `toml:"max_upload_size"`
		StorageHostPattern string `toml:"storage_host_pattern"`
		WriteMode          string `toml:"write_mode"`
		ProbeTimeout       string `toml:"probe_timeout"`
	} `toml:"images"`
	Store struct {
		Type  string `toml:"type"`
		Azure struct {
			Account    string `toml:"account"`
			Key        string `toml:"key"`
			Container  string `toml:"container"`
			ServiceURL string `toml:"service_url"`
		} `toml:"azure"`
		Redis struct {
			Addr      string `toml:"addr"`
			Password  string `toml:"password"`
			DB        string `toml:"db"`
			Namespace string `toml:"namespace"`
		} `toml:"redis"`
	} `toml:"store"`
	Logging struct {
		Level string `toml:"level"`
	} `toml:"logging"`
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// MaxUploadSizeMB expresses MaxUploadSize in the unit used by file validation
func (c *Config) MaxUploadSizeMB() float64 {
	return float64(c.MaxUploadSize) / (1024 * 1024)
}

// Load builds the configuration from defaults, the optional CONFIG_FILE and
// then environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	var file fileConfig
	if path := strings.TrimSpace(os.Getenv(EnvConfigFile)); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return build(&file)
}

// LoadFromEnv ignores CONFIG_FILE and reads only defaults and environment
func LoadFromEnv() (*Config, error) {
	return build(&fileConfig{})
}

func build(file *fileConfig) (*Config, error) {
	cfg := &Config{
		Host:               setting("HOST", file.Server.Host, "0.0.0.0"),
		Port:               setting("PORT", file.Server.Port, "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", file.Server.RequestTimeout, 30*time.Second),
		ProbeTimeout:       parseDurationOrDefault("PROBE_TIMEOUT", file.Images.ProbeTimeout, 15*time.Second),
		StorageHostPattern: setting("STORAGE_HOST_PATTERN", file.Images.StorageHostPattern, ""),
		StoreType:          strings.ToLower(setting("STORE_TYPE", file.Store.Type, StoreMemory)),
		WriteMode:          strings.ToLower(setting("WRITE_MODE", file.Images.WriteMode, WriteStrict)),
		LogLevel:           setting("LOG_LEVEL", file.Logging.Level, "info"),
		Azure: AzureConfig{
			AccountName: setting("AZURE_STORAGE_ACCOUNT", file.Store.Azure.Account, ""),
			AccountKey:  setting("AZURE_STORAGE_KEY", file.Store.Azure.Key, ""),
			Container:   setting("AZURE_STORAGE_CONTAINER", file.Store.Azure.Container, "menu-images"),
			ServiceURL:  setting("AZURE_STORAGE_SERVICE_URL", file.Store.Azure.ServiceURL, ""),
		},
		Redis: RedisConfig{
			Addr:      setting("REDIS_ADDR", file.Store.Redis.Addr, "localhost:6379"),
			Password:  setting("REDIS_PASSWORD", file.Store.Redis.Password, ""),
			DB:        int(parseIntOrDefault("REDIS_DB", file.Store.Redis.DB, 0)),
			Namespace: setting("REDIS_NAMESPACE", file.Store.Redis.Namespace, "circles"),
		},
	}

	var err error
	cfg.MaxRequestBodySize, err = parseSize("MAX_REQUEST_BODY_SIZE", file.Server.MaxRequestBodySize, "1MiB")
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadSize, err = parseSize("MAX_UPLOAD_SIZE", file.Images.MaxUploadSize, "10MiB")
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be > 0 (got %d)", c.MaxUploadSize)
	}
	if c.RequestTimeout <= 0 || c.ProbeTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0 (got request=%s, probe=%s)", c.RequestTimeout, c.ProbeTimeout)
	}

	switch c.WriteMode {
	case WriteStrict, WriteRepair:
	default:
		return fmt.Errorf("invalid WRITE_MODE: %q", c.WriteMode)
	}

	switch c.StoreType {
	case StoreMemory:
	case StoreAzure:
		if c.Azure.AccountName == "" || c.Azure.AccountKey == "" {
			return fmt.Errorf("azure store requires AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY")
		}
		if c.Azure.Container == "" {
			return fmt.Errorf("azure store requires AZURE_STORAGE_CONTAINER")
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis store requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("invalid STORE_TYPE: %q", c.StoreType)
	}
	return nil
}

// setting returns the environment value, else the file value, else the default
func setting(key, fileValue, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	if value := strings.TrimSpace(fileValue); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key, fileValue string, defaultValue time.Duration) time.Duration {
	if value := setting(key, fileValue, ""); value != "" {
		if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key, fileValue string, defaultValue int64) int64 {
	if value := setting(key, fileValue, ""); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// parseSize accepts human sizes such as "10MiB", "512k" or a plain byte count
func parseSize(key, fileValue, defaultValue string) (int64, error) {
	value := setting(key, fileValue, defaultValue)
	size, err := units.RAMInBytes(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return size, nil
}
