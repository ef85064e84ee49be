package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server Server `yaml:"server"`
}

type Server struct {
	ListenAddr             string `yaml:"listenAddr"`
	PostgresDsn            string `yaml:"postgresDsn"`
	RedisAddr              string `yaml:"redisAddr"`
	RedisPassword          string `yaml:"redisPassword"`
	RedisDB                int    `yaml:"redisDB"`
	MemcachedAddr          string `yaml:"memcachedAddr"`
	EnableTrace            bool   `yaml:"enableTrace"`
	TraceEndpoint          string `yaml:"traceEndpoint"`
	WizardDraftTTLMinutes  int    `yaml:"wizardDraftTTLMinutes"`
	ProfileCacheTTLSeconds int    `yaml:"profileCacheTTLSeconds"`
	SweepIntervalMinutes   int    `yaml:"sweepIntervalMinutes"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	// Deployment secrets come from the environment, not the checked-in yaml.
	if dsn := os.Getenv("SAMITI_POSTGRES_DSN"); dsn != "" {
		config.Server.PostgresDsn = dsn
	}
	if addr := os.Getenv("SAMITI_REDIS_ADDR"); addr != "" {
		config.Server.RedisAddr = addr
	}
	if password := os.Getenv("SAMITI_REDIS_PASSWORD"); password != "" {
		config.Server.RedisPassword = password
	}
	if addr := os.Getenv("SAMITI_MEMCACHED_ADDR"); addr != "" {
		config.Server.MemcachedAddr = addr
	}

	if config.Server.ListenAddr == "" {
		config.Server.ListenAddr = ":8000"
	}
	if config.Server.WizardDraftTTLMinutes <= 0 {
		config.Server.WizardDraftTTLMinutes = 120
	}
	if config.Server.ProfileCacheTTLSeconds <= 0 {
		config.Server.ProfileCacheTTLSeconds = 300
	}
	if config.Server.SweepIntervalMinutes <= 0 {
		config.Server.SweepIntervalMinutes = 60
	}

	return config, nil
}
