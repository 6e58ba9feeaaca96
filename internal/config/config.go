package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Server Server
	Lookup Lookup
}

type Server struct {
	Host        string        `env:"host" env-default:"localhost"`
	Port        string        `env:"port" env-default:"8080"`
	Timeout     time.Duration `env:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `env:"idle_timeout" env-default:"30s"`
}

// Lookup configures the external threat-intelligence service. The API key is
// sourced from the environment or the env file, never from source.
type Lookup struct {
	Endpoint      string        `env:"lookup_endpoint" env-default:"https://safebrowsing.googleapis.com/v4/threatMatches:find"`
	APIKey        string        `env:"lookup_api_key"`
	ClientID      string        `env:"lookup_client_id" env-default:"urlguard"`
	ClientVersion string        `env:"lookup_client_version" env-default:"1.0.0"`
	Timeout       time.Duration `env:"lookup_timeout" env-default:"10s"`
}

const configPath = "config/local.env"

func MustLoad() *Config {
	var cfg Config

	if _, err := os.Stat(configPath); err == nil {
		if err := godotenv.Load(configPath); err != nil {
			log.Fatalf("cannot load env file: %s", err)
		}

		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatal("failed to read config: " + err.Error())
		}

		return &cfg
	}

	// No env file: read the process environment only.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatal("failed to read config: " + err.Error())
	}

	return &cfg
}
