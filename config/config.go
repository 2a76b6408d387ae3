package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	Pagination PaginationConfig `yaml:"pagination"`
	Events     EventsConfig     `yaml:"events"`

	// Values below come from the environment, not config.yaml.
	MongoURI              string `yaml:"-"`
	MongoDBName           string `yaml:"-"`
	JWTSecret             string `yaml:"-"`
	IdentityWebhookSecret string `yaml:"-"`
	MediaPrivateKey       string `yaml:"-"`
	MediaPublicKey        string `yaml:"-"`
	MediaURLEndpoint      string `yaml:"-"`
	KafkaBrokers          string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// PaginationConfig bounds list queries. DefaultLimit is used when the caller
// omits limit; MaxLimit is a hard cap regardless of what the caller asks for.
type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// EventsConfig controls lifecycle event publishing. When Enabled is false the
// service runs without a Kafka connection.
type EventsConfig struct {
	Enabled bool `yaml:"enabled"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	c.MongoURI = os.Getenv("MONGO_URI")
	c.MongoDBName = os.Getenv("MONGO_DB_NAME")
	c.JWTSecret = os.Getenv("JWT_SECRET")
	c.IdentityWebhookSecret = os.Getenv("IDENTITY_WEBHOOK_SECRET")
	c.MediaPrivateKey = os.Getenv("MEDIA_PRIVATE_KEY")
	c.MediaPublicKey = os.Getenv("MEDIA_PUBLIC_KEY")
	c.MediaURLEndpoint = os.Getenv("MEDIA_URL_ENDPOINT")
	c.KafkaBrokers = os.Getenv("KAFKA_BROKERS")

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Pagination.DefaultLimit <= 0 {
		c.Pagination.DefaultLimit = 10
	}
	if c.Pagination.MaxLimit <= 0 {
		c.Pagination.MaxLimit = 100
	}

	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
