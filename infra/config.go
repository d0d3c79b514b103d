package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"bitbucket.org/novatechnologies/spychart/infra/logger"
)

const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

type HttpConfig struct {
	Port int `envconfig:"HTTP_PORT" default:"5000"`
}

type DbConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD" json:"-"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// DSN returns a lib/pq connection string.
func (c DbConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Name, c.User, c.Password, c.SSLMode,
	)
}

type MongoDbConfig struct {
	ConnectionUrl              string `envconfig:"MONGODB_URL" default:"mongodb://localhost:27017" json:"-"`
	DatabaseName               string `envconfig:"MONGODB_NAME" default:"spychart"`
	MinuteCandleCollectionName string `envconfig:"MONGODB_MINUTES_COLLECTION" default:"minutes"`
	TimeOut                    int    `envconfig:"MONGODB_TIMEOUT" default:"10"`
}

type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"postgres"`
}

type ChartConfig struct {
	Symbol    string `envconfig:"CHART_SYMBOL" default:"SPY"`
	BarsLimit int    `envconfig:"CHART_BARS_LIMIT" default:"1000"`
	ServerURL string `envconfig:"CHART_SERVER_URL" default:"http://localhost:5000"`
}

type CentrifugeConfig struct {
	Host  string `envconfig:"CENTRIFUGE_HOST"`
	Token string `envconfig:"CENTRIFUGE_TOKEN" json:"-"`
}

// Enabled reports whether snapshots should be broadcast.
func (c CentrifugeConfig) Enabled() bool {
	return c.Host != ""
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	JSON  bool   `envconfig:"LOG_JSON" default:"false"`
}

type Config struct {
	HttpConfig       HttpConfig
	DbConfig         DbConfig
	MongoDbConfig    MongoDbConfig
	StorageConfig    StorageConfig
	ChartConfig      ChartConfig
	CentrifugeConfig CentrifugeConfig
	LogConfig        LogConfig
}

// Validate checks the settings envconfig can't express with tags.
func (c Config) Validate() error {
	switch c.StorageConfig.Driver {
	case StoragePostgres:
		if c.DbConfig.Name == "" || c.DbConfig.User == "" {
			return errors.New("DB_NAME and DB_USER are required for the postgres driver")
		}
	case StorageMongo:
		if c.MongoDbConfig.ConnectionUrl == "" {
			return errors.New("MONGODB_URL is required for the mongo driver")
		}
	default:
		return errors.Errorf("unknown STORAGE_DRIVER %q", c.StorageConfig.Driver)
	}
	if c.ChartConfig.BarsLimit <= 0 {
		return errors.New("CHART_BARS_LIMIT must be positive")
	}
	return nil
}

// LoadConfig reads the optional dotenv file and then the environment.
func LoadConfig(configPath string) (Config, error) {
	var cfg Config
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := godotenv.Load(configPath); err != nil {
				return cfg, errors.Wrap(err, "can't load "+configPath)
			}
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// SetConfig loads and validates the configuration, panicking on failure.
func SetConfig(configPath string) Config {
	cfg, err := LoadConfig(configPath)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logger.DefaultLogger.WithError(err).Error("failed to load configuration")
		panic(err)
	}
	bs, _ := json.Marshal(cfg)
	logger.DefaultLogger.Debugf("CONFIG: %s", bs)

	return cfg
}

func GetContext() context.Context {
	return logger.WithLogger(context.Background(), logger.DefaultLogger)
}
