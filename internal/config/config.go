package config

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Драйверы основного хранилища
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverDemo     = "demo"
)

type Config struct {
	Env        string           `yaml:"env" env:"APP_ENV" env-default:"local"` // environment
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Storage    StorageConfig    `yaml:"storage"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Database   DatabaseConfig   `yaml:"database"`
	Delivery   DeliveryConfig   `yaml:"delivery"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Migrations MigrationsConfig `yaml:"migrations"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:3000"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"5s"`
}

// StorageConfig выбор основного хранилища. Если оно недоступно за
// ConnectTimeout, сервер работает в демо-режиме.
type StorageConfig struct {
	Driver         string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongo"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env-default:"5s"`
}

// MongoConfig подключение к MongoDB
type MongoConfig struct {
	URI      string `yaml:"uri" env:"MONGODB_URI" env-default:"mongodb://localhost:27017"`
	Database string `yaml:"database" env:"MONGODB_DATABASE" env-default:"flower_delivery"`
}

// DatabaseConfig структура по работе с Postgres
type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-default:"postgres"`
	Password string `yaml:"-" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env-default:"flower_delivery"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// DeliveryConfig правило стоимости доставки
type DeliveryConfig struct {
	FreeThreshold float64 `yaml:"free_threshold" env-default:"1000"`
	Fee           float64 `yaml:"fee" env-default:"50"`
}

// TelemetryConfig экспорт трейсов; пустой endpoint - трейсы не отправляются
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `yaml:"service_name" env-default:"flower-delivery"`
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

// MustLoad - если не загружаем - паникуем
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s: %v", configPath, err)
	}

	return &cfg
}
