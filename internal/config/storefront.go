package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Хранилища клиентской корзины
const (
	CartSQLite = "sqlite"
	CartRedis  = "redis"
)

// StorefrontConfig настройки консольного клиента магазина. Читаются только
// из переменных окружения STOREFRONT_*.
type StorefrontConfig struct {
	Env      string        `env:"ENV" envDefault:"local"`
	APIURL   string        `env:"API_URL" envDefault:"http://localhost:3000"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"10s"`
	Language string        `env:"LANG" envDefault:"uk"`

	Cart CartConfig `envPrefix:"CART_"`

	FreeThreshold float64 `env:"FREE_DELIVERY_THRESHOLD" envDefault:"1000"`
	DeliveryFee   float64 `env:"DELIVERY_FEE" envDefault:"50"`
}

// CartConfig где хранится корзина: локальный файл sqlite или redis
type CartConfig struct {
	Backend   string `env:"BACKEND" envDefault:"sqlite"`
	Path      string `env:"PATH" envDefault:"flower-cart.db"`
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	ClientID  string `env:"CLIENT_ID" envDefault:"default"`
}

// LoadStorefront читает конфигурацию клиента из окружения
func LoadStorefront() (*StorefrontConfig, error) {
	cfg, err := env.ParseAsWithOptions[StorefrontConfig](env.Options{Prefix: "STOREFRONT_"})
	if err != nil {
		return nil, fmt.Errorf("config.LoadStorefront: %w", err)
	}
	switch cfg.Cart.Backend {
	case CartSQLite, CartRedis:
	default:
		return nil, fmt.Errorf("config.LoadStorefront: unknown cart backend %q", cfg.Cart.Backend)
	}
	return &cfg, nil
}
