package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Order    OrderConfig
	Freight  FreightConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	Sync            bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type OrderConfig struct {
	ProductServiceURL string
	FreightServiceURL string
	OriginZipcode     string
	StockCallTimeout  time.Duration
}

type FreightConfig struct {
	BasePrice   float64
	VariableMax float64
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 3001)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "vitrine")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "vitrine")
	viper.SetDefault("DB_SYNC", false)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PRODUCT_SERVICE_URL", "http://localhost:3001")
	viper.SetDefault("FREIGHT_SERVICE_URL", "http://localhost:3005")
	viper.SetDefault("ORIGIN_ZIPCODE", "01000-000")
	viper.SetDefault("STOCK_CALL_TIMEOUT", "5s")
	viper.SetDefault("FREIGHT_BASE_PRICE", 10.0)
	viper.SetDefault("FREIGHT_VARIABLE_MAX", 10.0)

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	stockCallTimeout, err := time.ParseDuration(viper.GetString("STOCK_CALL_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			Sync:            viper.GetBool("DB_SYNC"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Order: OrderConfig{
			ProductServiceURL: viper.GetString("PRODUCT_SERVICE_URL"),
			FreightServiceURL: viper.GetString("FREIGHT_SERVICE_URL"),
			OriginZipcode:     viper.GetString("ORIGIN_ZIPCODE"),
			StockCallTimeout:  stockCallTimeout,
		},
		Freight: FreightConfig{
			BasePrice:   viper.GetFloat64("FREIGHT_BASE_PRICE"),
			VariableMax: viper.GetFloat64("FREIGHT_VARIABLE_MAX"),
		},
	}

	return cfg, nil
}
