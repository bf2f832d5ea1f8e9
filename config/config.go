package config

import (
	"errors"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Weather WeatherConfig
	Session SessionConfig
	Booking BookingConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type WeatherConfig struct {
	BaseURL     string
	APIKey      string
	DefaultCity string
	Timeout     time.Duration
}

type SessionConfig struct {
	TTL time.Duration
}

type BookingConfig struct {
	// TokenFee is the partial upfront payment confirming intent to attend.
	TokenFee decimal.Decimal
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Environment variables alone are fine in containers.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	weatherTimeout, err := time.ParseDuration(viper.GetString("WEATHER_TIMEOUT"))
	if err != nil {
		weatherTimeout = 5 * time.Second
	}

	sessionTTL, err := time.ParseDuration(viper.GetString("SESSION_TTL"))
	if err != nil {
		sessionTTL = 30 * time.Minute
	}

	tokenFee, err := decimal.NewFromString(viper.GetString("BOOKING_TOKEN_FEE"))
	if err != nil {
		tokenFee = decimal.NewFromInt(20)
	}

	defaultCity := viper.GetString("WEATHER_DEFAULT_CITY")
	if defaultCity == "" {
		defaultCity = "Mumbai"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Weather: WeatherConfig{
			BaseURL:     viper.GetString("WEATHER_API_URL"),
			APIKey:      viper.GetString("WEATHER_API_KEY"),
			DefaultCity: defaultCity,
			Timeout:     weatherTimeout,
		},
		Session: SessionConfig{
			TTL: sessionTTL,
		},
		Booking: BookingConfig{
			TokenFee: tokenFee,
		},
	}

	return config, nil
}
