package config

import (
	"github.com/hotelmanager/service-rooms/internal/platform/config"
)

// ServiceConfig holds all configuration for the rooms service.
type ServiceConfig struct {
	Port             string
	AppEnv           string
	GuestEmailDomain string
	DBConfig         config.DatabaseConfig
	JWTConfig        config.JWTConfig
	KafkaConfig      config.KafkaConfig
}

// Load reads configuration from environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("ROOMS")
	if err != nil {
		return nil, err
	}

	v.SetDefault("GUEST_EMAIL_DOMAIN", "guests.hotel")

	return &ServiceConfig{
		Port:             config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:           config.GetAppEnv(v),
		GuestEmailDomain: v.GetString("GUEST_EMAIL_DOMAIN"),
		DBConfig:         config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:        config.LoadJWTConfig(v),
		KafkaConfig:      config.LoadKafkaConfig(v),
	}, nil
}
