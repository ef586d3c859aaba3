package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type EmailConfig struct {
	APIKey  string `mapstructure:"api_key"`
	From    string `mapstructure:"from"`
	BaseURL string `mapstructure:"base_url"`
}

type SMSConfig struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	FromNumber string `mapstructure:"from_number"`
	BaseURL    string `mapstructure:"base_url"`
}

type IdentityConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ServiceKey string `mapstructure:"service_key"`
}

type MonitorConfig struct {
	Source          string        `mapstructure:"source"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	LivePatientID   string        `mapstructure:"live_patient_id"`
}

type MQTTConfig struct {
	BrokerURL string `mapstructure:"broker_url"`
	Topic     string `mapstructure:"topic"`
	ClientID  string `mapstructure:"client_id"`
}

type Config struct {
	DatabaseURL        string         `mapstructure:"database_url"`
	ServerPort         string         `mapstructure:"server_port"`
	ServiceTokenSecret string         `mapstructure:"service_token_secret"`
	Email              EmailConfig    `mapstructure:"email"`
	SMS                SMSConfig      `mapstructure:"sms"`
	Identity           IdentityConfig `mapstructure:"identity"`
	Monitor            MonitorConfig  `mapstructure:"monitor"`
	MQTT               MQTTConfig     `mapstructure:"mqtt"`
}

// Load reads configuration from an optional YAML file with environment
// overrides (VITALSYNC_ prefix). Provider secrets may be absent; their
// channels degrade to a recorded skip rather than failing boot.
func Load() *Config {
	v := viper.New()

	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("vitalsync")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Error reading config file: %v", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("Error unmarshalling config: %v", err)
	}

	if config.DatabaseURL == "" {
		config.DatabaseURL = v.GetString("database_url")
	}
	if config.DatabaseURL == "" {
		log.Fatal("database_url must be set in the config file or environment")
	}

	// Fallback defaults
	if config.ServerPort == "" {
		config.ServerPort = "8080"
	}
	if config.Email.BaseURL == "" {
		config.Email.BaseURL = "https://api.resend.com"
	}
	if config.Email.From == "" {
		config.Email.From = "VitalSync Alerts <alerts@vitalsync.dev>"
	}
	if config.SMS.BaseURL == "" {
		config.SMS.BaseURL = "https://api.twilio.com"
	}
	if config.Monitor.Source == "" {
		config.Monitor.Source = "simulator"
	}
	if config.Monitor.RefreshInterval <= 0 {
		config.Monitor.RefreshInterval = 3 * time.Second
	}
	if config.Monitor.LivePatientID == "" {
		config.Monitor.LivePatientID = "P-001"
	}
	if config.MQTT.Topic == "" {
		config.MQTT.Topic = "vitalsync/vitals/#"
	}
	if config.MQTT.ClientID == "" {
		config.MQTT.ClientID = "vitalsync-api"
	}

	return &config
}
