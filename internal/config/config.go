package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type MaterialsConfig struct {
	Env          string `yaml:"env"`
	HTTPServer   `yaml:"http_server"`
	MaterialsDB  `yaml:"materials_db"`
	LogConfig    `yaml:"log_config"`
	Daraja       `yaml:"daraja"`
	KafkaService `yaml:"kafka-service"`
	Storage      `yaml:"storage"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type MaterialsDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

// Daraja holds the M-Pesa gateway settings. Credentials come from the
// environment only; the gateway client refuses to start on blank or
// placeholder values.
type Daraja struct {
	Environment    string `yaml:"environment" env-default:"sandbox"`
	ConsumerKey    string `env:"DARAJA_CONSUMER_KEY"`
	ConsumerSecret string `env:"DARAJA_CONSUMER_SECRET"`
	ShortCode      string `env:"DARAJA_SHORT_CODE"`
	Passkey        string `env:"DARAJA_PASSKEY"`
	CallbackURL    string `yaml:"callback_url"`
	CallbackSecret string `env:"DARAJA_CALLBACK_SECRET"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"payment-events"`
}

type Storage struct {
	Region string `yaml:"region"`
	Bucket string `yaml:"bucket"`
}

func MustLoad() *MaterialsConfig {

	// Processing env config variable and file
	configPath := os.Getenv("MATERIALS_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("MATERIALS_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg MaterialsConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
