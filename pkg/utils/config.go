package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Payment  PaymentConfig
	Email    EmailConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	FrontURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type AuthConfig struct {
	SessionExpiryHours int
	ResetExpiryMinutes int
}

type PaymentConfig struct {
	BaseURL        string
	SecretKey      string
	Currency       string
	TimeoutSeconds int
}

type EmailConfig struct {
	BaseURL     string
	APIKey      string
	SenderName  string
	SenderEmail string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("RESET_EXPIRY_MINUTES", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("PAYMENT_CURRENCY", "usd")
	viper.SetDefault("PAYMENT_TIMEOUT_SECONDS", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Port:     viper.GetString("PORT"),
			Debug:    viper.GetBool("DEBUG"),
			LogPath:  viper.GetString("LOG_PATH"),
			FrontURL: viper.GetString("FRONT_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Auth: AuthConfig{
			SessionExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
			ResetExpiryMinutes: viper.GetInt("RESET_EXPIRY_MINUTES"),
		},
		Payment: PaymentConfig{
			BaseURL:        viper.GetString("PAYMENT_BASE_URL"),
			SecretKey:      viper.GetString("PAYMENT_SECRET_KEY"),
			Currency:       viper.GetString("PAYMENT_CURRENCY"),
			TimeoutSeconds: viper.GetInt("PAYMENT_TIMEOUT_SECONDS"),
		},
		Email: EmailConfig{
			BaseURL:     viper.GetString("EMAIL_BASE_URL"),
			APIKey:      viper.GetString("EMAIL_API_KEY"),
			SenderName:  viper.GetString("EMAIL_SENDER_NAME"),
			SenderEmail: viper.GetString("EMAIL_SENDER"),
		},
	}

	return config, nil
}
