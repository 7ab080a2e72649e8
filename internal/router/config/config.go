package config

import "github.com/spf13/viper"

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress   string `mapstructure:"SERVER_ADDRESS"`
	DataAPIURL      string `mapstructure:"DATA_API_URL"`
	DataAPIToken    string `mapstructure:"DATA_API_TOKEN"`
	ContentPath     string `mapstructure:"CONTENT_PATH"`
	SessionSecret   string `mapstructure:"SESSION_SECRET"`
	LoginURL        string `mapstructure:"LOGIN_URL"`
	BaseURL         string `mapstructure:"BASE_URL"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	LogFormat       string `mapstructure:"LOG_FORMAT"`
	AWSRegion       string `mapstructure:"AWS_REGION"`
	InviteEmailFrom string `mapstructure:"INVITE_EMAIL_FROM"`
}

// LoadConfig загружает конфигурацию из файла
func LoadConfig(path string) (cfg Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}
	err = viper.Unmarshal(&cfg)
	return
}
