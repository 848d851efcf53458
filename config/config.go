package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	API  APIConfig  `mapstructure:"api"`
	Game GameConfig `mapstructure:"game"`
	Tts  TtsConfig  `mapstructure:"tts"`
	Web  WebConfig  `mapstructure:"web"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

type GameConfig struct {
	Attempts        int `mapstructure:"attempts"`
	LoadStepMillis  int `mapstructure:"load_step_millis"`
	HighlightMillis int `mapstructure:"highlight_millis"`
}

type TtsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Voice   string `mapstructure:"voice"`
}

type WebConfig struct {
	Addr   string `mapstructure:"addr"`
	Static string `mapstructure:"static"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set defaults
	viper.SetDefault("api.base_url", "https://informes.educacionweb.es")
	viper.SetDefault("api.timeout", 50)

	viper.SetDefault("game.attempts", 5)
	viper.SetDefault("game.load_step_millis", 2500)
	viper.SetDefault("game.highlight_millis", 5000)

	viper.SetDefault("tts.enabled", false)
	viper.SetDefault("tts.voice", "")

	viper.SetDefault("web.addr", ":3000")
	viper.SetDefault("web.static", "./static")

	// Allow environment variables
	viper.SetEnvPrefix("EXPEDIENTE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found, use defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
