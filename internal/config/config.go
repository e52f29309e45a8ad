package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	Quiz     QuizConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
}

type DatabaseConfig struct {
	Path string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type QuizConfig struct {
	QuestionCount  int
	MinTextLength  int
	MaxPromptChars int
}

type LoggerConfig struct {
	Level string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.idle_timeout", 30)
	viper.SetDefault("server.body_limit_mb", 20)
	viper.SetDefault("database.path", "docquiz.db")
	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("gemini.timeout", 45)
	viper.SetDefault("quiz.question_count", 5)
	viper.SetDefault("quiz.min_text_length", 50)
	viper.SetDefault("quiz.max_prompt_chars", 15000)
	viper.SetDefault("logger.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional since every key has a default and the
		// credential normally arrives through the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Env: viper.GetString("env"),
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			IdleTimeout:  viper.GetDuration("server.idle_timeout") * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit_mb") * 1024 * 1024,
		},
		Database: DatabaseConfig{
			Path: viper.GetString("database.path"),
		},
		Gemini: GeminiConfig{
			APIKey:  viper.GetString("gemini.api_key"),
			Model:   viper.GetString("gemini.model"),
			Timeout: viper.GetDuration("gemini.timeout") * time.Second,
		},
		Quiz: QuizConfig{
			QuestionCount:  viper.GetInt("quiz.question_count"),
			MinTextLength:  viper.GetInt("quiz.min_text_length"),
			MaxPromptChars: viper.GetInt("quiz.max_prompt_chars"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
		},
	}

	// Override with environment variables if set
	if env := os.Getenv("ENV"); env != "" {
		config.Env = env
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		config.Database.Path = path
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = viper.GetInt("SERVER_PORT")
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}

	return config, nil
}
