package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Gemini   Gemini
	Quiz     Quiz
	LogLevel string
}

type Server struct {
	Port    string
	GinMode string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Gemini struct {
	ApiKey         string
	Model          string
	GradingTimeout time.Duration
}

// Quiz holds the knobs of the attempt session layer.
type Quiz struct {
	RandomSampleSize int
	SessionIdleTTL   time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("GRADING_TIMEOUT", "30s")
	viper.SetDefault("QUIZ_RANDOM_SAMPLE_SIZE", 20)
	viper.SetDefault("SESSION_IDLE_TTL", "2h")
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Gemini.ApiKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")
	config.Gemini.GradingTimeout = viper.GetDuration("GRADING_TIMEOUT")

	config.Quiz.RandomSampleSize = viper.GetInt("QUIZ_RANDOM_SAMPLE_SIZE")
	config.Quiz.SessionIdleTTL = viper.GetDuration("SESSION_IDLE_TTL")
	config.LogLevel = viper.GetString("LOG_LEVEL")

	log.Info().
		Str("port", config.Server.Port).
		Str("dbHost", config.Database.Host).
		Str("dbName", config.Database.Name).
		Str("geminiModel", config.Gemini.Model).
		Bool("geminiConfigured", config.Gemini.ApiKey != "").
		Msg("Config loaded")
	return &config, nil
}
