package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host                      string
		Port                      int
		DebugHost                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	StorageConfig struct {
		// Backend is one of "memory", "file" or "postgres".
		Backend string
		// Dir is the data directory of the "file" backend.
		Dir string
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		Host          string
		Port          int
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	TutorConfig struct {
		// APIKey authenticates against the text-generation service.
		// Its absence surfaces as the chat failure path, never as a crash.
		APIKey  string
		Model   string
		BaseURL string
	}

	Config struct {
		Env        string
		Debug      bool
		TestMode   bool
		Build      string
		AppName    string
		SchoolName string
		SecretKey  string

		DefaultFromEmailAddr string
		SendgridAPIKey       string
		RollbarToken         string
		FrontendBaseURL      string

		Server   ServerConfig
		Storage  StorageConfig
		Database DatabaseConfig
		Tutor    TutorConfig
	}
)

func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.DefaultFromEmailAddr}
}

// NewConfig loads the application configuration from the environment,
// with an optional `config/.env.<env>` file layered underneath.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Shikkha")
	v.SetDefault("schoolName", "Smart School")
	v.SetDefault("secretKey", "x#e2wz&1u)9m$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("frontendBaseUrl", "http://localhost:3000")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("serverHost", "0.0.0.0")
	v.SetDefault("serverPort", 8000)
	v.SetDefault("serverDebugHost", "0.0.0.0:8001")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)

	v.SetDefault("storageBackend", "file")
	v.SetDefault("storageDir", filepath.Join(".", "data"))

	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseName", "shikkha")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", 5432)
	v.SetDefault("databaseUser", "shikkha")
	v.SetDefault("databasePassword", "")
	v.SetDefault("databaseAdminUser", "")
	v.SetDefault("databaseAdminPassword", "")
	v.SetDefault("databaseDisableTls", true)

	v.SetDefault("tutorApiKey", "")
	v.SetDefault("tutorModel", "gemini-3-flash-preview")
	v.SetDefault("tutorBaseUrl", "https://generativelanguage.googleapis.com/v1beta/openai")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:        env,
		Debug:      v.GetBool("debug"),
		TestMode:   env == "TEST",
		Build:      v.GetString("build"),
		AppName:    v.GetString("appName"),
		SchoolName: v.GetString("schoolName"),
		SecretKey:  v.GetString("secretKey"),

		DefaultFromEmailAddr: v.GetString("defaultFromEmail"),
		SendgridAPIKey:       v.GetString("sendgridApiKey"),
		RollbarToken:         v.GetString("rollbarToken"),
		FrontendBaseURL:      v.GetString("frontendBaseUrl"),

		Server: ServerConfig{
			Host:                      v.GetString("serverHost"),
			Port:                      v.GetInt("serverPort"),
			DebugHost:                 v.GetString("serverDebugHost"),
			ShutdownTimeout:           v.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
		},
		Storage: StorageConfig{
			Backend: v.GetString("storageBackend"),
			Dir:     v.GetString("storageDir"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("databaseEngine"),
			Name:          v.GetString("databaseName"),
			Host:          v.GetString("databaseHost"),
			Port:          v.GetInt("databasePort"),
			User:          v.GetString("databaseUser"),
			Password:      v.GetString("databasePassword"),
			AdminUser:     v.GetString("databaseAdminUser"),
			AdminPassword: v.GetString("databaseAdminPassword"),
			DisableTLS:    v.GetBool("databaseDisableTls"),
		},
		Tutor: TutorConfig{
			APIKey:  v.GetString("tutorApiKey"),
			Model:   v.GetString("tutorModel"),
			BaseURL: v.GetString("tutorBaseUrl"),
		},
	}
}
