package config

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	util "github.com/Salsabil-210/comhabits/internal/utils"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type GoogleSettings struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func (g GoogleSettings) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

type Settings struct {
	Env               string
	Port              string
	DatabaseDSN       string
	Timezone          string
	LogLevel          string
	LogFile           string
	CorsAllowedOrigin string
	CookieDomain      string
	ReminderCron      string
	Google            GoogleSettings
}

var Cfg = Load()

func Load() Settings {
	return Settings{
		Env:               getEnv("APP_ENV", EnvProduction),
		Port:              getEnv("PORT", "8080"),
		DatabaseDSN:       os.Getenv("DATABASE_DSN"),
		Timezone:          getEnv("APP_TIMEZONE", "Local"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           os.Getenv("LOG_FILE"),
		CorsAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		CookieDomain:      os.Getenv("COOKIE_DOMAIN"),
		ReminderCron:      getEnv("REMINDER_CRON", "0 7 * * *"),
		Google: GoogleSettings{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		},
	}
}

// Init reloads settings from the environment and applies the process-wide
// pieces: logger and the zone that decides "today".
func Init() {
	Cfg = Load()
	InitLogger(Cfg.LogLevel, Cfg.LogFile)

	loc, err := loadLocation(Cfg.Timezone)
	if err != nil {
		Log.WithError(err).Warnf("Unknown APP_TIMEZONE %q, using local time", Cfg.Timezone)
		loc = time.Local
	}
	util.SetLocation(loc)

	Log.WithFields(logrus.Fields{
		"env":      Cfg.Env,
		"port":     Cfg.Port,
		"timezone": loc.String(),
	}).Info("Configuration loaded")
}

func IsDevelopment() bool {
	return strings.EqualFold(Cfg.Env, EnvDevelopment)
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
