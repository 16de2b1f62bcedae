package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Policy defaults, matching the original rider client.
const (
	DefaultIdleLogout           = 90 * time.Minute
	DefaultHardCap              = 12 * time.Hour
	DefaultReservationLookahead = 6 * time.Hour
	DefaultTick                 = 60 * time.Second
)

type GuardConfig struct {
	// IdleLogout is the maximum gap since the last recognized activity
	// before an idle session is terminated (absent an active booking).
	IdleLogout time.Duration
	// HardCap is the absolute session ceiling measured from window creation.
	HardCap time.Duration
	// ReservationLookahead bounds how far ahead a pending reservation may
	// be scheduled and still suppress idle logout.
	ReservationLookahead time.Duration
	// Tick is the enforcement re-evaluation cadence. Must stay well under
	// IdleLogout; coarser than that and the policy outcomes drift.
	Tick time.Duration
	// EntryURL is the unauthenticated entry point clients are sent to
	// after termination.
	EntryURL string
	// Location anchors the end-of-day cutoff. Fixed at startup; a
	// timezone change mid-session does not move an existing window.
	Location *time.Location
}

type RedisSettings struct {
	Address  string
	Password string
	DB       int
}

type NotifyConfig struct {
	AppID   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Config struct {
	// Server port
	Port     string
	LogLevel string
	AppEnv   string
	Redis    RedisSettings
	Guard    GuardConfig
	Notify   NotifyConfig
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	idleLogout := viper.GetDuration("GUARD_IDLE_LOGOUT")
	if idleLogout <= 0 {
		idleLogout = DefaultIdleLogout
	}

	hardCap := viper.GetDuration("GUARD_HARD_CAP")
	if hardCap <= 0 {
		hardCap = DefaultHardCap
	}

	lookahead := viper.GetDuration("GUARD_RESERVATION_LOOKAHEAD")
	if lookahead <= 0 {
		lookahead = DefaultReservationLookahead
	}

	tick := viper.GetDuration("GUARD_TICK")
	if tick <= 0 {
		tick = DefaultTick
	}
	if tick >= idleLogout {
		log.Printf("Guard tick %v is not under the idle logout %v, defaulting to %v", tick, idleLogout, DefaultTick)
		tick = DefaultTick
	}

	entryURL := viper.GetString("GUARD_ENTRY_URL")
	if entryURL == "" {
		entryURL = "/index.html"
	}

	loc := time.Local
	if tz := viper.GetString("GUARD_TIMEZONE"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			log.Printf("Invalid timezone '%s', defaulting to system local", tz)
		} else {
			loc = parsed
		}
	}

	notifyTimeout := viper.GetDuration("ONESIGNAL_TIMEOUT")
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	notifyBaseURL := viper.GetString("ONESIGNAL_API_URL")
	if notifyBaseURL == "" {
		notifyBaseURL = "https://api.onesignal.com"
	}

	port := viper.GetString("APP_PORT")
	if port == "" {
		port = "8089"
	}

	return &Config{
		Port:     port,
		LogLevel: viper.GetString("LOG_LEVEL"),
		AppEnv:   viper.GetString("APP_ENV"),
		Redis: RedisSettings{
			Address:  viper.GetString("REDIS_ADDRESS"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Guard: GuardConfig{
			IdleLogout:           idleLogout,
			HardCap:              hardCap,
			ReservationLookahead: lookahead,
			Tick:                 tick,
			EntryURL:             entryURL,
			Location:             loc,
		},
		Notify: NotifyConfig{
			AppID:   viper.GetString("ONESIGNAL_APP_ID"),
			APIKey:  viper.GetString("ONESIGNAL_API_KEY"),
			BaseURL: notifyBaseURL,
			Timeout: notifyTimeout,
		},
	}, nil
}
