package config

import (
	"errors"
	"log"

	"github.com/spf13/viper"
)

var (
	TLS_DOMAINS         = ""                                              // e.g. "example.com,example2.com"
	MYSQL_DSN           = ""                                              // MySQL will be used if this is set
	SQLITE_FILE         = "albums.db"                                     // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS        = "0.0.0.0:8080"
	DEBUG_MODE          = true
	LOG_LEVEL           = "info"
	SESSION_KEY         = "this is a long key"                            // override in production
	PUSH_SERVER         = ""                                              // push notifications are disabled when empty
	INVITE_URL_TEMPLATE = "http://localhost:8080/w/invite/%s/"            // receives the invite token
	SMTP_HOST           = ""                                              // invitation emails are disabled when empty
	SMTP_PORT           = 587
	SMTP_USERNAME       = ""
	SMTP_PASSWORD       = ""
	SMTP_FROM           = ""
	// Join requests to public albums and login attempts are throttled with durable counters.
	JOIN_REQUEST_LIMIT   = 5
	JOIN_REQUEST_WINDOW  = 3600 // seconds
	LOGIN_ATTEMPT_LIMIT  = 10
	LOGIN_ATTEMPT_WINDOW = 900 // seconds
)

func init() {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Cannot read config file: %v", err)
		}
	}
	v.AutomaticEnv()
	load(v)
}

func load(v *viper.Viper) {
	readString(v, "TLS_DOMAINS", &TLS_DOMAINS)
	readString(v, "MYSQL_DSN", &MYSQL_DSN)
	readString(v, "SQLITE_FILE", &SQLITE_FILE)
	readString(v, "BIND_ADDRESS", &BIND_ADDRESS)
	readBool(v, "DEBUG_MODE", &DEBUG_MODE)
	readString(v, "LOG_LEVEL", &LOG_LEVEL)
	readString(v, "SESSION_KEY", &SESSION_KEY)
	readString(v, "PUSH_SERVER", &PUSH_SERVER)
	readString(v, "INVITE_URL_TEMPLATE", &INVITE_URL_TEMPLATE)
	readString(v, "SMTP_HOST", &SMTP_HOST)
	readInt(v, "SMTP_PORT", &SMTP_PORT)
	readString(v, "SMTP_USERNAME", &SMTP_USERNAME)
	readString(v, "SMTP_PASSWORD", &SMTP_PASSWORD)
	readString(v, "SMTP_FROM", &SMTP_FROM)
	readInt(v, "JOIN_REQUEST_LIMIT", &JOIN_REQUEST_LIMIT)
	readInt(v, "JOIN_REQUEST_WINDOW", &JOIN_REQUEST_WINDOW)
	readInt(v, "LOGIN_ATTEMPT_LIMIT", &LOGIN_ATTEMPT_LIMIT)
	readInt(v, "LOGIN_ATTEMPT_WINDOW", &LOGIN_ATTEMPT_WINDOW)
}

func readString(v *viper.Viper, name string, value *string) {
	if !v.IsSet(name) {
		return
	}
	if s := v.GetString(name); s != "" {
		*value = s
	}
}

// readBool keeps the current value unless the setting is one of the usual true/false spellings
func readBool(v *viper.Viper, name string, value *bool) {
	if !v.IsSet(name) {
		return
	}
	switch v.GetString(name) {
	case "true", "TRUE", "True", "1", "yes", "on":
		*value = true
	case "false", "FALSE", "False", "0", "no", "off":
		*value = false
	}
}

func readInt(v *viper.Viper, name string, value *int) {
	if !v.IsSet(name) {
		return
	}
	i := v.GetInt(name)
	if i == 0 && v.GetString(name) != "0" {
		return // not a number
	}
	*value = i
}
