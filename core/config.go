package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *viper.Viper

func init() {
	Conf = viper.New()

	// defaults
	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("debug", true)
	Conf.SetDefault("appName", "EduKeep")
	Conf.SetDefault("secretKey", "x2m$7x!9a)wq&0d3^ge8u#kz5r(p4c_hy6t+vnb1s*lfj0o@im")
	Conf.SetDefault("serverAddress", ":8000")
	Conf.SetDefault("defaultFromEmail", "noreply@localhost")
	Conf.SetDefault("alertRecipientEmail", "") // coordinator inbox for risk digests; empty disables them
	Conf.SetDefault("databaseUrl", "")         // empty falls back to the in-memory store
	Conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	Conf.SetDefault("rollbarToken", "")
	Conf.SetDefault("sendgridApiKey", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		Conf.SetDefault("testMode", true)
	}
	Conf.SetDefault("env", env)
	Conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	Conf.AutomaticEnv()
}
