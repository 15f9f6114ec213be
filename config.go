package main

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	// server
	viper.SetDefault("server.addr", "0.0.0.0:10888")
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("cors.origins", []string{"*"})

	// storage
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "forum")
	viper.SetDefault("redis.enable", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	// token
	viper.SetDefault("jwt.secret", "fLA0Jx@2fs6X!WZu")

	// flow control
	viper.SetDefault("limit.pool", 2000)
	viper.SetDefault("limit.ip", 250)
	viper.SetDefault("limit.burst", 20)

	viper.SetDefault("tags.refresh", time.Minute)
	viper.SetDefault("log.level", "info")
}

// loadConfig reads .env, FORUM_ prefixed env vars and an optional config.yaml
func loadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file")
	}

	viper.SetEnvPrefix("forum")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal().Err(err).Msg("read config")
		}
	}
}
