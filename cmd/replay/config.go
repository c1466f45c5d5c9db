package main

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config drives one replay run. Everything here is caller policy the
// matching core deliberately does not own: where events come from, how
// fast they are fed, and when snapshots are taken.
type Config struct {
	FeedPath         string        // message file to replay
	Steps            int           // 0 replays the whole feed
	SnapshotInterval int           // capture every Kth event; 0 disables
	StepDelay        time.Duration // wall-clock pacing between events
	DepthLevels      int           // depth rungs per snapshot side
}

// loadConfig reads replay.yaml from the working directory, if present,
// with HUGINN_-prefixed environment variables taking precedence.
func loadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("feed", "messages.csv")
	v.SetDefault("steps", 0)
	v.SetDefault("snapshot_interval", 5)
	v.SetDefault("step_delay", "0s")
	v.SetDefault("depth_levels", 10)

	v.SetConfigName("replay")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("HUGINN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	return Config{
		FeedPath:         v.GetString("feed"),
		Steps:            v.GetInt("steps"),
		SnapshotInterval: v.GetInt("snapshot_interval"),
		StepDelay:        v.GetDuration("step_delay"),
		DepthLevels:      v.GetInt("depth_levels"),
	}, nil
}
