// Package config resolves, parses, validates, and defaults ledsrv configuration.
package config

// Config is the fully materialized runtime configuration used by ledsrv.
type Config struct {
	Channels ChannelConfig `json:"channels"`
	View     ViewConfig    `json:"view"`
	Log      LogConfig     `json:"log"`
}

// ChannelConfig controls where the named channel objects live.
type ChannelConfig struct {
	Dir string `json:"dir"`
}

// ViewConfig selects the state sink backend.
type ViewConfig struct {
	Backend string `json:"backend"`
}

// LogConfig controls the runtime log output.
type LogConfig struct {
	Level string `json:"level"`
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Message string
}
