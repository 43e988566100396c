package config

// Backend names accepted for view.backend.
const (
	ViewStdout = "stdout"
	ViewNone   = "none"
)

// Default returns the canonical runtime configuration used when no file is
// present. The /tmp channel directory is part of the wire contract with
// existing clients.
func Default() Config {
	return Config{
		Channels: ChannelConfig{Dir: "/tmp"},
		View:     ViewConfig{Backend: ViewStdout},
		Log:      LogConfig{Level: "info"},
	}
}
