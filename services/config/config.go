package config

import (
	"encoding/json"
	"errors"
	"os"
)

// Board is the default embedded profile.
const Board = "aries"

// EmbeddedConfigLookup allows overriding how board profiles are resolved.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

// Config holds every device path the HAL touches.
type Config struct {
	Lights  LightPaths  `json:"lights"`
	Sensors SensorPaths `json:"sensors"`
}

// LightPaths are the sysfs control files of the light subsystem.
type LightPaths struct {
	LCD                   string `json:"lcd"`
	Buttons               string `json:"buttons"`
	Notification          string `json:"notification"`
	NotificationBlink     string `json:"notification_blink"`
	NotificationBlinkRate string `json:"notification_blink_rate"`
	DisableTouchlight     string `json:"disable_touchlight"` // preference flag file
}

// SensorPaths locate the input devices backing each driver source.
// The name fields match the kernel input device name.
type SensorPaths struct {
	InputGlob  string `json:"input_glob"`
	SysfsInput string `json:"sysfs_input"`
	Light      string `json:"light"`
	Proximity  string `json:"proximity"`
	Akm        string `json:"akm"`
	Gyro       string `json:"gyro"`
}

// Default returns the embedded profile for Board.
func Default() Config {
	cfg, err := ForBoard(Board)
	if err != nil {
		panic("config: embedded profile " + Board + ": " + err.Error())
	}
	return cfg
}

// ForBoard decodes the embedded profile for board.
func ForBoard(board string) (Config, error) {
	raw, ok := EmbeddedConfigLookup(board)
	if !ok || len(raw) == 0 {
		return Config{}, errors.New("no embedded config for board: " + board)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load overlays the JSON file at path on Default(). Keys absent from the
// file keep their default value. An empty path yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
