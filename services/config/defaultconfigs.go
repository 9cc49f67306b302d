package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: board name (see Board). Val: raw JSON bytes overlaid on Default().
// -----------------------------------------------------------------------------

const cfgAries = `{
  "lights": {
    "lcd": "/sys/class/leds/lcd-backlight/brightness",
    "buttons": "/sys/class/misc/melfas_touchkey/brightness",
    "notification": "/sys/class/misc/backlightnotification/notification_led",
    "notification_blink": "/sys/class/misc/backlightnotification/blink_control",
    "notification_blink_rate": "/sys/class/misc/backlightnotification/blink_interval",
    "disable_touchlight": "/data/.disable_touchlight"
  },
  "sensors": {
    "input_glob": "/dev/input/event*",
    "sysfs_input": "/sys/class/input",
    "light": "lightsensor-level",
    "proximity": "proximity_sensor",
    "akm": "compass",
    "gyro": "gyro"
  }
}`

var embeddedConfigs = map[string][]byte{
	"aries": []byte(cfgAries),
}
