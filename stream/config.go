package stream

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the application configuration read from YAML.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientId"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
			Values  string `yaml:"values"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Engine struct {
		TickIntervalMs int    `yaml:"tickIntervalMs"`
		DefaultUnits   string `yaml:"defaultUnits"`
	} `yaml:"engine"`
	Stream struct {
		FrameIntervalMs int    `yaml:"frameIntervalMs"`
		Select          string `yaml:"select"`
		Property        string `yaml:"property"`
	} `yaml:"stream"`
	Api struct {
		Addr string `yaml:"addr"`
	} `yaml:"api"`
	Scene string `yaml:"scene"`
}

// DefaultConfig returns the configuration used for anything a file leaves out.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.ClientID = "ledtween"
	c.Mqtt.Topics.Stream = "home/xmastree/stream"
	c.Mqtt.Topics.Control = "home/xmastree/control"
	c.Mqtt.Topics.Values = "home/xmastree/values"
	c.Engine.TickIntervalMs = 15
	c.Engine.DefaultUnits = "px"
	c.Stream.FrameIntervalMs = 33
	c.Stream.Select = "led"
	c.Stream.Property = "color"
	c.Api.Addr = ":3000"
	return c
}

// LoadConfig reads a YAML config over the defaults, then applies
// environment overrides.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, err
	}
	c.ApplyEnv()
	return c, nil
}

// ApplyEnv overrides MQTT connection settings from LEDTWEEN_MQTT_URL,
// LEDTWEEN_MQTT_USERNAME and LEDTWEEN_MQTT_PASSWORD when set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LEDTWEEN_MQTT_URL"); v != "" {
		c.Mqtt.URL = v
	}
	if v := os.Getenv("LEDTWEEN_MQTT_USERNAME"); v != "" {
		c.Mqtt.Username = v
	}
	if v := os.Getenv("LEDTWEEN_MQTT_PASSWORD"); v != "" {
		c.Mqtt.Password = v
	}
}
