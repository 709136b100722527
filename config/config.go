package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	Env struct {
		RegistryURL string `yaml:"registry_url"`
		Debug       string `yaml:"debug"`
		BotName     string `yaml:"bot_name"`
		BotApiKey   string `yaml:"bot_api_key"`
		TgHook      string `yaml:"tg_hook"`
		WebHookOpen bool   `yaml:"web_hook_open"`
		TgHookToken string `yaml:"tg_hook_token"`
		LocalHost   string `yaml:"local_host"`
		Workers     int    `yaml:"workers"`
	} `yaml:"env"`

	Dispatch struct {
		// milliseconds
		SendTimeout  int `yaml:"send_timeout"`
		ProbeTimeout int `yaml:"probe_timeout"`
	} `yaml:"dispatch"`

	Store struct {
		Backend string `yaml:"backend"`
	} `yaml:"store"`

	Redis struct {
		Ip       string `yaml:"ip"`
		Port     int    `yaml:"port"`
		Db       int    `yaml:"db"`
		Username string `yaml:"username"`
		Passwd   string `yaml:"passwd"`
	} `yaml:"redis"`
}

var YmlConfig *Config

const (
	defaultSendTimeout  = 40 * time.Second
	defaultProbeTimeout = 10 * time.Second
	defaultRegistryURL  = "./chains.json"
	defaultWorkers      = 5
)

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	var config Config
	err := yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	if config.Env.RegistryURL == "" {
		config.Env.RegistryURL = defaultRegistryURL
	}
	if config.Env.Workers <= 0 {
		config.Env.Workers = defaultWorkers
	}
	if config.Store.Backend == "" {
		config.Store.Backend = StoreRedis
	}

	return &config, nil
}

// Path returns the config file location, KRAINODE_APP_ENV overriding ./prod.yml.
func Path() string {
	if configFilePathFromEnv := os.Getenv("KRAINODE_APP_ENV"); configFilePathFromEnv != "" {
		return configFilePathFromEnv
	}
	return "./prod.yml"
}

// Init loads the config file into YmlConfig.
func Init() error {
	cfg, err := LoadConfig(Path())
	if err != nil {
		return err
	}
	YmlConfig = cfg
	return nil
}

func (c *Config) SendTimeout() time.Duration {
	if c.Dispatch.SendTimeout <= 0 {
		return defaultSendTimeout
	}
	return time.Duration(c.Dispatch.SendTimeout) * time.Millisecond
}

func (c *Config) ProbeTimeout() time.Duration {
	if c.Dispatch.ProbeTimeout <= 0 {
		return defaultProbeTimeout
	}
	return time.Duration(c.Dispatch.ProbeTimeout) * time.Millisecond
}

func (c *Config) IsDebug() bool {
	return os.Getenv("DEBUG") == "true" || c.Env.Debug == "true"
}
