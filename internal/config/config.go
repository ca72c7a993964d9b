package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"Netivim360Bot"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	Advisor struct {
		Provider    string        `yaml:"provider" env-default:"gemini"`
		ApiKey      string        `yaml:"api_key" env:"ADVISOR_API_KEY" env-default:""`
		Model       string        `yaml:"model" env-default:""`
		Timeout     time.Duration `yaml:"timeout" env-default:"30s"`
		SessionTTL  time.Duration `yaml:"session_ttl" env-default:"30m"`
		WebGrounded bool          `yaml:"web_grounded" env-default:"true"`
	} `yaml:"advisor"`
	Geocoder struct {
		BaseURL   string        `yaml:"base_url" env-default:"https://nominatim.openstreetmap.org"`
		UserAgent string        `yaml:"user_agent" env-default:"netivim360/1.0"`
		Timeout   time.Duration `yaml:"timeout" env-default:"10s"`
		CacheTTL  time.Duration `yaml:"cache_ttl" env-default:"24h"`
	} `yaml:"geocoder"`
	Intake struct {
		RegionMode    string `yaml:"region_mode" env-default:"derive"`
		DefaultRegion string `yaml:"default_region" env-default:"מרכז"`
	} `yaml:"intake"`
	Storage struct {
		Driver string `yaml:"driver" env-default:"file"`
		Path   string `yaml:"path" env-default:"data/schools.json"`
	} `yaml:"storage"`
	Mongo struct {
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env-default:"netivim"`
	} `yaml:"mongo"`
	Redis struct {
		URL string `yaml:"url" env:"REDIS_URL" env-default:"redis://127.0.0.1:6379/0"`
	} `yaml:"redis"`
	Listen struct {
		BindIP  string        `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port    string        `yaml:"port" env-default:"9100"`
		Timeout time.Duration `yaml:"timeout" env-default:"45s"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
