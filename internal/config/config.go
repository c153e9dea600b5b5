package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	Sleeper     Sleeper
	TelegramBot TelegramBot
	Mapping     Mapping
}

type Sleeper struct {
	LeagueID    string `envconfig:"LEAGUE_ID" required:"true"`
	Season      string `envconfig:"SEASON" default:"2024"`
	DisplayName string `envconfig:"DISPLAY_NAME"`
}

// TelegramBot is only required when running in bot mode; one-shot report
// modes ignore it.
type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type Mapping struct {
	CoreFile  string `envconfig:"MAPPING_FILE" default:"player_mapping.json"`
	CacheFile string `envconfig:"MAPPING_CACHE_FILE" default:"player_mapping_cache.json"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
