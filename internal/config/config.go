package config

import "github.com/spf13/viper"

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token         string
		AdminChatID   int64  `mapstructure:"admin_chat_id"`
		WebAppURL     string `mapstructure:"webapp_url"`
		WebhookSecret string `mapstructure:"webhook_secret"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Redis struct {
		Addr string // пусто — работаем без лока
	} `mapstructure:"redis"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Booking struct {
		SlotStepMin int    `mapstructure:"slot_step_min"` // 0 — шаг равен длительности услуги
		CacheTTL    string `mapstructure:"cache_ttl"`
	} `mapstructure:"booking"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	// Переопределение через ENV (APP_*)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
