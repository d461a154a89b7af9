package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MALARIA_SERVER_PORT.
const EnvPrefix = "MALARIA"

// MonthLayout is the format of the data range bounds.
const MonthLayout = "2006-01"

type App struct {
	Server  Server  `mapstructure:"server"`
	Data    Data    `mapstructure:"data"`
	Store   Store   `mapstructure:"store"`
	Report  Report  `mapstructure:"report"`
	Advisor Advisor `mapstructure:"advisor"`
	News    News    `mapstructure:"news"`
	Publish Publish `mapstructure:"publish"`
}

type Server struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Data configures the synthetic surveillance dataset.
type Data struct {
	Seed  uint64 `mapstructure:"seed"`
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

type Store struct {
	DbPath  string `mapstructure:"db_path"`
	Threads int    `mapstructure:"threads"`
}

type Report struct {
	Title         string   `mapstructure:"title"`
	HeaderAlign   string   `mapstructure:"header_align"`
	BrandingImage string   `mapstructure:"branding_image"`
	RiskField     string   `mapstructure:"risk_field"`
	HighSentinel  string   `mapstructure:"high_sentinel"`
	Charts        []string `mapstructure:"charts"`
}

type Advisor struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type News struct {
	FeedFile string `mapstructure:"feed_file"`
}

type Publish struct {
	Bucket  string `mapstructure:"bucket"`
	Prefix  string `mapstructure:"prefix"`
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("data.seed", 42)
	v.SetDefault("data.start", "2020-01")
	v.SetDefault("data.end", "2025-12")

	v.SetDefault("store.db_path", "")
	v.SetDefault("store.threads", 0)

	v.SetDefault("report.title", "Malaria Surveillance Report")
	v.SetDefault("report.header_align", "C")
	v.SetDefault("report.branding_image", "")
	v.SetDefault("report.risk_field", "Regional Risk Status")
	v.SetDefault("report.high_sentinel", "High")
	v.SetDefault("report.charts", []string{"Case Trends", "Geographic Map"})

	v.SetDefault("advisor.api_key", "")
	v.SetDefault("advisor.model", "gemini-2.5-flash")

	v.SetDefault("news.feed_file", "")

	v.SetDefault("publish.bucket", "")
	v.SetDefault("publish.prefix", "")
	v.SetDefault("publish.region", "")
	v.SetDefault("publish.profile", "")
}

// Load reads the YAML config at path on top of the defaults. An empty path uses
// defaults and environment overrides only.
func Load(path string) (*App, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg App
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if _, _, err := cfg.Data.Range(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Addr is the listen address of the web server.
func (s Server) Addr() string {
	return s.Host + ":" + s.Port
}

// Range parses the inclusive month bounds of the dataset.
func (d Data) Range() (time.Time, time.Time, error) {
	start, err := time.Parse(MonthLayout, d.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid data.start %q: %w", d.Start, err)
	}
	end, err := time.Parse(MonthLayout, d.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid data.end %q: %w", d.End, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("data.end %s is before data.start %s", d.End, d.Start)
	}
	return start, end, nil
}
