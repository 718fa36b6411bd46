package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config keys. Each doubles as the flag name and the config file key.
const (
	KeyStatusFile      = "status-file"
	KeyStampFile       = "stamp-file"
	KeyMaildir         = "maildir"
	KeyPollSeconds     = "poll-seconds"
	KeySyncInterval    = "sync-interval"
	KeyRecentThreshold = "recent-threshold"
	KeyService         = "service"
	KeyIndexCommand    = "index-command"
	KeyCommandTimeout  = "command-timeout"
	KeyLogLines        = "log-lines"
	KeyLogMaxChars     = "log-max-chars"
	KeyHeadless        = "headless"
	KeyAllowHeadless   = "allow-headless"
	KeyWatch           = "watch"
)

// envBindings maps config keys to the environment variables shared with the
// mail sync service.
var envBindings = map[string]string{
	KeyStatusFile:      "MAIL_SYNC_STATUS_FILE",
	KeyStampFile:       "MAIL_SYNC_STAMP_FILE",
	KeyMaildir:         "MAIL_SYNC_MAILDIR",
	KeyPollSeconds:     "MAIL_SYNC_TRAY_POLL_SECONDS",
	KeySyncInterval:    "MAIL_SYNC_INTERVAL",
	KeyRecentThreshold: "MAIL_SYNC_RECENT_SECONDS",
	KeyService:         "MAIL_SYNC_SERVICE",
	KeyIndexCommand:    "MAIL_TRAY_INDEX_COMMAND",
	KeyCommandTimeout:  "MAIL_TRAY_COMMAND_TIMEOUT",
	KeyLogLines:        "MAIL_TRAY_LOG_LINES",
	KeyLogMaxChars:     "MAIL_TRAY_LOG_MAX_CHARS",
	KeyHeadless:        "MAIL_TRAY_HEADLESS",
	KeyAllowHeadless:   "MAIL_TRAY_ALLOW_HEADLESS",
	KeyWatch:           "MAIL_TRAY_WATCH",
}

// Defaults in seconds.
const (
	DefaultPollSeconds     = 60
	DefaultSyncSeconds     = 1800
	MinRecentSeconds       = 900
	DefaultCommandTimeout  = 30
	DefaultLogLines        = 40
	DefaultLogMaxChars     = 3500
	DefaultIndexCommand    = "mu"
	recentIntervalMultiple = 3
)

// Config is the resolved, immutable agent configuration.
type Config struct {
	StatusFile      string        `yaml:"status_file"`
	StampFile       string        `yaml:"stamp_file"`
	Maildir         string        `yaml:"maildir"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	SyncInterval    time.Duration `yaml:"sync_interval"`
	RecentThreshold time.Duration `yaml:"recent_threshold"`
	Service         string        `yaml:"service"`
	IndexCommand    string        `yaml:"index_command"`
	CommandTimeout  time.Duration `yaml:"command_timeout"`
	LogLines        int           `yaml:"log_lines"`
	LogMaxChars     int           `yaml:"log_max_chars"`
	Headless        bool          `yaml:"headless"`
	AllowHeadless   bool          `yaml:"allow_headless"`
	Watch           bool          `yaml:"watch"`
}

// RegisterFlags adds one flag per config key. Interval flags accept the
// same "30s"/"5m"/"1h" forms as the environment.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyStatusFile, DefaultStatusFile, "Path to the sync status record (JSON)")
	fs.String(KeyStampFile, DefaultStampFile, "Path to the last-success stamp file")
	fs.String(KeyMaildir, DefaultMaildir, "Mailbox root containing one directory per account")
	fs.String(KeyPollSeconds, fmt.Sprint(DefaultPollSeconds), "Refresh interval")
	fs.String(KeySyncInterval, fmt.Sprint(DefaultSyncSeconds), "Interval of the sync service timer")
	fs.String(KeyRecentThreshold, "", "Age after which a successful sync is stale (default max(3 x sync-interval, 900))")
	fs.String(KeyService, DefaultService, "User service that fetches mail")
	fs.String(KeyIndexCommand, DefaultIndexCommand, "Indexed query backend executable")
	fs.String(KeyCommandTimeout, fmt.Sprint(DefaultCommandTimeout), "Timeout for external commands")
	fs.Int(KeyLogLines, DefaultLogLines, "Number of service log lines to show")
	fs.Int(KeyLogMaxChars, DefaultLogMaxChars, "Maximum characters of log output in a notification")
	fs.Bool(KeyHeadless, false, "Run without a tray icon")
	fs.Bool(KeyAllowHeadless, false, "Fall back to headless polling when no tray host is available")
	fs.Bool(KeyWatch, true, "Refresh immediately when status or maildir files change")
}

// Resolve builds the configuration from flags, environment, an optional
// config file and defaults, in that order of precedence. fs may be nil.
// configPath "" means ~/.config/mail-tray/config.yaml if present.
func Resolve(fs *pflag.FlagSet, configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyStatusFile, DefaultStatusFile)
	v.SetDefault(KeyStampFile, DefaultStampFile)
	v.SetDefault(KeyMaildir, DefaultMaildir)
	v.SetDefault(KeyPollSeconds, fmt.Sprint(DefaultPollSeconds))
	v.SetDefault(KeySyncInterval, fmt.Sprint(DefaultSyncSeconds))
	v.SetDefault(KeyService, DefaultService)
	v.SetDefault(KeyIndexCommand, DefaultIndexCommand)
	v.SetDefault(KeyCommandTimeout, fmt.Sprint(DefaultCommandTimeout))
	v.SetDefault(KeyLogLines, DefaultLogLines)
	v.SetDefault(KeyLogMaxChars, DefaultLogMaxChars)
	v.SetDefault(KeyHeadless, false)
	v.SetDefault(KeyAllowHeadless, false)
	v.SetDefault(KeyWatch, true)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if configPath == "" {
		if p, err := DefaultConfigFile(); err == nil {
			configPath = p
		}
	}
	if configPath != "" {
		v.SetConfigFile(ExpandHome(configPath))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
			}
		}
	}

	syncSeconds := ParseInterval(v.GetString(KeySyncInterval), DefaultSyncSeconds)
	recentDefault := max(syncSeconds*recentIntervalMultiple, MinRecentSeconds)
	recentSeconds := recentDefault
	if raw := strings.TrimSpace(v.GetString(KeyRecentThreshold)); raw != "" {
		recentSeconds = ParseInterval(raw, recentDefault)
	}

	return &Config{
		StatusFile:      ExpandHome(v.GetString(KeyStatusFile)),
		StampFile:       ExpandHome(v.GetString(KeyStampFile)),
		Maildir:         ExpandHome(v.GetString(KeyMaildir)),
		PollInterval:    seconds(ParseInterval(v.GetString(KeyPollSeconds), DefaultPollSeconds)),
		SyncInterval:    seconds(syncSeconds),
		RecentThreshold: seconds(recentSeconds),
		Service:         v.GetString(KeyService),
		IndexCommand:    v.GetString(KeyIndexCommand),
		CommandTimeout:  seconds(ParseInterval(v.GetString(KeyCommandTimeout), DefaultCommandTimeout)),
		LogLines:        v.GetInt(KeyLogLines),
		LogMaxChars:     v.GetInt(KeyLogMaxChars),
		Headless:        v.GetBool(KeyHeadless),
		AllowHeadless:   v.GetBool(KeyAllowHeadless),
		Watch:           v.GetBool(KeyWatch),
	}, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
