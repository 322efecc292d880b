package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/zerr"
)

// ProjectSettingsFileName is the per-project settings override file.
const ProjectSettingsFileName = ".quack.yaml"

// Settings are the tool-level knobs, as opposed to the project spec. They
// resolve from defaults, then the user-level config file, then the project
// override file, then QUACK_-prefixed environment variables (nested keys use
// a double underscore, e.g. QUACK_OSS__ENDPOINT).
type Settings struct {
	Cache    string      `mapstructure:"cache"`
	CacheDir string      `mapstructure:"cache_dir"`
	Jobs     int         `mapstructure:"jobs"`
	OSS      OSSSettings `mapstructure:"oss"`
}

// OSSSettings configure the remote object store.
type OSSSettings struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	Secure          bool   `mapstructure:"secure"`
}

// CacheMode parses the configured cache setting.
func (s *Settings) CacheMode() (domain.CacheMode, error) {
	return domain.ParseCacheMode(s.Cache)
}

// Remote reports whether a remote object store is configured.
func (s *Settings) Remote() bool {
	return s.OSS.Endpoint != "" && s.OSS.Bucket != ""
}

// LoadSettings resolves the tool settings for a project rooted at dir.
func LoadSettings(dir string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("QUACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	if userDir, err := os.UserConfigDir(); err == nil {
		userFile := filepath.Join(userDir, "quack", "config.yaml")
		if _, err := os.Stat(userFile); err == nil {
			v.SetConfigFile(userFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to read user config"), "path", userFile)
			}
		}
	}

	projectFile := filepath.Join(dir, ProjectSettingsFileName)
	if _, err := os.Stat(projectFile); err == nil {
		v.SetConfigFile(projectFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read project config"), "path", projectFile)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, zerr.Wrap(err, "failed to decode settings")
	}
	if _, err := settings.CacheMode(); err != nil {
		return nil, err
	}
	return &settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache", string(domain.DefaultCacheMode))
	v.SetDefault("jobs", runtime.NumCPU())
	v.SetDefault("oss.prefix", "quack-cache")
	v.SetDefault("oss.secure", true)

	// Empty defaults so AutomaticEnv can populate these through Unmarshal.
	v.SetDefault("oss.endpoint", "")
	v.SetDefault("oss.bucket", "")
	v.SetDefault("oss.access_key_id", "")
	v.SetDefault("oss.access_key_secret", "")

	cacheBase, err := os.UserCacheDir()
	if err != nil {
		cacheBase = os.TempDir()
	}
	v.SetDefault("cache_dir", domain.DefaultCacheDir(cacheBase))
}
