package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Nomadcxx/artpop/internal/logging"
	"github.com/Nomadcxx/artpop/internal/paths"
	"github.com/spf13/viper"
)

// DefaultConfigName is read from the working directory when present
const DefaultConfigName = "artpop.toml"

type Config struct {
	Site    SiteConfig    `mapstructure:"site"`
	Markers MarkersConfig `mapstructure:"markers"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SiteConfig locates the gallery page and the image tree
type SiteConfig struct {
	Document     string   `mapstructure:"document"`
	PortfolioDir string   `mapstructure:"portfolio_dir"`
	HrefPrefix   string   `mapstructure:"href_prefix"`
	Extensions   []string `mapstructure:"extensions"`
}

// MarkersConfig holds the sentinel comments around generated content
type MarkersConfig struct {
	Begin string `mapstructure:"begin"`
	End   string `mapstructure:"end"`
}

type OutputConfig struct {
	BackupSuffix string `mapstructure:"backup_suffix"`
	// FileMode is octal (e.g., "0644" or "644"). Empty means keep the document's mode.
	FileMode string `mapstructure:"file_mode"`
}

// LoggingConfig is handed to logging.New once File has been resolved
type LoggingConfig = logging.Config

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Document:     "art.html",
			PortfolioDir: "images/portfolio",
			HrefPrefix:   "images/portfolio/",
			Extensions:   []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".svg", ".pdf"},
		},
		Markers: MarkersConfig{
			Begin: "<!-- BEGIN AUTO-GENERATED ART -->",
			End:   "<!-- END AUTO-GENERATED ART -->",
		},
		Output: OutputConfig{
			BackupSuffix: ".bak",
			FileMode:     "",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads configuration on top of the defaults. An explicit path must
// exist; with no path, artpop.toml in the working directory is used if it is
// there. Environment variables are not consulted.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	} else {
		path = DefaultConfigName
	}
	v.SetConfigFile(path)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	// Decoding into a populated slice overwrites it element by element, so
	// a shorter list from the file would keep the tail of the defaults.
	cfg := DefaultConfig()
	cfg.Site.Extensions = nil
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if !v.IsSet("site.extensions") {
		cfg.Site.Extensions = DefaultConfig().Site.Extensions
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required values and normalizes extensions to a
// lower-case, dot-prefixed form.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Site.Document) == "" {
		errs = append(errs, errors.New("site.document must not be empty"))
	}
	if strings.TrimSpace(c.Site.PortfolioDir) == "" {
		errs = append(errs, errors.New("site.portfolio_dir must not be empty"))
	}
	if c.Markers.Begin == "" || c.Markers.End == "" {
		errs = append(errs, errors.New("markers.begin and markers.end must not be empty"))
	} else if c.Markers.Begin == c.Markers.End {
		errs = append(errs, errors.New("markers.begin and markers.end must differ"))
	}
	if c.Output.BackupSuffix == "" {
		errs = append(errs, errors.New("output.backup_suffix must not be empty"))
	}
	if _, err := c.Output.ParseFileMode(); err != nil {
		errs = append(errs, fmt.Errorf("output.file_mode: %w", err))
	}

	exts := make([]string, 0, len(c.Site.Extensions))
	for _, ext := range c.Site.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		errs = append(errs, errors.New("site.extensions must list at least one extension"))
	}
	c.Site.Extensions = exts

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (o *OutputConfig) ParseFileMode() (os.FileMode, error) {
	if strings.TrimSpace(o.FileMode) == "" {
		return 0, nil
	}
	m := strings.TrimSpace(o.FileMode)
	if len(m) == 3 { // allow "644"
		m = "0" + m
	}
	v, err := strconv.ParseUint(m, 8, 32)
	if err != nil {
		return 0, err
	}
	return os.FileMode(v), nil
}

// ConfigPath returns the absolute path of the config file Load would read
func ConfigPath(explicit string) (string, error) {
	if explicit == "" {
		explicit = DefaultConfigName
	}
	return filepath.Abs(explicit)
}

// LogPath resolves the configured log file, expanding a leading "~"
func (c *Config) LogPath() (string, error) {
	if c.Logging.File == "" {
		return "", nil
	}
	if strings.HasPrefix(c.Logging.File, "~") {
		home, err := paths.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to get home dir: %w", err)
		}
		return filepath.Join(home, c.Logging.File[1:]), nil
	}
	return c.Logging.File, nil
}

func (c *Config) ToTOML() string {
	return fmt.Sprintf(`# artpop configuration

[site]
# Gallery page that receives the generated block
document = %q
# Directory holding one sub-directory per year
portfolio_dir = %q
# Prefix for generated links: {href_prefix}{year}/{file}
href_prefix = %q
extensions = %s

[markers]
begin = %q
end = %q

[output]
backup_suffix = %q
# Octal mode for the rewritten document, empty keeps the current mode
file_mode = %q

[logging]
level = %q
file = %q
max_size_mb = %d
max_backups = %d
`,
		c.Site.Document,
		c.Site.PortfolioDir,
		c.Site.HrefPrefix,
		formatStringSlice(c.Site.Extensions),
		c.Markers.Begin,
		c.Markers.End,
		c.Output.BackupSuffix,
		c.Output.FileMode,
		c.Logging.Level,
		c.Logging.File,
		c.Logging.MaxSizeMB,
		c.Logging.MaxBackups,
	)
}

func formatStringSlice(s []string) string {
	if len(s) == 0 {
		return "[]"
	}
	quoted := make([]string, len(s))
	for i, v := range s {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
