package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vango-dev/routegen/internal/errors"
)

const (
	// ConfigName is the base name of the configuration file.
	ConfigName = "routegen"

	// EnvPrefix prefixes environment overrides, e.g. ROUTEGEN_OUTPUT_EXTENSION.
	EnvPrefix = "ROUTEGEN"

	DefaultSrc       = "src"
	DefaultPages     = "src/pages"
	DefaultOutput    = "src/.generated"
	DefaultRoutes    = "config/route-config.json"
	DefaultModelsDir = "models"
	DefaultExtension = "js"
	DefaultLogLevel  = "info"

	// DefaultDebounce is the quiet period before a batch of changes triggers a run.
	DefaultDebounce = 150 * time.Millisecond
)

// ConfigFiles lists the accepted configuration file names in lookup order.
var ConfigFiles = []string{
	ConfigName + ".json",
	ConfigName + ".yaml",
	ConfigName + ".yml",
	ConfigName + ".toml",
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Config is the routegen project configuration.
type Config struct {
	Paths  PathsConfig  `mapstructure:"paths"`
	Models ModelsConfig `mapstructure:"models"`
	Output OutputConfig `mapstructure:"output"`
	Chunks ChunksConfig `mapstructure:"chunks"`
	Watch  WatchConfig  `mapstructure:"watch"`
	Log    LogConfig    `mapstructure:"log"`

	root       string
	configPath string
}

// PathsConfig holds project paths. Relative paths resolve against the project root.
type PathsConfig struct {
	// Src is the source root. The state-module walk stops at a directory
	// with this base name.
	Src string `mapstructure:"src"`

	// Pages is the directory component references are resolved against.
	Pages string `mapstructure:"pages"`

	// Output receives the generated files. It is deleted and recreated on every run.
	Output string `mapstructure:"output"`

	// Routes is the route tree file.
	Routes string `mapstructure:"routes"`
}

// ModelsConfig controls state-module discovery.
type ModelsConfig struct {
	Dir        string   `mapstructure:"dir"`
	Extensions []string `mapstructure:"extensions"`
}

// OutputConfig controls the generated files.
type OutputConfig struct {
	// Extension of route-config.<ext> and router.<ext>, without the dot.
	Extension string `mapstructure:"extension"`
}

// ChunksConfig names the magic comment and bundle groups of emitted imports.
type ChunksConfig struct {
	Comment string `mapstructure:"comment"`
	Pages   string `mapstructure:"pages"`
	Models  string `mapstructure:"models"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	Ignore   []string      `mapstructure:"ignore"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// DefaultIgnore returns the default watch ignore patterns.
func DefaultIgnore() []string {
	return []string{".git", "node_modules", ".DS_Store", "*.swp", "*.swx", "*~", "#*#", ".#*"}
}

// New creates a Config with default values rooted at dir.
func New(dir string) *Config {
	c := &Config{root: dir}
	c.applyDefaults()
	return c
}

// SetDefaults registers every default with v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("paths.src", DefaultSrc)
	v.SetDefault("paths.pages", DefaultPages)
	v.SetDefault("paths.output", DefaultOutput)
	v.SetDefault("paths.routes", DefaultRoutes)
	v.SetDefault("models.dir", DefaultModelsDir)
	v.SetDefault("models.extensions", []string{"js", "ts"})
	v.SetDefault("output.extension", DefaultExtension)
	v.SetDefault("chunks.comment", "webpackChunkName")
	v.SetDefault("chunks.pages", "pages")
	v.SetDefault("chunks.models", "models")
	v.SetDefault("watch.debounce", DefaultDebounce)
	v.SetDefault("watch.ignore", DefaultIgnore())
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", false)
}

// Load reads configuration for the project rooted at dir.
//
// A .env file in dir is loaded into the environment first; variables that
// are already set win. A missing configuration file is not an error: the
// defaults apply with dir as the project root.
func Load(dir string) (*Config, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.New("E100").Wrap(err)
	}

	envFile := filepath.Join(root, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.New("E100").
				WithLocation(envFile, "").
				WithDetail("Failed to parse .env: " + err.Error())
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	path := findConfigFile(root)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.New("E100").
				WithLocation(path, "").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check the syntax of " + filepath.Base(path))
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New("E100").WithLocation(path, "").Wrap(err)
	}
	cfg.root = root
	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// findConfigFile returns the first configuration file present in dir, or "".
func findConfigFile(dir string) string {
	for _, name := range ConfigFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Exists reports whether a configuration file exists in dir.
func Exists(dir string) bool {
	return findConfigFile(dir) != ""
}

// FindProjectRoot walks up from startDir to the first directory holding a
// configuration file. If none is found, startDir itself is the root.
func FindProjectRoot(startDir string) (string, error) {
	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for dir := start; ; {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration for the project containing the
// current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Paths.Src == "" {
		c.Paths.Src = DefaultSrc
	}
	if c.Paths.Pages == "" {
		c.Paths.Pages = DefaultPages
	}
	if c.Paths.Output == "" {
		c.Paths.Output = DefaultOutput
	}
	if c.Paths.Routes == "" {
		c.Paths.Routes = DefaultRoutes
	}

	if c.Models.Dir == "" {
		c.Models.Dir = DefaultModelsDir
	}
	if c.Models.Extensions == nil {
		c.Models.Extensions = []string{"js", "ts"}
	}
	for i, ext := range c.Models.Extensions {
		c.Models.Extensions[i] = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	}

	c.Output.Extension = strings.TrimPrefix(c.Output.Extension, ".")
	if c.Output.Extension == "" {
		c.Output.Extension = DefaultExtension
	}

	if c.Chunks.Comment == "" {
		c.Chunks.Comment = "webpackChunkName"
	}
	if c.Chunks.Pages == "" {
		c.Chunks.Pages = "pages"
	}
	if c.Chunks.Models == "" {
		c.Chunks.Models = "models"
	}

	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = DefaultDebounce
	}
	if c.Watch.Ignore == nil {
		c.Watch.Ignore = DefaultIgnore()
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Models.Extensions) == 0 {
		return errors.New("E101").
			WithLocation(c.configPath, "models.extensions").
			WithDetail("At least one state-module extension is required.")
	}
	for _, ext := range c.Models.Extensions {
		if !namePattern.MatchString(ext) {
			return invalidName(c.configPath, "models.extensions", ext)
		}
	}
	if !namePattern.MatchString(c.Output.Extension) {
		return invalidName(c.configPath, "output.extension", c.Output.Extension)
	}
	for _, f := range []struct{ key, value string }{
		{"chunks.comment", c.Chunks.Comment},
		{"chunks.pages", c.Chunks.Pages},
		{"chunks.models", c.Chunks.Models},
	} {
		if !namePattern.MatchString(f.value) {
			return invalidName(c.configPath, f.key, f.value)
		}
	}

	out := c.OutputPath()
	for _, p := range []struct{ what, path string }{
		{"source root", c.SrcPath()},
		{"pages directory", c.PagesPath()},
		{"global models directory", c.GlobalModelsDir()},
		{"route file", c.RoutesPath()},
		{"config file", c.Path()},
	} {
		if p.path == "" || !contains(out, p.path) {
			continue
		}
		return errors.New("E101").
			WithLocation(c.configPath, "paths.output").
			WithDetail(fmt.Sprintf("Output directory %s contains the %s %s and is deleted on every run.", out, p.what, p.path)).
			WithSuggestion("Point paths.output at a dedicated directory inside the source root, e.g. src/.generated")
	}
	return nil
}

// contains reports whether path is dir or lies beneath it.
func contains(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func invalidName(file, key, value string) error {
	return errors.New("E101").
		WithLocation(file, key).
		WithDetail(fmt.Sprintf("%s must match [A-Za-z0-9_-]+, got %q.", key, value))
}

// Root returns the project root directory.
func (c *Config) Root() string {
	return c.root
}

// Path returns the path of the configuration file, or "" when defaults are in use.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.root, path)
}

// SrcPath returns the absolute path to the source root.
func (c *Config) SrcPath() string {
	return c.resolve(c.Paths.Src)
}

// PagesPath returns the absolute path to the pages directory.
func (c *Config) PagesPath() string {
	return c.resolve(c.Paths.Pages)
}

// OutputPath returns the absolute path to the output directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Paths.Output)
}

// RoutesPath returns the absolute path to the route tree file.
func (c *Config) RoutesPath() string {
	return c.resolve(c.Paths.Routes)
}

// GlobalModelsDir returns the directory holding the global state modules.
func (c *Config) GlobalModelsDir() string {
	return filepath.Join(c.SrcPath(), c.Models.Dir)
}

// BoundaryName returns the directory name that ends the state-module walk.
func (c *Config) BoundaryName() string {
	return filepath.Base(c.SrcPath())
}

// ConfigFile returns the output file name for the route manifest.
func (c *Config) ConfigFile() string {
	return "route-config." + c.Output.Extension
}

// RouterFile returns the output file name for the bootstrap module.
func (c *Config) RouterFile() string {
	return "router." + c.Output.Extension
}
