package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rohmanhakim/mauvaise-langue/internal/build"
	"github.com/rohmanhakim/mauvaise-langue/pkg/fileutil"
	"github.com/rohmanhakim/mauvaise-langue/pkg/urlutil"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "mauvaise-langue"

	DefaultBaseURL       = "https://fr.wiktionary.org"
	DefaultCategoryPath  = "/wiki/Cat%C3%A9gorie:Insultes_en_fran%C3%A7ais"
	DefaultCategoryTitle = "Catégorie:Insultes en français"
	DefaultContainerID   = "mw-pages"
	DefaultNextPageText  = "page suivante"
	DefaultWikiPrefix    = "/wiki/"
	DefaultCacheFile     = "insultes_cache.json"

	FormatText     = "text"
	FormatMarkdown = "markdown"
)

type Config struct {
	//===============
	//  Wiki
	//===============
	// Scheme and host every path is appended to, without trailing slash.
	baseURL string
	// First page of the insult category listing.
	categoryPath string
	// Display title of the category; links carrying it are not insults.
	categoryTitle string
	// DOM id of the element listing the category members.
	containerID string
	// Exact text of the link to the next listing page.
	nextPageText string
	// Path prefix of a term page; the raw term is appended to it.
	wikiPathPrefix string

	//===============
	// Cache
	//===============
	// JSON file holding the last scraped insult list.
	cacheFile string

	//===============
	// Fetch
	//===============
	// Maximum time of a single request
	timeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string
	// Attempts per request. 1 means a failed request is not retried.
	maxAttempt int
	// Randomized variation added on top of each backoff delay.
	jitter time.Duration
	// Controls the random number generator
	randomSeed int64
	// initial delay for backoff
	backoffInitialDuration time.Duration
	// multiplier during exponential backoff
	backoffMultiplier float64
	// capped maximum delay for backoff to stop exponential multiplication
	backoffMaxDuration time.Duration

	//===============
	// Output
	//===============
	// How definitions are rendered: "text" or "markdown".
	definitionFormat string
}

type configDTO struct {
	BaseURL                string        `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	CategoryPath           string        `json:"categoryPath,omitempty" yaml:"categoryPath,omitempty"`
	CategoryTitle          string        `json:"categoryTitle,omitempty" yaml:"categoryTitle,omitempty"`
	ContainerID            string        `json:"containerId,omitempty" yaml:"containerId,omitempty"`
	NextPageText           string        `json:"nextPageText,omitempty" yaml:"nextPageText,omitempty"`
	WikiPathPrefix         string        `json:"wikiPathPrefix,omitempty" yaml:"wikiPathPrefix,omitempty"`
	CacheFile              string        `json:"cacheFile,omitempty" yaml:"cacheFile,omitempty"`
	Timeout                time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	UserAgent              string        `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	MaxAttempt             int           `json:"maxAttempt,omitempty" yaml:"maxAttempt,omitempty"`
	Jitter                 time.Duration `json:"jitter,omitempty" yaml:"jitter,omitempty"`
	RandomSeed             int64         `json:"randomSeed,omitempty" yaml:"randomSeed,omitempty"`
	BackoffInitialDuration time.Duration `json:"backoffInitialDuration,omitempty" yaml:"backoffInitialDuration,omitempty"`
	BackoffMultiplier      float64       `json:"backoffMultiplier,omitempty" yaml:"backoffMultiplier,omitempty"`
	BackoffMaxDuration     time.Duration `json:"backoffMaxDuration,omitempty" yaml:"backoffMaxDuration,omitempty"`
	DefinitionFormat       string        `json:"definitionFormat,omitempty" yaml:"definitionFormat,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := WithDefault()

	// only override if non-zero value is provided
	if dto.BaseURL != "" {
		cfg.WithBaseURL(dto.BaseURL)
	}
	if dto.CategoryPath != "" {
		cfg.categoryPath = dto.CategoryPath
	}
	if dto.CategoryTitle != "" {
		cfg.categoryTitle = dto.CategoryTitle
	}
	if dto.ContainerID != "" {
		cfg.containerID = dto.ContainerID
	}
	if dto.NextPageText != "" {
		cfg.nextPageText = dto.NextPageText
	}
	if dto.WikiPathPrefix != "" {
		cfg.wikiPathPrefix = dto.WikiPathPrefix
	}
	if dto.CacheFile != "" {
		cfg.cacheFile = dto.CacheFile
	}
	if dto.Timeout != 0 {
		cfg.timeout = dto.Timeout
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.MaxAttempt != 0 {
		cfg.maxAttempt = dto.MaxAttempt
	}
	if dto.Jitter != 0 {
		cfg.jitter = dto.Jitter
	}
	if dto.RandomSeed != 0 {
		cfg.randomSeed = dto.RandomSeed
	}
	if dto.BackoffInitialDuration != 0 {
		cfg.backoffInitialDuration = dto.BackoffInitialDuration
	}
	if dto.BackoffMultiplier != 0 {
		cfg.backoffMultiplier = dto.BackoffMultiplier
	}
	if dto.BackoffMaxDuration != 0 {
		cfg.backoffMaxDuration = dto.BackoffMaxDuration
	}
	if dto.DefinitionFormat != "" {
		cfg.definitionFormat = dto.DefinitionFormat
	}

	return cfg.Build()
}

// WithConfigFile loads a JSON config file, or a YAML one when the
// extension is .yaml or .yml. Missing keys keep their default value.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	default:
		err = json.Unmarshal(configContent, &cfgDTO)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// XDGConfigDir returns the per-user config directory of the application.
// On Linux: ~/.config/mauvaise-langue
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// FindConfigFile returns the first of config.yaml, config.yml or
// config.json present in dir.
func FindConfigFile(dir string) (string, bool) {
	for _, name := range []string{"config.yaml", "config.yml", "config.json"} {
		candidate := filepath.Join(dir, name)
		if fileutil.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// WithDefault creates a new Config targeting the French Wiktionary insult
// category, with a 10 second timeout, no retry and a cache file in the
// working directory.
func WithDefault() *Config {
	defaultConfig := Config{
		baseURL:                DefaultBaseURL,
		categoryPath:           DefaultCategoryPath,
		categoryTitle:          DefaultCategoryTitle,
		containerID:            DefaultContainerID,
		nextPageText:           DefaultNextPageText,
		wikiPathPrefix:         DefaultWikiPrefix,
		cacheFile:              DefaultCacheFile,
		timeout:                10 * time.Second,
		userAgent:              build.UserAgent(),
		maxAttempt:             1,
		jitter:                 250 * time.Millisecond,
		randomSeed:             time.Now().UnixNano(),
		backoffInitialDuration: 500 * time.Millisecond,
		backoffMultiplier:      2.0,
		backoffMaxDuration:     5 * time.Second,
		definitionFormat:       FormatText,
	}
	return &defaultConfig
}

func (c *Config) WithBaseURL(baseURL string) *Config {
	c.baseURL = urlutil.TrimTrailingSlash(baseURL)
	return c
}

func (c *Config) WithCategoryPath(path string) *Config {
	c.categoryPath = path
	return c
}

func (c *Config) WithCategoryTitle(title string) *Config {
	c.categoryTitle = title
	return c
}

func (c *Config) WithCacheFile(path string) *Config {
	c.cacheFile = path
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithMaxAttempt(attempts int) *Config {
	c.maxAttempt = attempts
	return c
}

func (c *Config) WithJitter(jitter time.Duration) *Config {
	c.jitter = jitter
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithBackoffInitialDuration(duration time.Duration) *Config {
	c.backoffInitialDuration = duration
	return c
}

func (c *Config) WithBackoffMultiplier(multiplier float64) *Config {
	c.backoffMultiplier = multiplier
	return c
}

func (c *Config) WithBackoffMaxDuration(duration time.Duration) *Config {
	c.backoffMaxDuration = duration
	return c
}

func (c *Config) WithDefinitionFormat(format string) *Config {
	c.definitionFormat = format
	return c
}

// Builder returns a mutable copy of c so that further With... overrides
// can be applied before building again.
func (c Config) Builder() *Config {
	builder := c
	return &builder
}

func (c *Config) Build() (Config, error) {
	if !urlutil.IsAbsolute(c.baseURL) {
		return Config{}, fmt.Errorf("%w: baseUrl must be an absolute http(s) URL, got %q", ErrInvalidConfig, c.baseURL)
	}
	if c.categoryPath == "" {
		return Config{}, fmt.Errorf("%w: categoryPath cannot be empty", ErrInvalidConfig)
	}
	if c.cacheFile == "" {
		return Config{}, fmt.Errorf("%w: cacheFile cannot be empty", ErrInvalidConfig)
	}
	if c.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalidConfig, c.timeout)
	}
	if c.maxAttempt < 1 {
		return Config{}, fmt.Errorf("%w: maxAttempt must be at least 1, got %d", ErrInvalidConfig, c.maxAttempt)
	}
	if c.definitionFormat != FormatText && c.definitionFormat != FormatMarkdown {
		return Config{}, fmt.Errorf("%w: definitionFormat must be %q or %q, got %q",
			ErrInvalidConfig, FormatText, FormatMarkdown, c.definitionFormat)
	}
	return *c, nil
}

func (c Config) BaseURL() string {
	return c.baseURL
}

func (c Config) CategoryPath() string {
	return c.categoryPath
}

func (c Config) CategoryTitle() string {
	return c.categoryTitle
}

func (c Config) ContainerID() string {
	return c.containerID
}

func (c Config) NextPageText() string {
	return c.nextPageText
}

func (c Config) WikiPathPrefix() string {
	return c.wikiPathPrefix
}

func (c Config) CacheFile() string {
	return c.cacheFile
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) MaxAttempt() int {
	return c.maxAttempt
}

func (c Config) Jitter() time.Duration {
	return c.jitter
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) BackoffInitialDuration() time.Duration {
	return c.backoffInitialDuration
}

func (c Config) BackoffMultiplier() float64 {
	return c.backoffMultiplier
}

func (c Config) BackoffMaxDuration() time.Duration {
	return c.backoffMaxDuration
}

func (c Config) DefinitionFormat() string {
	return c.definitionFormat
}
