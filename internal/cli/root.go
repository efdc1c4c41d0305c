package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	mauvaise "github.com/rohmanhakim/mauvaise-langue"
	"github.com/rohmanhakim/mauvaise-langue/internal/config"
	"github.com/rohmanhakim/mauvaise-langue/internal/metadata"
	"github.com/spf13/cobra"
)

var (
	cfgFile          string
	cacheFile        string
	baseURL          string
	timeout          time.Duration
	userAgent        string
	maxAttempt       int
	definitionFormat string
	verbose          bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mauvaise-langue",
	Short: "Scrape, detect and define French insults from Wiktionary.",
	Long: `mauvaise-langue reads the French Wiktionary category of insults,
keeps the list in a local JSON cache, reports which known insults occur
in a text and fetches the definition of a single insult.

Fetches are sequential and unauthenticated. Failures never abort a command:
they surface as an empty list or as a French message.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the command tree with explicit arguments and writers.
func ExecuteWithArgs(args []string, out io.Writer, errOut io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path, JSON or YAML (e.g., ~/.config/mauvaise-langue/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&cacheFile, "cache-file", "", "insult cache file (default insultes_cache.json)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "wiki base URL (default https://fr.wiktionary.org)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for each HTTP request (default 10s)")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().IntVar(&maxAttempt, "max-attempt", 0, "attempts per request on transport failure (default 1, no retry)")
	rootCmd.PersistentFlags().StringVar(&definitionFormat, "format", "", "definition output format: text or markdown")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write logfmt events to stderr")

	rootCmd.AddCommand(scrapeCmd, detectCmd, defineCmd, versionCmd)
}

// InitConfigWithError resolves the configuration, returning any errors.
// The base is --config-file, else the XDG config file, else the defaults.
// Flags set on the command line are applied on top of that base.
func InitConfigWithError() (config.Config, error) {
	configBuilder := config.WithDefault()

	path := cfgFile
	if path == "" {
		path, _ = config.FindConfigFile(config.XDGConfigDir())
	}
	if path != "" {
		fileCfg, err := config.WithConfigFile(path)
		if err != nil {
			return fileCfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		configBuilder = fileCfg.Builder()
	}

	if cacheFile != "" {
		configBuilder = configBuilder.WithCacheFile(cacheFile)
	}

	if baseURL != "" {
		configBuilder = configBuilder.WithBaseURL(baseURL)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if maxAttempt > 0 {
		configBuilder = configBuilder.WithMaxAttempt(maxAttempt)
	}

	if definitionFormat != "" {
		configBuilder = configBuilder.WithDefinitionFormat(definitionFormat)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newClient builds the client shared by the subcommands.
func newClient(cmd *cobra.Command) (*mauvaise.Client, error) {
	cfg, err := InitConfigWithError()
	if err != nil {
		return nil, err
	}

	var sink metadata.MetadataSink = &metadata.NoopSink{}
	if verbose {
		sink = metadata.NewRecorder(cmd.ErrOrStderr())
	}
	return mauvaise.New(cfg, mauvaise.WithMetadataSink(sink)), nil
}

func ResetFlags() {
	cfgFile = ""
	cacheFile = ""
	baseURL = ""
	timeout = 0
	userAgent = ""
	maxAttempt = 0
	definitionFormat = ""
	verbose = false
	jsonOutput = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetCacheFileForTest(path string) {
	cacheFile = path
}

func SetBaseURLForTest(url string) {
	baseURL = url
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetMaxAttemptForTest(attempts int) {
	maxAttempt = attempts
}

func SetFormatForTest(format string) {
	definitionFormat = format
}
