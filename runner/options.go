package runner

import (
	"flag"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/hostcollide/common/customheader"
	"github.com/projectdiscovery/hostcollide/common/fileutil"
	"go.uber.org/multierr"
)

const (
	DefaultOutput  = "hosts_ok.csv"
	DefaultThreads = 20
	DefaultTimeout = 15
)

// Options contains configuration options for hostcollide.
type Options struct {
	CustomHeaders  customheader.CustomHeaders
	DomainFile     string
	IPFile         string
	Output         string
	HTTPProxy      string
	Threads        int
	Timeout        int
	RandomAgent    bool
	ShowStatistics bool
	Silent         bool
	Version        bool
	Verbose        bool
	Debug          bool
	NoColor        bool

	// StatusWriter receives the progress line, os.Stderr when nil
	StatusWriter io.Writer
}

// ParseOptions parses the command line options for application
func ParseOptions() *Options {
	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	options := newOptions(flagSet)

	if len(os.Args) < 2 {
		flagSet.Usage()
		os.Exit(1)
	}
	if err := parseArgs(flagSet, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Read the inputs and configure the logging
	options.configureOutput()

	showBanner()

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version)
		os.Exit(0)
	}

	if err := options.ValidateOptions(); err != nil {
		gologger.Fatal().Msgf("Program exiting: %s\n", err)
	}

	return options
}

func newOptions(flagSet *flag.FlagSet) *Options {
	options := &Options{}

	flagSet.StringVar(&options.DomainFile, "furl", "", "File containing the domains to present as Host header (required)")
	flagSet.StringVar(&options.IPFile, "fip", "", "File containing the ips (or cidr ranges) to connect to (required)")
	flagSet.StringVar(&options.Output, "output", DefaultOutput, "CSV file to write results to")
	flagSet.StringVar(&options.Output, "o", DefaultOutput, "CSV file to write results to (shorthand)")
	flagSet.IntVar(&options.Threads, "threads", DefaultThreads, "Number of concurrent workers")
	flagSet.IntVar(&options.Threads, "t", DefaultThreads, "Number of concurrent workers (shorthand)")
	flagSet.IntVar(&options.Timeout, "timeout", DefaultTimeout, "Timeout in seconds")
	flagSet.Var(&options.CustomHeaders, "H", "Custom Header")
	flagSet.StringVar(&options.HTTPProxy, "http-proxy", "", "HTTP Proxy, eg http://127.0.0.1:8080")
	flagSet.BoolVar(&options.RandomAgent, "random-agent", false, "Use randomly selected HTTP User-Agent header value")
	flagSet.BoolVar(&options.ShowStatistics, "stats", false, "Display request statistics periodically")
	flagSet.BoolVar(&options.Silent, "silent", false, "Silent mode")
	flagSet.BoolVar(&options.Version, "version", false, "Show version of hostcollide")
	flagSet.BoolVar(&options.Verbose, "verbose", false, "Verbose Mode")
	flagSet.BoolVar(&options.Debug, "debug", false, "Debug mode")
	flagSet.BoolVar(&options.NoColor, "no-color", false, "No Color")

	return options
}

// parseArgs rejects stray positional arguments along with malformed flags
func parseArgs(flagSet *flag.FlagSet, args []string) error {
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		flagSet.Usage()
		return errors.Errorf("unexpected arguments: %v", flagSet.Args())
	}
	return nil
}

// ValidateOptions reports every invalid option at once
func (options *Options) ValidateOptions() error {
	var errs error
	errs = multierr.Append(errs, validateInputFile("-furl", options.DomainFile))
	errs = multierr.Append(errs, validateInputFile("-fip", options.IPFile))
	if options.Threads < 1 {
		errs = multierr.Append(errs, errors.Errorf("invalid thread count %d", options.Threads))
	}
	if options.Timeout < 1 {
		errs = multierr.Append(errs, errors.Errorf("invalid timeout %d", options.Timeout))
	}
	if options.Output == "" {
		errs = multierr.Append(errs, errors.New("output file can't be empty"))
	}
	if options.CustomHeaders.Has("host") {
		gologger.Warning().Msgf("Custom Host header is ignored, every domain of -furl is sent as Host\n")
	}
	return errs
}

func validateInputFile(flagName, path string) error {
	if path == "" {
		return errors.Errorf("%s is required", flagName)
	}
	if !fileutil.FileExists(path) {
		return errors.Errorf("file %s does not exist", path)
	}
	return nil
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	// If the user desires verbose output, show verbose output
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.Debug {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}
