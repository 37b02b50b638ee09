package main

import (
	"os"
	"os/signal"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/hostcollide/runner"
)

func main() {
	// Parse the command line flags and read config files
	options := runner.ParseOptions()

	run, err := runner.New(options)
	if err != nil {
		gologger.Fatal().Msgf("Could not create runner: %s\n", err)
	}

	// Setup graceful exits
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			gologger.Info().Msgf("CTRL+C pressed: stopping, waiting for in-flight probes\n")
			run.Interrupt()
		}
	}()

	if err := run.RunEnumeration(); err != nil {
		run.Close()
		gologger.Fatal().Msgf("Could not run enumeration: %s\n", err)
	}
	signal.Stop(c)

	if run.IsInterrupted() {
		gologger.Warning().Msgf("Probing interrupted by user, remaining tasks were skipped\n")
	}
	run.ShowSummary()
	run.Close()
}
