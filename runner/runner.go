package runner

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/projectdiscovery/clistats"
	// automatic fd max increase if running as root
	_ "github.com/projectdiscovery/fdmax/autofdmax"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/hostcollide/common/fileutil"
	"github.com/projectdiscovery/hostcollide/common/httpx"
	"github.com/remeh/sizedwaitgroup"
)

const (
	statsDisplayInterval = 5
)

// Runner is a client for running the collision probing process.
type Runner struct {
	options   *Options
	hp        *httpx.HTTPX
	prober    *prober
	tasks     []Task
	collector *Collector
	stats     clistats.StatisticsClient

	// ctx is cancelled by Interrupt, probes already dispatched never see it
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new client for running the probing process. Both input
// lists are loaded here so that unreadable files abort before any request.
func New(options *Options) (*Runner, error) {
	runner := &Runner{
		options: options,
	}
	runner.ctx, runner.cancel = context.WithCancel(context.Background())

	if options.Threads <= 0 {
		options.Threads = DefaultThreads
	}
	if options.Output == "" {
		options.Output = DefaultOutput
	}

	httpxOptions := httpx.DefaultOptions
	if options.Timeout > 0 {
		httpxOptions.Timeout = time.Duration(options.Timeout) * time.Second
	}
	httpxOptions.RandomAgent = options.RandomAgent
	httpxOptions.HTTPProxy = options.HTTPProxy
	httpxOptions.CustomHeaders = options.CustomHeaders.Map()

	var err error
	runner.hp, err = httpx.New(&httpxOptions)
	if err != nil {
		return nil, errors.Wrap(err, "could not create httpx instance")
	}
	runner.prober = &prober{hp: runner.hp}

	if err := runner.prepareInput(); err != nil {
		runner.hp.Close()
		return nil, err
	}

	if options.ShowStatistics {
		runner.stats, err = clistats.New()
		if err != nil {
			runner.hp.Close()
			return nil, errors.Wrap(err, "could not create statistics client")
		}
	}

	return runner, nil
}

func (r *Runner) prepareInput() error {
	domains, err := fileutil.LoadLines(r.options.DomainFile)
	if err != nil {
		return errors.Wrap(err, "could not read domain list")
	}
	ips, err := fileutil.LoadLines(r.options.IPFile)
	if err != nil {
		return errors.Wrap(err, "could not read ip list")
	}
	r.tasks = GenerateTasks(domains, expandIPs(ips))

	gologger.Info().Msgf("Domain list: %s (%d), IP list: %s (%d)\n", r.options.DomainFile, len(domains), r.options.IPFile, len(ips))
	gologger.Info().Msgf("Output: %s, Tasks: %d, Threads: %d\n", r.options.Output, len(r.tasks), r.options.Threads)
	return nil
}

// Tasks returns the generated task list
func (r *Runner) Tasks() []Task {
	return r.tasks
}

// RunEnumeration probes every task and blocks until all dispatched probes
// are done. After Interrupt no further task is dispatched.
func (r *Runner) RunEnumeration() error {
	writer, err := NewCSVWriter(r.options.Output)
	if err != nil {
		return err
	}

	total := len(r.tasks) * len(httpx.Schemes)
	progress := NewProgress(r.statusWriter(), total, r.options.Silent)
	r.collector = NewCollector(writer, progress, r.options.NoColor)
	defer r.collector.Close()

	if r.stats != nil {
		r.startStats(total)
		defer r.stopStats()
	}

	wg := sizedwaitgroup.New(r.options.Threads)
	for _, task := range r.tasks {
		if r.IsInterrupted() {
			break
		}
		if err := wg.AddWithContext(r.ctx); err != nil {
			break
		}
		// a slot may free up in the same instant the run is interrupted
		if r.IsInterrupted() {
			wg.Done()
			break
		}
		go func(task Task) {
			defer wg.Done()
			r.prober.probe(context.Background(), task, r.onResult)
		}(task)
	}

	wg.Wait()
	return nil
}

func (r *Runner) onResult(result Result) {
	r.collector.Record(result)
	if r.stats != nil {
		r.stats.IncrementCounter("requests", 1)
	}
}

func (r *Runner) statusWriter() io.Writer {
	if r.options.StatusWriter != nil {
		return r.options.StatusWriter
	}
	return os.Stderr
}

// Interrupt stops the dispatch of new tasks
func (r *Runner) Interrupt() {
	r.cancel()
}

// IsInterrupted reports whether Interrupt has been called
func (r *Runner) IsInterrupted() bool {
	return r.ctx.Err() != nil
}

// Successes returns the summary line of every successful attempt
func (r *Runner) Successes() []string {
	if r.collector == nil {
		return nil
	}
	return r.collector.Successes()
}

// ShowSummary prints the successful attempts and the output location
func (r *Runner) ShowSummary() {
	separator := strings.Repeat("=", 60)
	gologger.Info().Msgf("%s\n", separator)
	gologger.Info().Msgf("Successful matches:\n")
	for _, success := range r.Successes() {
		gologger.Silent().Msgf("%s\n", success)
	}
	gologger.Info().Msgf("%s\n", separator)
	if r.collector != nil {
		attempted, succeeded, total := r.collector.Counts()
		gologger.Info().Msgf("Attempts: %d/%d, succeeded: %d\n", attempted, total, succeeded)
	}
	gologger.Info().Msgf("All results saved to: %s\n", r.options.Output)
}

func (r *Runner) startStats(total int) {
	r.stats.AddStatic("tasks", len(r.tasks))
	r.stats.AddStatic("startedAt", time.Now())
	r.stats.AddCounter("requests", 0)
	r.stats.AddCounter("total", uint64(total))
	if err := r.stats.Start(r.makePrintCallback(), time.Duration(statsDisplayInterval)*time.Second); err != nil {
		gologger.Warning().Msgf("Could not create statistic: %s\n", err)
	}
}

func (r *Runner) stopStats() {
	if err := r.stats.Stop(); err != nil {
		gologger.Warning().Msgf("Could not stop statistic: %s\n", err)
	}
}

// makePrintCallback renders the statistics through the collector so the
// line never lands in the middle of the progress line
func (r *Runner) makePrintCallback() func(stats clistats.StatisticsClient) {
	builder := &strings.Builder{}
	return func(stats clistats.StatisticsClient) {
		builder.WriteRune('[')
		startedAt, _ := stats.GetStatic("startedAt")
		duration := time.Since(startedAt.(time.Time))
		builder.WriteString(clistats.FmtDuration(duration))
		builder.WriteRune(']')

		tasks, _ := stats.GetStatic("tasks")
		builder.WriteString(" | Tasks: ")
		builder.WriteString(clistats.String(tasks))

		requests, _ := stats.GetCounter("requests")
		total, _ := stats.GetCounter("total")

		builder.WriteString(" | RPS: ")
		builder.WriteString(clistats.String(uint64(float64(requests) / duration.Seconds())))

		builder.WriteString(" | Requests: ")
		builder.WriteString(clistats.String(requests))
		builder.WriteRune('/')
		builder.WriteString(clistats.String(total))
		if total > 0 {
			builder.WriteString(" (")
			//nolint:gomnd // this is not a magic number
			builder.WriteString(clistats.String(uint64(float64(requests) / float64(total) * 100.0)))
			builder.WriteString("%)")
		}

		r.collector.LogLine(builder.String())
		builder.Reset()
	}
}

// Close releases the runner resources
func (r *Runner) Close() {
	r.cancel()
	r.hp.Close()
}
