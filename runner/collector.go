package runner

import (
	"sync"

	"github.com/logrusorgru/aurora"
	"github.com/projectdiscovery/gologger"
)

// Collector owns every piece of state shared by the workers: the csv output,
// the progress line and the list of successes. A result is recorded in one
// critical section.
type Collector struct {
	mu        sync.Mutex
	writer    *CSVWriter
	progress  *Progress
	successes []string
	aurora    aurora.Aurora
}

// NewCollector creates a collector writing to writer and reporting on progress
func NewCollector(writer *CSVWriter, progress *Progress, noColor bool) *Collector {
	return &Collector{
		writer:   writer,
		progress: progress,
		aurora:   aurora.NewAurora(!noColor),
	}
}

// Record writes the result row, echoes it and advances the counters
func (c *Collector) Record(result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.writer.Append(result.CSVRow()); err != nil {
		gologger.Error().Msgf("Could not write result for %s: %s\n", result.URL, err)
	}

	line := result.String()
	if result.Failed {
		c.progress.LogLine(c.aurora.Red(line).String())
		c.progress.Advance()
		return
	}
	c.successes = append(c.successes, line)
	c.progress.LogLine(c.aurora.Green(line).String())
	c.progress.Advance()
	c.progress.AdvanceSuccess()
}

// Successes returns the summary lines of every successful attempt
func (c *Collector) Successes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	successes := make([]string, len(c.successes))
	copy(successes, c.successes)
	return successes
}

// LogLine prints msg above the progress line
func (c *Collector) LogLine(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.progress.LogLine(msg)
}

// Counts returns the attempted, succeeded and total attempts
func (c *Collector) Counts() (attempted, succeeded, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.progress.Attempted(), c.progress.Succeeded(), c.progress.Total()
}

// Close terminates the progress line
func (c *Collector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.progress.Close()
}
