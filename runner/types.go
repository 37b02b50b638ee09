package runner

import (
	"fmt"
	"strconv"
	"time"

	"github.com/projectdiscovery/hostcollide/common/stringz"
)

const (
	errorStatus     = "ERROR"
	timestampLayout = "2006-01-02 15:04:05"

	maxCSVErrorLength = 100
	maxLogErrorLength = 50
)

// csvHeader is the first row of every output file
var csvHeader = []string{"IP", "Domain", "URL", "StatusCode", "ResponseSize", "Title", "Timestamp"}

// Result of a single scheme attempt against a task
type Result struct {
	Timestamp     time.Time
	IP            string
	Domain        string
	URL           string
	Scheme        string
	Title         string
	Error         string
	StatusCode    int
	ContentLength int
	Failed        bool
}

// CSVRow renders the result as an output row
func (r Result) CSVRow() []string {
	timestamp := r.Timestamp.Format(timestampLayout)
	if r.Failed {
		return []string{r.IP, r.Domain, r.URL, errorStatus, "0", stringz.Truncate(r.Error, maxCSVErrorLength), timestamp}
	}
	return []string{
		r.IP,
		r.Domain,
		r.URL,
		strconv.Itoa(r.StatusCode),
		strconv.Itoa(r.ContentLength),
		r.Title,
		timestamp,
	}
}

// String returns the live log line of the result
func (r Result) String() string {
	if r.Failed {
		return fmt.Sprintf("%s\t%s -- %s  failed: %s", r.IP, r.Domain, r.URL, stringz.Truncate(r.Error, maxLogErrorLength))
	}
	return fmt.Sprintf("%s\t%s -- %s status:%d size:%d title:%s", r.IP, r.Domain, r.URL, r.StatusCode, r.ContentLength, r.Title)
}
