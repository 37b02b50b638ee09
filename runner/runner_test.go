package runner

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/projectdiscovery/clistats"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.Nil(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644))
	return path
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.Nil(t, err)
	defer f.Close()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(csvHeader)
	rows, err := reader.ReadAll()
	require.Nil(t, err, "output must only contain complete rows")
	require.NotEmpty(t, rows)
	require.Equal(t, csvHeader, rows[0])
	return rows[1:]
}

// vhostServer answers every request with the received Host header as title
func vhostServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	router := httprouter.New()
	router.GET("/", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		fmt.Fprintf(w, "<html><head><title>%s</title></head></html>", r.Host)
	})
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, strings.TrimPrefix(ts.URL, "http://")
}

// refusedAddress returns an address nothing listens on
func refusedAddress(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.Nil(t, err)
	address := listener.Addr().String()
	require.Nil(t, listener.Close())
	return address
}

func newTestRunner(t *testing.T, domains, ips []string, threads int) (*Runner, string) {
	t.Helper()
	dir := t.TempDir()
	options := &Options{
		DomainFile:   writeList(t, dir, "domains.txt", domains...),
		IPFile:       writeList(t, dir, "ips.txt", ips...),
		Output:       filepath.Join(dir, "hosts_ok.csv"),
		Threads:      threads,
		Timeout:      5,
		NoColor:      true,
		StatusWriter: io.Discard,
	}
	r, err := New(options)
	require.Nil(t, err, "could not create runner")
	t.Cleanup(r.Close)
	return r, options.Output
}

func TestRunner_single_pair(t *testing.T) {
	_, address := vhostServer(t)
	r, output := newTestRunner(t, []string{"example.com"}, []string{address}, 1)

	require.Nil(t, r.RunEnumeration())

	rows := readRows(t, output)
	require.Len(t, rows, 2)

	// http attempt first, then https
	require.Equal(t, []string{address, "example.com", "http://example.com", "200"}, rows[0][:4])
	require.Equal(t, "example.com", rows[0][5], "the domain must be sent as Host header")
	size, err := strconv.Atoi(rows[0][4])
	require.Nil(t, err)
	require.Greater(t, size, 0)
	_, err = time.Parse(timestampLayout, rows[0][6])
	require.Nil(t, err)

	// the listener only speaks plain http
	require.Equal(t, []string{address, "example.com", "https://example.com", errorStatus, "0"}, rows[1][:5])

	require.Len(t, r.Successes(), 1)
	require.Contains(t, r.Successes()[0], "status:200")
}

func TestRunner_row_count(t *testing.T) {
	_, address := vhostServer(t)
	domains := []string{"a.example.com", "b.example.com", "c.example.com"}
	ips := []string{address, refusedAddress(t)}
	r, output := newTestRunner(t, domains, ips, 4)

	require.Len(t, r.Tasks(), len(domains)*len(ips))
	require.Nil(t, r.RunEnumeration())

	rows := readRows(t, output)
	require.Len(t, rows, 2*len(domains)*len(ips))
	attempted, _, total := r.collector.Counts()
	require.Equal(t, len(rows), attempted)
	require.Equal(t, len(rows), total)

	for _, row := range rows {
		if row[3] == errorStatus {
			require.Equal(t, "0", row[4])
			require.NotEmpty(t, row[5])
			continue
		}
		_, err := strconv.Atoi(row[3])
		require.Nil(t, err, "status must be a number or %s", errorStatus)
	}
	// every domain gets exactly one success: http against the live server
	require.Len(t, r.Successes(), len(domains))
}

func TestRunner_refused_connection(t *testing.T) {
	address := refusedAddress(t)
	r, output := newTestRunner(t, []string{"example.com"}, []string{address}, 1)

	require.Nil(t, r.RunEnumeration())

	rows := readRows(t, output)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Equal(t, errorStatus, row[3])
		require.Equal(t, "0", row[4])
		require.LessOrEqual(t, len([]rune(row[5])), maxCSVErrorLength)
		require.NotContains(t, row[5], "giving up", "the transport reason must be recorded")
	}
	require.Empty(t, r.Successes())
}

func TestRunner_output_is_overwritten(t *testing.T) {
	_, address := vhostServer(t)
	r, output := newTestRunner(t, []string{"example.com"}, []string{address}, 2)

	require.Nil(t, r.RunEnumeration())
	require.Nil(t, r.RunEnumeration())

	content, err := os.ReadFile(output)
	require.Nil(t, err)
	require.Equal(t, 1, strings.Count(string(content), strings.Join(csvHeader, ",")))
	require.Len(t, readRows(t, output), 2)
}

func TestRunner_same_rows_for_any_thread_count(t *testing.T) {
	_, address := vhostServer(t)
	domains := []string{"a.example.com", "b.example.com", "c.example.com", "d.example.com"}
	ips := []string{address, refusedAddress(t)}

	rowsFor := func(threads int) []string {
		r, output := newTestRunner(t, domains, ips, threads)
		require.Nil(t, r.RunEnumeration())
		var lines []string
		for _, row := range readRows(t, output) {
			// drop the timestamp
			lines = append(lines, strings.Join(row[:6], ","))
		}
		sort.Strings(lines)
		return lines
	}

	single := rowsFor(1)
	require.Len(t, single, 2*len(domains)*len(ips))
	require.Equal(t, single, rowsFor(50))
}

func TestRunner_more_threads_than_tasks(t *testing.T) {
	_, address := vhostServer(t)
	r, output := newTestRunner(t, []string{"example.com"}, []string{address}, 100)

	require.Nil(t, r.RunEnumeration())
	require.Len(t, readRows(t, output), 2)
}

func TestRunner_empty_lists(t *testing.T) {
	r, output := newTestRunner(t, nil, []string{"127.0.0.1"}, 5)

	require.Empty(t, r.Tasks())
	require.Nil(t, r.RunEnumeration())
	require.Empty(t, readRows(t, output))
}

func TestRunner_cidr_ip_list(t *testing.T) {
	r, _ := newTestRunner(t, []string{"example.com"}, []string{"173.0.84.0/30", "10.0.0.1", "origin.example.com"}, 1)

	var ips []string
	for _, task := range r.Tasks() {
		ips = append(ips, task.IP)
	}
	require.ElementsMatch(t, []string{"173.0.84.0", "173.0.84.1", "173.0.84.2", "173.0.84.3", "10.0.0.1"}, ips)
}

func TestRunner_missing_input(t *testing.T) {
	dir := t.TempDir()
	options := &Options{
		DomainFile: filepath.Join(dir, "missing.txt"),
		IPFile:     writeList(t, dir, "ips.txt", "127.0.0.1"),
		Output:     filepath.Join(dir, "out.csv"),
	}
	_, err := New(options)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "could not read domain list")

	_, statErr := os.Stat(options.Output)
	require.True(t, os.IsNotExist(statErr), "nothing must be written before the inputs are loaded")
}

func TestRunner_stats_go_through_collector(t *testing.T) {
	r, output := newTestRunner(t, []string{"example.com"}, []string{"127.0.0.1"}, 1)
	writer, err := NewCSVWriter(output)
	require.Nil(t, err)
	var buf bytes.Buffer
	r.collector = NewCollector(writer, NewProgress(&buf, 10, false), true)

	stats, err := clistats.New()
	require.Nil(t, err)
	stats.AddStatic("tasks", 5)
	stats.AddStatic("startedAt", time.Now().Add(-time.Second))
	stats.AddCounter("requests", 3)
	stats.AddCounter("total", 10)

	r.makePrintCallback()(stats)

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "\rprogress: 0/10 | succeeded: 0", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "["))
	require.Contains(t, lines[1], "| Tasks: 5 |")
	require.True(t, strings.HasSuffix(lines[1], "| Requests: 3/10 (30%)"))
	require.Equal(t, "\rprogress: 0/10 | succeeded: 0", lines[2])
}
