package testutils

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Lists holds the input and output files of a single hostcollide invocation
type Lists struct {
	Dir        string
	DomainFile string
	IPFile     string
	Output     string
}

// NewLists writes domains and ips to a fresh temporary directory
func NewLists(domains, ips []string) (*Lists, error) {
	dir, err := os.MkdirTemp("", "hostcollide-integration-")
	if err != nil {
		return nil, err
	}
	lists := &Lists{
		Dir:        dir,
		DomainFile: filepath.Join(dir, "domains.txt"),
		IPFile:     filepath.Join(dir, "ips.txt"),
		Output:     filepath.Join(dir, "hosts_ok.csv"),
	}
	if err := os.WriteFile(lists.DomainFile, []byte(strings.Join(domains, "\n")), 0644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(lists.IPFile, []byte(strings.Join(ips, "\n")), 0644); err != nil {
		return nil, err
	}
	return lists, nil
}

// Cleanup removes the temporary directory
func (l *Lists) Cleanup() {
	os.RemoveAll(l.Dir)
}

// Rows returns the output rows without the header
func (l *Lists) Rows() ([][]string, error) {
	f, err := os.Open(l.Output)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing csv header")
	}
	return rows[1:], nil
}

// RunHostcollideAndGetResults runs the binary against lists and returns the
// non-empty stdout lines
func RunHostcollideAndGetResults(binary string, lists *Lists, debug bool, extra ...string) ([]string, error) {
	args := []string{"-furl", lists.DomainFile, "-fip", lists.IPFile, "-o", lists.Output}
	args = append(args, extra...)
	if debug {
		args = append(args, "-debug")
	} else {
		args = append(args, "-silent")
	}

	cmd := exec.Command(binary, args...)
	if debug {
		cmd.Stderr = os.Stderr
	}
	data, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	parts := []string{}
	items := strings.Split(string(data), "\n")
	for _, i := range items {
		if i != "" {
			parts = append(parts, i)
		}
	}
	return parts, nil
}

// TestCase is a single integration test case
type TestCase interface {
	// Execute executes a test case and returns any errors if occurred
	Execute() error
}
