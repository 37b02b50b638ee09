package fileutil

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrFileNotFound is returned when an input list does not exist
var ErrFileNotFound = errors.New("file not found")

const utf8BOM = "\ufeff"

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) || err != nil || info == nil {
		return false
	}
	return !info.IsDir()
}

// LoadLines reads a line oriented list, returning every non-empty line
// with surrounding whitespace removed, in file order.
func LoadLines(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrFileNotFound, filename)
		}
		return nil, errors.Wrapf(err, "could not open '%s'", filename)
	}
	defer f.Close() //nolint

	var lines []string
	s := bufio.NewScanner(f)
	for first := true; s.Scan(); first = false {
		line := s.Text()
		if first {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "could not read '%s'", filename)
	}
	return lines, nil
}
