package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts_ok.csv")

	writer, err := NewCSVWriter(path)
	require.Nil(t, err)
	require.Equal(t, path, writer.Path())

	require.Nil(t, writer.Append([]string{"10.0.0.1", "例子.com", "http://例子.com", "200", "12", "标题, \"quoted\"", "2023-04-01 09:05:07"}))
	require.Nil(t, writer.Append([]string{"10.0.0.2", "example.com", "https://example.com", "ERROR", "0", "connection refused", "2023-04-01 09:05:08"}))

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	require.Equal(t, "例子.com", rows[0][1])
	require.Equal(t, "标题, \"quoted\"", rows[0][5])
	require.Equal(t, "ERROR", rows[1][3])

	// a new writer starts over with only the header
	_, err = NewCSVWriter(path)
	require.Nil(t, err)
	content, err := os.ReadFile(path)
	require.Nil(t, err)
	require.Equal(t, strings.Join(csvHeader, ",")+"\n", string(content))
}

func TestCSVWriterInvalidPath(t *testing.T) {
	_, err := NewCSVWriter(filepath.Join(t.TempDir(), "missing", "out.csv"))
	require.NotNil(t, err)
}
