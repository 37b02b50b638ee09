package runner

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFailureReason(t *testing.T) {
	refused := &url.Error{
		Op:  "Get",
		URL: "http://203.0.113.7",
		Err: &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
	}
	wrapped := fmt.Errorf("GET http://203.0.113.7 giving up after 1 attempts: %w", refused)
	require.Equal(t, "connection refused", failureReason(wrapped))

	result := Result{Failed: true, Error: failureReason(wrapped)}
	require.Equal(t, "connection refused", result.CSVRow()[5])

	plain := fmt.Errorf("tls: first record does not look like a TLS handshake")
	require.Equal(t, plain.Error(), failureReason(plain))
}
