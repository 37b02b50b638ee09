package httpx

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// tunnelDialer opens every connection as an HTTP CONNECT tunnel through the
// proxy to the dialed address. Requests keep the virtual host in their Host
// header while the proxy only ever sees the ip.
func (h *HTTPX) tunnelDialer(proxyURL *url.URL) func(ctx context.Context, network, address string) (net.Conn, error) {
	proxyAddress := proxyURL.Host
	if proxyURL.Port() == "" {
		proxyAddress = net.JoinHostPort(proxyURL.Hostname(), "80")
	}
	var authorization string
	if proxyURL.User != nil {
		password, _ := proxyURL.User.Password()
		credentials := proxyURL.User.Username() + ":" + password
		authorization = "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
	}

	return func(ctx context.Context, network, address string) (net.Conn, error) {
		conn, err := h.Dialer.Dial(ctx, network, proxyAddress)
		if err != nil {
			return nil, fmt.Errorf("could not connect to proxy: %s", err)
		}
		deadline, ok := ctx.Deadline()
		if !ok {
			deadline = time.Now().Add(h.Options.Timeout)
		}
		_ = conn.SetDeadline(deadline)

		connectReq := &http.Request{
			Method: http.MethodConnect,
			URL:    &url.URL{Opaque: address},
			Host:   address,
			Header: make(http.Header),
		}
		if authorization != "" {
			connectReq.Header.Set("Proxy-Authorization", authorization)
		}
		if err := connectReq.Write(conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("could not send tunnel request: %s", err)
		}

		resp, err := http.ReadResponse(bufio.NewReader(conn), connectReq)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("could not read tunnel response: %s", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			conn.Close()
			return nil, fmt.Errorf("proxy refused tunnel to %s: %s", address, resp.Status)
		}

		_ = conn.SetDeadline(time.Time{})
		return conn, nil
	}
}
