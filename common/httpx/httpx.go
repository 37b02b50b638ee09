package httpx

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/corpix/uarand"
	"github.com/projectdiscovery/fastdialer/fastdialer"
	retryablehttp "github.com/projectdiscovery/retryablehttp-go"
)

// HTTPX represent an instance of the library client
type HTTPX struct {
	client        *retryablehttp.Client
	Options       *Options
	CustomHeaders map[string]string
	Dialer        *fastdialer.Dialer
}

// New httpx instance
func New(options *Options) (*HTTPX, error) {
	httpx := &HTTPX{}
	dialer, err := fastdialer.NewDialer(fastdialer.DefaultOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create dialer: %s", err)
	}
	httpx.Dialer = dialer
	httpx.Options = options

	var retryablehttpOptions = retryablehttp.DefaultOptionsSpraying
	retryablehttpOptions.Timeout = httpx.Options.Timeout
	retryablehttpOptions.RetryMax = httpx.Options.RetryMax

	transport := &http.Transport{
		DialContext:         httpx.Dialer.Dial,
		MaxIdleConnsPerHost: -1,
		// targets are raw IPs, the certificate never matches the virtual host
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
			MinVersion:         tls.VersionTLS10,
		},
		DisableKeepAlives: true,
	}

	if httpx.Options.HTTPProxy != "" {
		proxyURL, parseErr := url.Parse(httpx.Options.HTTPProxy)
		if parseErr != nil {
			dialer.Close()
			return nil, parseErr
		}
		if proxyURL.Host == "" {
			dialer.Close()
			return nil, fmt.Errorf("invalid proxy url: %s", httpx.Options.HTTPProxy)
		}
		// plain proxying would let the proxy resolve the Host header
		transport.DialContext = httpx.tunnelDialer(proxyURL)
	}

	httpx.client = retryablehttp.NewWithHTTPClient(&http.Client{
		Transport: transport,
		Timeout:   httpx.Options.Timeout,
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			// Tell the http client to not follow redirect
			return http.ErrUseLastResponse
		},
	}, retryablehttpOptions)

	httpx.CustomHeaders = httpx.Options.CustomHeaders

	return httpx, nil
}

// Do http request
func (h *HTTPX) Do(req *retryablehttp.Request) (*Response, error) {
	httpresp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpresp.Body.Close() //nolint

	var resp Response
	resp.Headers = httpresp.Header.Clone()
	resp.StatusCode = httpresp.StatusCode

	// 101 and 304 never carry a readable body
	if httpresp.StatusCode != http.StatusSwitchingProtocols && httpresp.StatusCode != http.StatusNotModified {
		resp.Data, err = io.ReadAll(io.LimitReader(httpresp.Body, h.Options.MaxResponseBodySizeToRead))
		if err != nil {
			return nil, err
		}
	}
	resp.ContentLength = len(resp.Data)

	return &resp, nil
}

// NewRequestWithContext from url
func (h *HTTPX) NewRequestWithContext(ctx context.Context, method, targetURL string) (*retryablehttp.Request, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, method, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", h.Options.DefaultUserAgent)
	return req, nil
}

// SetCustomHeaders on the provided request
func (h *HTTPX) SetCustomHeaders(r *retryablehttp.Request, headers map[string]string) {
	for name, value := range headers {
		switch strings.ToLower(name) {
		case "host":
			r.Host = value
		default:
			r.Header.Set(name, value)
		}
	}
	if h.Options.RandomAgent {
		r.Header.Set("User-Agent", uarand.GetRandom()) //nolint
	}
}

// Close releases the dialer
func (h *HTTPX) Close() {
	h.Dialer.Close()
}
