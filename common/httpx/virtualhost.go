package httpx

import (
	"context"
	"fmt"
	"net/http"

	retryablehttp "github.com/projectdiscovery/retryablehttp-go"
)

// NewVirtualHostRequest builds a GET for scheme://address that presents host
// as the virtual host, so the name is never resolved
func (h *HTTPX) NewVirtualHostRequest(ctx context.Context, scheme, address, host string) (*retryablehttp.Request, error) {
	req, err := h.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s://%s", scheme, address))
	if err != nil {
		return nil, err
	}
	h.SetCustomHeaders(req, h.CustomHeaders)
	req.Host = host
	return req, nil
}

// ProbeVirtualHost requests address over scheme presenting host as the virtual host
func (h *HTTPX) ProbeVirtualHost(ctx context.Context, scheme, address, host string) (*Response, error) {
	req, err := h.NewVirtualHostRequest(ctx, scheme, address, host)
	if err != nil {
		return nil, err
	}
	return h.Do(req)
}
