package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/projectdiscovery/hostcollide/common/httpx"
	"github.com/projectdiscovery/hostcollide/common/iputil"
)

type prober struct {
	hp *httpx.HTTPX
}

// probe attempts the task over every scheme in order, handing each outcome
// to onResult before moving to the next scheme
func (p *prober) probe(ctx context.Context, task Task, onResult func(Result)) {
	for _, scheme := range httpx.Schemes {
		onResult(p.attempt(ctx, scheme, task))
	}
}

func (p *prober) attempt(ctx context.Context, scheme string, task Task) Result {
	result := Result{
		IP:     task.IP,
		Domain: task.Domain,
		Scheme: scheme,
		URL:    fmt.Sprintf("%s://%s", scheme, task.Domain),
	}

	resp, err := p.hp.ProbeVirtualHost(ctx, scheme, iputil.URLHost(task.IP), task.Domain)
	result.Timestamp = time.Now()
	if err != nil {
		result.Failed = true
		result.Error = failureReason(err)
		return result
	}

	result.StatusCode = resp.StatusCode
	result.ContentLength = resp.ContentLength
	result.Title = httpx.TitleOrPlaceholder(resp)
	return result
}

// failureReason returns the innermost error of a failed attempt. The outer
// layers only repeat the method and url of the request.
func failureReason(err error) string {
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}
