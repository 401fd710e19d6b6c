package probe_http

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dkhalizov/site-pipeline/internal/domain"
)

type Prober struct {
	hc *http.Client
}

func New(timeout time.Duration) *Prober {
	tr := &http.Transport{
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
		MaxIdleConns:        10,
		IdleConnTimeout:     30 * time.Second,
	}

	return &Prober{
		hc: &http.Client{Transport: tr, Timeout: timeout},
	}
}

// Fetch retrieves a URL, retrying transient failures. The distribution may
// still be rolling out right after a deploy, so 5xx and 429 are retried;
// everything else is reported as-is.
func (p *Prober) Fetch(ctx context.Context, url string) (domain.ProbeResult, error) {
	var out domain.ProbeResult

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := p.hc.Do(req)
		if err != nil {
			return err
		}

		defer func() { _ = resp.Body.Close() }()
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("endpoint %s", resp.Status)
		}

		out = domain.ProbeResult{
			Status:       resp.StatusCode,
			ContentType:  resp.Header.Get("Content-Type"),
			CacheControl: resp.Header.Get("Cache-Control"),
			FinalURL:     resp.Request.URL.String(),
		}

		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return domain.ProbeResult{}, err
	}
	return out, nil
}
