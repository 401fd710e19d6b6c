package domain

import "context"

type Prober interface {
	Fetch(ctx context.Context, url string) (ProbeResult, error)
}

type ReportWriter interface {
	Write(ctx context.Context, r Report) error
}
