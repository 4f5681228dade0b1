// Package metrics records generation metrics.
//
// Components receive a Recorder through injection and default to
// NoopRecorder, so callers never nil-check:
//
//	gen := generator.New(cfg, generator.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The Prometheus implementation is only wired in watch mode, where a
// long-lived process can be scraped. One-shot runs keep the noop recorder.
package metrics
