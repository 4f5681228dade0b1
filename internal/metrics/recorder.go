package metrics

import "time"

// OutcomeLabel enumerates the final status of one generation run.
type OutcomeLabel string

const (
	OutcomeSuccess   OutcomeLabel = "success"
	OutcomeWarning   OutcomeLabel = "warning"   // written, with skipped entries
	OutcomeUnchanged OutcomeLabel = "unchanged" // sections identical, write skipped
	OutcomeFatal     OutcomeLabel = "fatal"
)

// Stage names for ObserveStageDuration.
const (
	StageScan     = "scan"
	StageAssemble = "assemble"
	StageWrite    = "write"
)

// Recorder defines observability hooks for generation runs.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveGenerationDuration(d time.Duration)
	IncGenerationOutcome(outcome OutcomeLabel)
	IncScanWarning(reason string)
	SetManifestSize(sections, items int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveGenerationDuration(time.Duration)    {}
func (NoopRecorder) IncGenerationOutcome(OutcomeLabel)          {}
func (NoopRecorder) IncScanWarning(string)                      {}
func (NoopRecorder) SetManifestSize(int, int)                   {}
