package render

import (
	"log/slog"
)

// DiagnosticKind classifies a recoverable per-frame anomaly.
type DiagnosticKind int

const (
	DiagUnknownMesh DiagnosticKind = iota
	DiagUnknownMaterial
	DiagUnknownTexture
	DiagUnknownEffect
	DiagMissingUniform
	DiagNoActiveScene
	DiagFrameSkipped
)

// String returns the string representation of the kind
func (k DiagnosticKind) String() string {
	switch k {
	case DiagUnknownMesh:
		return "UnknownMesh"
	case DiagUnknownMaterial:
		return "UnknownMaterial"
	case DiagUnknownTexture:
		return "UnknownTexture"
	case DiagUnknownEffect:
		return "UnknownEffect"
	case DiagMissingUniform:
		return "MissingUniform"
	case DiagNoActiveScene:
		return "NoActiveScene"
	case DiagFrameSkipped:
		return "FrameSkipped"
	default:
		return "Unknown"
	}
}

// Diagnostic is one recoverable anomaly.
type Diagnostic struct {
	Source string // backend name or "loop"
	Kind   DiagnosticKind
	ID     string
	Detail string
}

// Diagnostics receives per-frame anomalies. Reports never stop the frame.
type Diagnostics interface {
	Report(d Diagnostic)
}

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(d Diagnostic)

// Report calls f(d).
func (f DiagnosticsFunc) Report(d Diagnostic) { f(d) }

// LogDiagnostics writes every report to a slog.Logger at warn level.
type LogDiagnostics struct {
	Logger *slog.Logger
}

// Report logs d.
func (l LogDiagnostics) Report(d Diagnostic) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("render diagnostic",
		"source", d.Source,
		"kind", d.Kind.String(),
		"id", d.ID,
		"detail", d.Detail,
	)
}

// Discard drops every report.
var Discard Diagnostics = DiagnosticsFunc(func(Diagnostic) {})
