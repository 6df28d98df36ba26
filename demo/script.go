// Package demo implements the sample script shown in the terminal demo:
// a point's distance from the origin, a summed sequence and a verdict on
// that sum.
package demo

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/najoast/pointdemo/bootstrap"
	"github.com/najoast/pointdemo/config"
	"github.com/najoast/pointdemo/geometry"
)

// Sum adds numbers in order
func Sum(numbers []int) int {
	total := 0
	for _, n := range numbers {
		total += n
	}
	return total
}

// Verdict returns big when total is strictly greater than threshold,
// small otherwise
func Verdict(total, threshold int, big, small string) string {
	if total > threshold {
		return big
	}
	return small
}

// FormatFloat renders v in shortest round-trip form, keeping one
// fractional digit for integral values so 5 prints as 5.0
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.ContainsAny(s, ".NI") {
		return s
	}
	return s + ".0"
}

// Report is the result of one script run
type Report struct {
	Distance float64
	Total    int
	Message  string
}

// Evaluate runs the script's computations for the given inputs
func Evaluate(cfg config.DemoConfig) Report {
	point := geometry.NewPoint(cfg.Point.X, cfg.Point.Y)
	total := Sum(cfg.Sequence())
	return Report{
		Distance: point.DistanceFromOrigin(),
		Total:    total,
		Message:  Verdict(total, cfg.Threshold, cfg.BigMessage, cfg.SmallMessage),
	}
}

// Lines returns the three output lines of the report
func (r Report) Lines() []string {
	return []string{
		"Distance from origin: " + FormatFloat(r.Distance),
		"Sum of numbers: " + strconv.Itoa(r.Total),
		r.Message,
	}
}

// WriteTo writes the report lines to w
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, line := range r.Lines() {
		n, err := io.WriteString(w, line+"\n")
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("failed to write report: %w", err)
		}
	}
	return written, nil
}

// Script runs the demo as a managed service. Start performs one run;
// Rerun performs another with new inputs, as on a configuration reload.
type Script struct {
	mu     sync.Mutex
	cfg    config.DemoConfig
	out    io.Writer
	logger *zap.Logger
	runs   int
	last   Report
}

// NewScript creates a script writing to out
func NewScript(cfg config.DemoConfig, out io.Writer, logger *zap.Logger) *Script {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Script{
		cfg:    cfg,
		out:    out,
		logger: logger.Named("script"),
	}
}

// Name returns the service name
func (s *Script) Name() string {
	return "script"
}

// Start runs the script once
func (s *Script) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runLocked()
}

// Stop is a no-op; the script holds no resources
func (s *Script) Stop(ctx context.Context) error {
	return nil
}

// Health reports the number of completed runs
func (s *Script) Health(ctx context.Context) (bootstrap.HealthStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := bootstrap.HealthHealthy
	if s.runs == 0 {
		state = bootstrap.HealthStarting
	}
	return bootstrap.HealthStatus{
		State:   state,
		Message: fmt.Sprintf("%d runs", s.runs),
		Data:    map[string]interface{}{"runs": s.runs, "total": s.last.Total},
	}, nil
}

// Rerun replaces the inputs and runs the script again
func (s *Script) Rerun(cfg config.DemoConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	return s.runLocked()
}

// Last returns the most recent report
func (s *Script) Last() Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Script) runLocked() error {
	report := Evaluate(s.cfg)
	if _, err := report.WriteTo(s.out); err != nil {
		return err
	}
	s.runs++
	s.last = report

	s.logger.Debug("script run",
		zap.Int("run", s.runs),
		zap.Stringer("point", s.cfg.Point),
		zap.Float64("distance", report.Distance),
		zap.Int("total", report.Total),
		zap.Int("threshold", s.cfg.Threshold),
	)
	return nil
}
