package demo

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/najoast/pointdemo/bootstrap"
	"github.com/najoast/pointdemo/config"
)

const referenceOutput = "Distance from origin: 5.0\n" +
	"Sum of numbers: 15\n" +
	"That's a big sum!\n"

func TestSum(t *testing.T) {
	tests := []struct {
		name    string
		numbers []int
		want    int
	}{
		{"reference", []int{1, 2, 3, 4, 5}, 15},
		{"reversed", []int{5, 4, 3, 2, 1}, 15},
		{"shuffled", []int{3, 1, 5, 2, 4}, 15},
		{"empty", nil, 0},
		{"negative", []int{-3, 3, -1}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sum(tt.numbers); got != tt.want {
				t.Errorf("Sum(%v) = %d, want %d", tt.numbers, got, tt.want)
			}
		})
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{15, config.DefaultBigMessage},
		{11, config.DefaultBigMessage},
		{10, config.DefaultSmallMessage},
		{0, config.DefaultSmallMessage},
		{-4, config.DefaultSmallMessage},
	}

	for _, tt := range tests {
		got := Verdict(tt.total, config.DefaultThreshold, config.DefaultBigMessage, config.DefaultSmallMessage)
		if got != tt.want {
			t.Errorf("Verdict(%d) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, "5.0"},
		{0, "0.0"},
		{2.5, "2.5"},
		{1.4142135623730951, "1.4142135623730951"},
		{-3, "-3.0"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEvaluateDefaults(t *testing.T) {
	report := Evaluate(config.DefaultDemoConfig())

	if report.Distance != 5.0 {
		t.Errorf("Expected distance 5.0, got %v", report.Distance)
	}
	if report.Total != 15 {
		t.Errorf("Expected total 15, got %d", report.Total)
	}
	if report.Message != "That's a big sum!" {
		t.Errorf("Expected big sum message, got %q", report.Message)
	}
}

func TestEvaluateEmptySequence(t *testing.T) {
	cfg := config.DefaultDemoConfig()
	cfg.Numbers = nil

	report := Evaluate(cfg)
	if report.Total != 0 || report.Message != "The sum is small." {
		t.Errorf("Expected empty sum to be small, got %+v", report)
	}
}

func TestReportWriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := Evaluate(config.DefaultDemoConfig()).WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo returned error: %v", err)
	}

	if buf.String() != referenceOutput {
		t.Errorf("Unexpected output:\n%s\nwant:\n%s", buf.String(), referenceOutput)
	}
	if n != int64(len(referenceOutput)) {
		t.Errorf("Expected %d bytes written, got %d", len(referenceOutput), n)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestScriptLifecycle(t *testing.T) {
	var buf bytes.Buffer
	script := NewScript(config.DefaultDemoConfig(), &buf, nil)
	ctx := context.Background()

	health, _ := script.Health(ctx)
	if health.State != bootstrap.HealthStarting {
		t.Errorf("Expected starting state before first run, got %v", health.State)
	}

	if err := script.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if buf.String() != referenceOutput {
		t.Errorf("Unexpected output:\n%s", buf.String())
	}

	cfg := config.DefaultDemoConfig()
	cfg.Numbers = []int{1, 2}
	if err := script.Rerun(cfg); err != nil {
		t.Fatalf("Rerun returned error: %v", err)
	}
	if last := script.Last(); last.Total != 3 || last.Message != "The sum is small." {
		t.Errorf("Unexpected rerun report: %+v", last)
	}

	health, _ = script.Health(ctx)
	if health.State != bootstrap.HealthHealthy || health.Data["runs"] != 2 {
		t.Errorf("Expected two healthy runs, got %+v", health)
	}

	if err := script.Stop(ctx); err != nil {
		t.Errorf("Stop returned error: %v", err)
	}
}

func TestScriptWriteError(t *testing.T) {
	script := NewScript(config.DefaultDemoConfig(), failingWriter{}, nil)
	if err := script.Start(context.Background()); err == nil {
		t.Fatal("Expected write error")
	}
	if health, _ := script.Health(context.Background()); health.Data["runs"] != 0 {
		t.Errorf("Failed run should not be counted, got %v", health.Data["runs"])
	}
}

func TestScriptRunsUnderApplication(t *testing.T) {
	var buf bytes.Buffer
	app := bootstrap.NewApplication(nil)
	if err := app.Register(NewScript(config.DefaultDemoConfig(), &buf, nil)); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := app.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
	if buf.String() != referenceOutput {
		t.Errorf("Unexpected output:\n%s", buf.String())
	}
}
