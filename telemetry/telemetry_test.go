package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestNoOpCollector(t *testing.T) {
	collector := noOpCollector{}

	timer := collector.Start("test")
	timer.End()

	child := timer.Child("child")
	child.End()

	var buf bytes.Buffer
	collector.Report(&buf)

	// Should produce no output
	if buf.Len() != 0 {
		t.Errorf("NoOp collector should produce no output, got: %s", buf.String())
	}
}

func TestFromContextReturnsNoOpWhenMissing(t *testing.T) {
	ctx := context.Background()
	collector := FromContext(ctx)

	// Should return NoOp collector, not nil
	if collector == nil {
		t.Fatal("FromContext should never return nil")
	}

	if _, ok := collector.(noOpCollector); !ok {
		t.Errorf("FromContext should return noOpCollector when none present, got: %T", collector)
	}
}

func TestWithCollector(t *testing.T) {
	ctx := context.Background()
	collector := NewTimingCollector()

	ctx = WithCollector(ctx, collector)

	retrieved := FromContext(ctx)
	retrievedTiming, ok := retrieved.(*TimingCollector)
	if !ok || retrievedTiming != collector {
		t.Error("FromContext should return the same collector that was added")
	}
}

func TestTimingCollectorBasic(t *testing.T) {
	collector := NewTimingCollector()

	timer := collector.Start("root")
	time.Sleep(time.Millisecond)
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf)

	out := buf.String()
	if !strings.Contains(out, "root:") {
		t.Errorf("report should contain root timer, got: %s", out)
	}
}

func TestTimingCollectorNested(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("root")
	child := root.Child("child")
	grandchild := child.Child("grandchild")
	grandchild.End()
	child.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)

	out := buf.String()
	for _, name := range []string{"root", "child", "grandchild"} {
		if !strings.Contains(out, name) {
			t.Errorf("report should contain %q, got: %s", name, out)
		}
	}

	// Nested entries carry tree-drawing prefixes
	if !strings.Contains(out, "└─ ") {
		t.Errorf("report should use tree formatting, got: %s", out)
	}
}

func TestTimingCollectorEmptyReport(t *testing.T) {
	collector := NewTimingCollector()

	var buf bytes.Buffer
	collector.Report(&buf)

	if buf.Len() != 0 {
		t.Errorf("empty collector should produce no output, got: %s", buf.String())
	}
}
