package executor

import (
	"strings"
	"testing"
)

func collectLines(stdout, stderr string) []Line {
	var lines []Line
	pumpStreams(strings.NewReader(stdout), strings.NewReader(stderr), func(line Line) {
		lines = append(lines, line)
	})
	return lines
}

func TestPumpStreams_DrainsBothChannels(t *testing.T) {
	lines := collectLines("out1\nout2\n", "err1\n")

	var stdout, stderr int
	for _, line := range lines {
		switch line.Channel {
		case ChannelStdout:
			stdout++
		case ChannelStderr:
			stderr++
		}
	}
	if stdout != 2 {
		t.Errorf("Expected 2 stdout lines, got %d", stdout)
	}
	if stderr != 1 {
		t.Errorf("Expected 1 stderr line, got %d", stderr)
	}
}

func TestPumpStreams_PerChannelOrderPreserved(t *testing.T) {
	lines := collectLines("a\nb\nc\n", "x\ny\n")

	var stdout, stderr []string
	for _, line := range lines {
		if line.Channel == ChannelStdout {
			stdout = append(stdout, line.Text)
		} else {
			stderr = append(stderr, line.Text)
		}
	}

	wantOut := []string{"a", "b", "c"}
	for i, l := range wantOut {
		if stdout[i] != l {
			t.Fatalf("stdout order = %v, want %v", stdout, wantOut)
		}
	}
	wantErr := []string{"x", "y"}
	for i, l := range wantErr {
		if stderr[i] != l {
			t.Fatalf("stderr order = %v, want %v", stderr, wantErr)
		}
	}
}

func TestPumpStreams_LargeUnbalancedOutput(t *testing.T) {
	// One channel emits far more than a pipe buffer while the other is
	// silent; both goroutines drain independently so neither starves.
	var b strings.Builder
	for i := 0; i < 20000; i++ {
		b.WriteString("line with some typical build output text\n")
	}

	lines := collectLines(b.String(), "")
	if len(lines) != 20000 {
		t.Errorf("Expected 20000 lines, got %d", len(lines))
	}
}

func TestPumpStreams_OversizedLineConsumesStreamToEOF(t *testing.T) {
	// A line past the scanner bound must not strand the rest of the
	// stream: a child blocked writing to an undrained pipe never exits.
	oversized := strings.Repeat("a", maxLineBytes+1) + "\nafter\n"
	stdout := strings.NewReader(oversized)

	var lines []Line
	pumpStreams(stdout, strings.NewReader(""), func(line Line) {
		lines = append(lines, line)
	})

	if stdout.Len() != 0 {
		t.Errorf("Expected stream drained to EOF, %d bytes left", stdout.Len())
	}
	if len(lines) != 1 || lines[0].Text != truncatedMarker {
		t.Errorf("Expected a single truncation marker, got %v", len(lines))
	}
}

func TestPumpStreams_OversizedLineLeavesOtherChannelIntact(t *testing.T) {
	oversized := strings.Repeat("b", maxLineBytes+1) + "\n"
	lines := collectLines(oversized, "err1\nerr2\n")

	var stderr []string
	for _, line := range lines {
		if line.Channel == ChannelStderr {
			stderr = append(stderr, line.Text)
		}
	}
	if len(stderr) != 2 || stderr[0] != "err1" || stderr[1] != "err2" {
		t.Errorf("Expected stderr unaffected by stdout truncation, got %v", stderr)
	}
}

func TestPumpStreams_EmptyStreams(t *testing.T) {
	lines := collectLines("", "")
	if len(lines) != 0 {
		t.Errorf("Expected no lines, got %d", len(lines))
	}
}

func TestPumpStreams_InvalidUTF8Replaced(t *testing.T) {
	lines := collectLines("ok \xff\xfe bytes\n", "")

	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if !strings.Contains(lines[0].Text, "�") {
		t.Errorf("Expected replacement character in %q", lines[0].Text)
	}
	if strings.Contains(lines[0].Text, "\xff") {
		t.Errorf("Expected invalid bytes to be replaced in %q", lines[0].Text)
	}
}

func TestPumpStreams_NoTrailingNewline(t *testing.T) {
	lines := collectLines("no newline at end", "")

	if len(lines) != 1 || lines[0].Text != "no newline at end" {
		t.Errorf("Expected final unterminated line to be delivered, got %v", lines)
	}
}

func TestChannel_String(t *testing.T) {
	if ChannelStdout.String() != "stdout" {
		t.Errorf("ChannelStdout.String() = %q", ChannelStdout.String())
	}
	if ChannelStderr.String() != "stderr" {
		t.Errorf("ChannelStderr.String() = %q", ChannelStderr.String())
	}
}
