package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelsGateOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelNormal, &buf)

	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug output should be suppressed at normal level")
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("info output missing, got %q", out)
	}
}

func TestOffSilencesEverything(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelOff, &buf)

	log.Error("boom")
	log.Warn("careful")
	log.Info("hello")

	if buf.Len() != 0 {
		t.Errorf("expected no output at off level, got %q", buf.String())
	}
}

func TestNamedPrefixesLines(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelVerbose, &buf).Named("api")

	log.Debug("fetching")
	if !strings.Contains(buf.String(), "api: fetching") {
		t.Errorf("expected named prefix, got %q", buf.String())
	}

	buf.Reset()
	log.Named("detail").Info("nested")
	if !strings.Contains(buf.String(), "api.detail: nested") {
		t.Errorf("expected chained prefix, got %q", buf.String())
	}
}

func TestSetLevelSharedAcrossNamed(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelOff, &buf)
	child := root.Named("store")

	root.SetLevel(LevelNormal)
	child.Info("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("named logger should follow root level, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"off", LevelOff},
		{"quiet", LevelOff},
		{"verbose", LevelVerbose},
		{"debug", LevelVerbose},
		{"normal", LevelNormal},
		{"", LevelNormal},
		{"bogus", LevelNormal},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
