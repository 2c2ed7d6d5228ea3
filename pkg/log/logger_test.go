package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		log      func(l *Logger)
		expected bool
	}{
		{"trace shown at trace level", LevelTrace, func(l *Logger) { l.Tracef("probe") }, true},
		{"trace hidden at verbose level", LevelVerbose, func(l *Logger) { l.Tracef("probe") }, false},
		{"verbose shown at verbose level", LevelVerbose, func(l *Logger) { l.Verbosef("probe") }, true},
		{"verbose hidden at normal level", LevelNormal, func(l *Logger) { l.Verbosef("probe") }, false},
		{"info hidden at quiet level", LevelQuiet, func(l *Logger) { l.Infof("probe") }, false},
		{"error shown at quiet level", LevelQuiet, func(l *Logger) { l.Errorf("probe") }, true},
		{"warning shown at quiet level", LevelQuiet, func(l *Logger) { l.Warningf("probe") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewLoggerTo(tt.level, &buf))

			if tt.expected {
				assert.Contains(t, buf.String(), "probe")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestTracefFormatsArguments(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(LevelTrace, &buf)

	l.Tracef("failed after %d attempts", 5)

	assert.Contains(t, buf.String(), "[trace] failed after 5 attempts")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelQuiet, ParseLevel("quiet"))
	assert.Equal(t, LevelNormal, ParseLevel("normal"))
	assert.Equal(t, LevelVerbose, ParseLevel("verbose"))
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, LevelNormal, ParseLevel("bogus"))
}
