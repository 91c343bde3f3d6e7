package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_LevelParsing(t *testing.T) {
	cases := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"uppercase", "ERROR", zerolog.ErrorLevel},
		{"padded", "  info  ", zerolog.InfoLevel},
		{"empty falls back to info", "", zerolog.InfoLevel},
		{"garbage falls back to info", "loud", zerolog.InfoLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := New(tc.level).GetLevel(); got != tc.want {
				t.Errorf("New(%q) level = %s, want %s", tc.level, got, tc.want)
			}
		})
	}
}
