package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		level, format string
		wantDebug     bool
		wantPrefix    string
	}{
		{level: "debug", format: "text", wantDebug: true, wantPrefix: "time="},
		{level: "warn", format: "json", wantDebug: false, wantPrefix: "{"},
		{level: "bogus", format: "", wantDebug: false, wantPrefix: "time="},
	}

	for _, tc := range testCases {
		t.Run(tc.level+"/"+tc.format, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newLogger(tc.level, tc.format, &buf)
			logger.Debug("debug record")
			logger.Error("error record")

			assert.Equal(t, tc.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug record")))
			assert.Contains(t, buf.String(), "error record")
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte(tc.wantPrefix)), buf.String())
		})
	}
}
