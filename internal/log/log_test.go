package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	} {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestSetup_JSON(t *testing.T) {
	defer SetLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	Setup(&buf, "info", "json")

	Debug("hidden")
	Info("visible")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "visible", entry["message"])
	require.Equal(t, "showtimes", entry["service"])
	require.Equal(t, "info", entry["level"])
}

func TestSetup_Console(t *testing.T) {
	defer SetLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	Setup(&buf, "debug", "console")

	Logger().Debug().Str("term", "expo").Msg("search")
	require.Contains(t, buf.String(), "search")
	require.Contains(t, buf.String(), "term=expo")
}
