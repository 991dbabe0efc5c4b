package ionex

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFmtLine(t *testing.T) {
	line := fmtLine("", "END OF HEADER")
	assert.Equal(t, 60, strings.Index(line, "END OF HEADER"))

	line = fmtLine("     2", "MAP DIMENSION")
	assert.Len(t, line, 60+len("MAP DIMENSION"))
	assert.Equal(t, 60, strings.Index(line, "MAP DIMENSION"))
}

// overlong content wraps onto successive lines sharing the marker
func TestFmtLineWrapping(t *testing.T) {
	content := strings.Repeat("x", 150)
	wrapped := fmtLine(content, "COMMENT")

	lines := strings.Split(wrapped, "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.GreaterOrEqual(t, len(line), 60)
		assert.Equal(t, "COMMENT", strings.TrimSpace(line[60:]))
	}
}

// Emitted bytes satisfy the fixed-column rules: markers start at
// column 61, lines stay within 80 columns, sample rows carry sixteen
// five-column tokens.
func TestEncoderColumnRules(t *testing.T) {
	ionx := worldwideTestIONEX(t, 1)

	var buf bytes.Buffer
	require.NoError(t, ionx.Encode(&buf))

	markers := []string{
		"IONEX VERSION / TYPE", "PGM / RUN BY / DATE", "MAP DIMENSION",
		"# OF MAPS IN FILE", "HGT1 / HGT2 / DHGT", "LAT1 / LAT2 / DLAT",
		"LON1 / LON2 / DLON", "INTERVAL", "EPOCH OF FIRST MAP",
		"EPOCH OF LAST MAP", "ELEVATION CUTOFF", "MAPPING FUNCTION",
		"BASE RADIUS", "EXPONENT", "END OF HEADER", "START OF TEC MAP",
		"EPOCH OF CURRENT MAP", "LAT/LON1/LON2/DLON/H", "END OF TEC MAP",
		"END OF FILE",
	}

	seen := make(map[string]bool)
	for _, line := range strings.Split(buf.String(), "\n") {
		if line == "" {
			continue
		}
		assert.LessOrEqual(t, len(line), 80, "line too long: %q", line)

		isMarker := false
		if len(line) > 60 {
			marker := strings.TrimSpace(line[60:])
			for _, m := range markers {
				if marker == m {
					seen[m] = true
					isMarker = true
				}
			}
		}
		// sample row: full rows fill the 80 columns with sixteen
		// five-column tokens
		if !isMarker && len(line) == 5*tokensPerLine {
			assert.Len(t, strings.Fields(line), tokensPerLine)
		}
	}

	for _, m := range markers {
		assert.True(t, seen[m], "marker %q never emitted", m)
	}
}

func TestEncoderMissingGrid(t *testing.T) {
	ionx := NewIONEX(NewHeader(), NewRecord())

	var buf bytes.Buffer
	err := ionx.Encode(&buf)
	assert.ErrorIs(t, err, ErrNoGridDefinition)
}

func TestEncoderHeaderOrder(t *testing.T) {
	ionx := buildTestIONEX(t, 1)

	var buf bytes.Buffer
	require.NoError(t, ionx.Encode(&buf))

	order := []string{
		"IONEX VERSION / TYPE", "PGM / RUN BY / DATE", "MAP DIMENSION",
		"# OF MAPS IN FILE", "HGT1 / HGT2 / DHGT", "LAT1 / LAT2 / DLAT",
		"LON1 / LON2 / DLON", "INTERVAL", "EPOCH OF FIRST MAP",
		"EPOCH OF LAST MAP", "ELEVATION CUTOFF", "MAPPING FUNCTION",
		"BASE RADIUS", "EXPONENT", "COMMENT", "END OF HEADER",
	}

	content := buf.String()
	last := -1
	for _, marker := range order {
		idx := strings.Index(content, marker)
		require.GreaterOrEqual(t, idx, 0, "marker %q missing", marker)
		assert.Greater(t, idx, last, "marker %q out of order", marker)
		last = idx
	}
}
