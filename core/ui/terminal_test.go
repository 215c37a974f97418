package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterVerbosity(t *testing.T) {
	tests := []struct {
		level     int
		wantInfo  bool
		wantDebug bool
	}{
		{0, false, false},
		{1, true, false},
		{2, true, true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		w := NewWriter(&buf, true)
		w.SetVerbosity(tt.level)

		w.Info("loaded %d prices", 3)
		w.Debug("source %s", "book.json")
		w.Warning("skipped")

		out := buf.String()
		assert.Equal(t, tt.wantInfo, bytes.Contains(buf.Bytes(), []byte("ℹ loaded 3 prices")), out)
		assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("  source book.json")), out)
		assert.Contains(t, out, "⚠ skipped")
	}
}

func TestWriterStatusLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Success("%s: ok", "book.json")
	w.Error("no price")
	assert.Equal(t, "✓ book.json: ok\n✗ no price\n", buf.String())

	buf.Reset()
	w = NewWriter(&buf, false)
	w.Success("done")
	assert.Equal(t, Green+"✓ "+Reset+"done\n", buf.String())
}

func TestTableAlignsRunes(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	tbl := w.NewTable("Field", "Value")
	tbl.AddRow("Price", "100.00 €")
	tbl.AddRow("Region")
	tbl.Render()

	assert.Equal(t, "Field  │ Value\n"+
		"───────┼─────────\n"+
		"Price  │ 100.00 €\n"+
		"Region │\n", buf.String())
}
