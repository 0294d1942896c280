package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2.5s", formatDuration(2500*time.Millisecond))
	assert.Equal(t, "0.3s", formatDuration(300*time.Millisecond))
	assert.Equal(t, "1m30s", formatDuration(90*time.Second))
	assert.Equal(t, "2m5s", formatDuration(125*time.Second))
}

func TestRenderResultsTable(t *testing.T) {
	var buf bytes.Buffer
	RenderResultsTable(&buf, []ResultRow{
		{File: "orders.sql", Model: "orders", Kind: "view", Status: "CONVERTED", Message: "SQL syntax looks valid."},
		{File: "ddl.sql", Model: "", Kind: "", Status: "SKIPPED", Message: "Unsupported SQL statement type: CREATE. Only DML is allowed."},
		{File: "broken.sql", Model: "", Kind: "", Status: "FAILED", Message: "Failed to read file"},
	})

	out := buf.String()
	assert.Contains(t, out, "orders.sql")
	assert.Contains(t, out, "CONVERTED")
	assert.Contains(t, out, "SKIPPED")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "CREATE")
}

func TestNewUIQuietSuppressesOutput(t *testing.T) {
	u := NewUI(false, true)
	assert.True(t, u.Quiet)
	assert.False(t, u.Verbose)

	// Quiet mode must not start a spinner
	u.StartProgress("working")
	assert.Nil(t, u.spinner)
	u.StopProgress(true, "done")
}
