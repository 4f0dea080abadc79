package logengine

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nockerrors "github.com/nockpoint/nockit/pkg/errors"
)

func TestSearchReportsLineNumbers(t *testing.T) {
	dir := t.TempDir()
	path := writeLog(t, dir, "app.log", "fine\nstill fine\nERROR something broke\nfine again\n")

	var buf bytes.Buffer
	require.NoError(t, SearchLogs(context.Background(), &buf, dir, SearchOptions{Pattern: "ERROR"}))

	out := buf.String()
	assert.Contains(t, out, fmt.Sprintf("%s:3: ERROR something broke", path))
	assert.Contains(t, out, "Total matches found: 1")
}

func TestSearchAscendingOrderWithinFile(t *testing.T) {
	dir := t.TempDir()
	path := writeLog(t, dir, "app.log", "hit one\nmiss\nhit two\nhit three\n")

	var buf bytes.Buffer
	require.NoError(t, SearchLogs(context.Background(), &buf, dir, SearchOptions{Pattern: "^hit"}))

	out := buf.String()
	first := bytes.Index([]byte(out), []byte(path+":1:"))
	second := bytes.Index([]byte(out), []byte(path+":3:"))
	third := bytes.Index([]byte(out), []byte(path+":4:"))
	require.NotEqual(t, -1, first)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
	assert.Contains(t, out, "Total matches found: 3")
}

func TestSearchInvalidPattern(t *testing.T) {
	var buf bytes.Buffer
	err := SearchLogs(context.Background(), &buf, t.TempDir(), SearchOptions{Pattern: "(["})

	require.Error(t, err)
	assert.ErrorIs(t, err, nockerrors.ErrInvalidPattern)
	// Rejected before I/O: nothing scanned, nothing written.
	assert.Empty(t, buf.String())
}

func TestSearchNoFiles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SearchLogs(context.Background(), &buf, filepath.Join(t.TempDir(), "logs"), SearchOptions{Pattern: "x"}))
	assert.Contains(t, buf.String(), "No log files found")
}

func TestSearchExplicitMissingFileFailsHard(t *testing.T) {
	var buf bytes.Buffer
	err := SearchLogs(context.Background(), &buf, t.TempDir(), SearchOptions{
		Pattern: "x",
		File:    filepath.Join(t.TempDir(), "absent.log"),
	})
	assert.Error(t, err)
}

func TestSearchExplicitFile(t *testing.T) {
	dir := t.TempDir()
	target := writeLog(t, dir, "target.log", "needle here\n")
	writeLog(t, dir, "other.log", "needle there\n")

	var buf bytes.Buffer
	require.NoError(t, SearchLogs(context.Background(), &buf, dir, SearchOptions{Pattern: "needle", File: target}))

	out := buf.String()
	assert.Contains(t, out, "needle here")
	assert.NotContains(t, out, "needle there")
	assert.Contains(t, out, "Total matches found: 1")
}

func TestSearchExprFilter(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "app.log",
		`{"timestamp":"2024-01-01T00:00:00Z","level":"ERROR","target":"net","message":"boom"}`+"\n"+
			`{"timestamp":"2024-01-01T00:00:01Z","level":"INFO","target":"net","message":"ok"}`+"\n"+
			"2024-01-01T00:00:05Z ERROR disk: full\n")

	var buf bytes.Buffer
	require.NoError(t, SearchLogs(context.Background(), &buf, dir, SearchOptions{
		Expr: `Level == "ERROR" && Target == "net"`,
	}))

	out := buf.String()
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, `"ok"`)
	assert.NotContains(t, out, "disk: full")
	assert.Contains(t, out, "Total matches found: 1")
}

func TestSearchExprFields(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "app.log",
		`{"timestamp":"2024-01-01T00:00:00Z","level":"INFO","target":"miner","message":"share","worker":"w1"}`+"\n"+
			`{"timestamp":"2024-01-01T00:00:01Z","level":"INFO","target":"miner","message":"share","worker":"w2"}`+"\n")

	var buf bytes.Buffer
	require.NoError(t, SearchLogs(context.Background(), &buf, dir, SearchOptions{
		Expr: `Fields["worker"] == "w2"`,
	}))

	assert.Contains(t, buf.String(), "Total matches found: 1")
}

func TestSearchExprInvalid(t *testing.T) {
	var buf bytes.Buffer
	err := SearchLogs(context.Background(), &buf, t.TempDir(), SearchOptions{Expr: "Level =="})

	require.Error(t, err)
	assert.ErrorIs(t, err, nockerrors.ErrInvalidExpr)
}

func TestSearchPatternAndExprExclusive(t *testing.T) {
	var buf bytes.Buffer
	err := SearchLogs(context.Background(), &buf, t.TempDir(), SearchOptions{Pattern: "x", Expr: `Level == "INFO"`})
	assert.Error(t, err)
}
