package session_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidar/internal/engine"
	"vidar/internal/feed"
	"vidar/internal/session"
)

func run(t *testing.T, input string, dumpBook bool) string {
	t.Helper()
	var out bytes.Buffer
	sess := session.New(
		engine.New(),
		feed.NewReader(strings.NewReader(input)),
		feed.NewWriter(&out),
		dumpBook,
	)
	require.NoError(t, sess.Run(context.Background()))
	return out.String()
}

func TestSession_EndToEnd(t *testing.T) {
	input := strings.Join([]string{
		"s1,S,100,5",
		"s2,S,101,5",
		"bad,Q,1,1", // rejected by the feed, never reaches the engine
		"b1,B,101,10",
		"b2,B,99,3",
	}, "\n") + "\n"

	want := "trade b1, s1, 100, 5\n" +
		"trade b1, s2, 101, 5\n" +
		fmt.Sprintf("%-19s  Sellers\n", "Buyers") +
		fmt.Sprintf("%-11s %-5s | %-11s %-11s\n", "3", "99", "", "")
	assert.Equal(t, want, run(t, input, true))
}

func TestSession_IcebergFeed(t *testing.T) {
	input := strings.Join([]string{
		"ice,S,100,30,10",
		"b1,B,100,10",
		"b2,B,100,25",
	}, "\n") + "\n"

	// b2 sweeps through two replenishments; its crossings against the
	// iceberg collapse into a single aggregated line.
	want := "trade b1, ice, 100, 10\n" +
		"trade b2, ice, 100, 25\n" +
		fmt.Sprintf("%-19s  Sellers\n", "Buyers") +
		fmt.Sprintf("%-11s %-5s | %-11s %-11s\n", "5", "100", "", "")
	assert.Equal(t, want, run(t, input, true))
}

func TestSession_SellAggressor(t *testing.T) {
	input := strings.Join([]string{
		"b1,B,100,10",
		"s1,S,100,10",
	}, "\n") + "\n"

	// The incoming sell leads the trade line; both orders are consumed.
	want := "trade s1, b1, 100, 10\n" +
		fmt.Sprintf("%-19s  Sellers\n", "Buyers")
	assert.Equal(t, want, run(t, input, true))
}

func TestSession_NoBookDump(t *testing.T) {
	out := run(t, "b1,B,99,10\n", false)
	assert.Empty(t, out)
}

func TestSession_CancelledContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	sess := session.New(engine.New(), feed.NewReader(pr), feed.NewWriter(&out), true)

	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("session did not stop on cancellation")
	}
	// No book dump on an interrupted run.
	assert.Zero(t, out.Len())
}
