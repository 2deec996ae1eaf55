package engine

import (
	"context"
	"testing"
	"time"

	"github.com/panelforge/panelcut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runnerTestRequest(token uint64) Request {
	return Request{
		Token: token,
		Parts: []model.Part{
			groupedPart("a", "Century", "SF101", 500, 500),
			groupedPart("b", "Century", "SF101", 400, 700),
			groupedPart("c", "Greenply", "GL220", 300, 300),
			groupedPart("d", "Greenply", "GL220", 900, 250),
		},
		Config: testConfig(),
	}
}

func TestWorkerSubmit_MatchesSynchronousRun(t *testing.T) {
	w := NewWorker()
	w.Start()
	defer w.Stop()

	req := runnerTestRequest(1)
	syncResp := runSync(req)
	workerResp := w.Submit(context.Background(), req)

	require.NoError(t, syncResp.Err)
	require.NoError(t, workerResp.Err)
	assert.Equal(t, syncResp.Groups, workerResp.Groups,
		"worker and synchronous paths must produce identical placements")
	assert.Equal(t, req.Token, workerResp.Token)
}

func TestWorkerSubmit_NotStartedFallsBackToSync(t *testing.T) {
	w := NewWorker()
	resp := w.Submit(context.Background(), runnerTestRequest(2))

	require.NoError(t, resp.Err)
	assert.NotEmpty(t, resp.Groups, "missing worker must not hang or fail")
}

func TestWorkerSubmit_StoppedFallsBackToSync(t *testing.T) {
	w := NewWorker()
	w.Start()
	w.Stop()

	done := make(chan Response, 1)
	go func() {
		done <- w.Submit(context.Background(), runnerTestRequest(3))
	}()

	select {
	case resp := <-done:
		require.NoError(t, resp.Err)
		assert.NotEmpty(t, resp.Groups)
	case <-time.After(5 * time.Second):
		t.Fatal("Submit hung on a stopped worker")
	}
}

func TestWorkerSubmit_ErrorsArePropagated(t *testing.T) {
	w := NewWorker()
	w.Start()
	defer w.Stop()

	req := runnerTestRequest(4)
	req.Parts = append(req.Parts, groupedPart("huge", "Century", "SF101", 9000, 9000))

	resp := w.Submit(context.Background(), req)
	require.Error(t, resp.Err)
	var unpackable *UnpackableError
	assert.ErrorAs(t, resp.Err, &unpackable)
}

func TestRunner_TokensDiscardStaleResults(t *testing.T) {
	r := NewRunner(nil)

	first := r.NextToken()
	second := r.NextToken()

	assert.True(t, r.IsStale(first), "superseded token must be stale")
	assert.False(t, r.IsStale(second))

	resp := r.Run(runnerTestRequest(first))
	assert.Equal(t, first, resp.Token, "response carries its request token")
}

func TestRunner_RunAsyncDeliversResponse(t *testing.T) {
	w := NewWorker()
	w.Start()
	defer w.Stop()
	r := NewRunner(w)

	token := r.NextToken()
	ch := r.RunAsync(context.Background(), runnerTestRequest(token))

	select {
	case resp := <-ch:
		require.NoError(t, resp.Err)
		assert.Equal(t, token, resp.Token)
		assert.NotEmpty(t, resp.Groups)
	case <-time.After(5 * time.Second):
		t.Fatal("RunAsync never delivered")
	}
}

func TestRunner_RunAsyncWithoutWorker(t *testing.T) {
	r := NewRunner(nil)
	ch := r.RunAsync(context.Background(), runnerTestRequest(1))

	select {
	case resp := <-ch:
		require.NoError(t, resp.Err)
		assert.NotEmpty(t, resp.Groups)
	case <-time.After(5 * time.Second):
		t.Fatal("RunAsync never delivered")
	}
}

func TestRunner_OverlappingRuns(t *testing.T) {
	// Rapid successive runs: every response arrives, and the caller can
	// tell which one is current by its token.
	w := NewWorker()
	w.Start()
	defer w.Stop()
	r := NewRunner(w)

	const runs = 5
	channels := make([]<-chan Response, 0, runs)
	tokens := make([]uint64, 0, runs)
	for i := 0; i < runs; i++ {
		token := r.NextToken()
		tokens = append(tokens, token)
		channels = append(channels, r.RunAsync(context.Background(), runnerTestRequest(token)))
	}

	for i, ch := range channels {
		select {
		case resp := <-ch:
			require.NoError(t, resp.Err)
			assert.Equal(t, tokens[i], resp.Token)
			if i < runs-1 {
				assert.True(t, r.IsStale(resp.Token))
			} else {
				assert.False(t, r.IsStale(resp.Token))
			}
		case <-time.After(10 * time.Second):
			t.Fatal("response lost")
		}
	}
}
