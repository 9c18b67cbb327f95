package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent(plan string, outcome Outcome) Event {
	return Event{
		Timestamp:    time.Now().UTC(),
		CheckID:      "2b1c5fd4-8a7e-4b3f-9d2a-1c6e8f0a4b7d",
		PlanName:     plan,
		Outcome:      outcome,
		DeviceCount:  3,
		SegmentCount: 5,
		FailedBands:  []Band{{Lo: 500, Hi: 800}},
		DurationUS:   120,
	}
}

func TestEncodeDecodeEvent(t *testing.T) {
	event := sampleEvent("warehouse-entrance", OutcomeUncovered)

	data, err := EncodeEvent(event)
	require.NoError(t, err)

	decoded, err := DecodeEvent(data)
	require.NoError(t, err)

	assert.Equal(t, event.CheckID, decoded.CheckID)
	assert.Equal(t, event.PlanName, decoded.PlanName)
	assert.Equal(t, event.Outcome, decoded.Outcome)
	assert.Equal(t, event.FailedBands, decoded.FailedBands)
	assert.True(t, event.Timestamp.Equal(decoded.Timestamp),
		"timestamp %v != %v", event.Timestamp, decoded.Timestamp)
}

func TestFileLoggerAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checks.flog")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	logger.Log(sampleEvent("plan-a", OutcomeCovered))
	logger.Log(sampleEvent("plan-b", OutcomeUncovered))
	logger.Log(sampleEvent("plan-a", OutcomeUncovered))
	require.NoError(t, logger.Close())

	// Close is idempotent and later Log calls are ignored.
	require.NoError(t, logger.Close())
	logger.Log(sampleEvent("plan-c", OutcomeCovered))

	reader, err := NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	events, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "plan-a", events[0].PlanName)
	assert.Equal(t, OutcomeUncovered, events[1].Outcome)
}

func TestFilteredReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checks.flog")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)
	logger.Log(sampleEvent("plan-a", OutcomeCovered))
	logger.Log(sampleEvent("plan-b", OutcomeUncovered))
	logger.Log(sampleEvent("plan-a", OutcomeUncovered))
	require.NoError(t, logger.Close())

	uncovered := OutcomeUncovered
	reader, err := NewFilteredReader(path, Filter{PlanName: "plan-a", Outcome: &uncovered})
	require.NoError(t, err)
	defer reader.Close()

	events, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "plan-a", events[0].PlanName)
	assert.Equal(t, OutcomeUncovered, events[0].Outcome)
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checks.flog")

	first, err := NewFileLogger(path)
	require.NoError(t, err)
	first.Log(sampleEvent("plan-a", OutcomeCovered))
	require.NoError(t, first.Close())

	second, err := NewFileLogger(path)
	require.NoError(t, err)
	second.Log(sampleEvent("plan-b", OutcomeCovered))
	require.NoError(t, second.Close())

	reader, err := NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	events, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestMemoryLogger(t *testing.T) {
	var logger MemoryLogger
	logger.Log(sampleEvent("plan-a", OutcomeCovered))
	logger.Log(sampleEvent("plan-b", OutcomeInvalid))

	events := logger.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "plan-b", events[1].PlanName)

	// Events returns a copy.
	events[0].PlanName = "mutated"
	assert.Equal(t, "plan-a", logger.Events()[0].PlanName)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "COVERED", OutcomeCovered.String())
	assert.Equal(t, "UNCOVERED", OutcomeUncovered.String())
	assert.Equal(t, "INVALID", OutcomeInvalid.String())
	assert.Equal(t, "UNKNOWN", Outcome(42).String())
}
