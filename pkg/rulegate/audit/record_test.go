package audit_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/randalmurphal/rulegate/pkg/rulegate/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_New(t *testing.T) {
	rec := audit.New("check-123", "max-spread", "spread_pips <= max_spread", false)

	assert.Equal(t, audit.Version, rec.Version)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "check-123", rec.CheckID)
	assert.Equal(t, "max-spread", rec.RuleID)
	assert.Equal(t, "spread_pips <= max_spread", rec.Expression)
	assert.False(t, rec.Allowed)
	assert.Empty(t, rec.Severity) // Not set by default
	assert.Empty(t, rec.ErrKind)
	assert.Empty(t, rec.Message)
	assert.Nil(t, rec.Snapshot)
	assert.False(t, rec.Timestamp.IsZero())
}

func TestRecord_New_UniqueIDs(t *testing.T) {
	a := audit.New("check-1", "max-spread", "true", true)
	b := audit.New("check-1", "max-spread", "true", true)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestRecord_WithSeverity(t *testing.T) {
	rec := audit.New("check-1", "max-spread", "spread_pips <= 3", false).
		WithSeverity("block")

	assert.Equal(t, "block", rec.Severity)
}

func TestRecord_WithErrKind(t *testing.T) {
	rec := audit.New("check-1", "stale-quote", "quote.age_ms < limit", false).
		WithErrKind("path not found")

	assert.Equal(t, "path not found", rec.ErrKind)
}

func TestRecord_WithMessage(t *testing.T) {
	rec := audit.New("check-1", "max-spread", "spread_pips <= 3", false).
		WithMessage("spread 4.5 exceeds cap 3")

	assert.Equal(t, "spread 4.5 exceeds cap 3", rec.Message)
}

func TestRecord_WithSnapshot(t *testing.T) {
	snap := json.RawMessage(`{"spread_pips": 4.5}`)
	rec := audit.New("check-1", "max-spread", "spread_pips <= 3", false).
		WithSnapshot(snap)

	assert.Equal(t, snap, rec.Snapshot)
}

func TestRecord_MarshalUnmarshal(t *testing.T) {
	snap := json.RawMessage(`{"spread_pips": 4.5, "max_spread": 3}`)
	original := audit.New("check-123", "max-spread", "spread_pips <= max_spread", false).
		WithSeverity("block").
		WithMessage("spread too wide").
		WithSnapshot(snap)

	// Marshal
	data, err := original.Marshal()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	// Unmarshal
	loaded, err := audit.Unmarshal(data)
	require.NoError(t, err)

	// Compare fields
	assert.Equal(t, original.Version, loaded.Version)
	assert.Equal(t, original.ID, loaded.ID)
	assert.Equal(t, original.CheckID, loaded.CheckID)
	assert.Equal(t, original.RuleID, loaded.RuleID)
	assert.Equal(t, original.Expression, loaded.Expression)
	assert.Equal(t, original.Allowed, loaded.Allowed)
	assert.Equal(t, original.Severity, loaded.Severity)
	assert.Equal(t, original.Message, loaded.Message)
	assert.JSONEq(t, string(original.Snapshot), string(loaded.Snapshot))

	// Timestamp should be preserved (within a small margin due to JSON serialization)
	assert.WithinDuration(t, original.Timestamp, loaded.Timestamp, time.Second)
}

func TestRecord_UnmarshalInvalidJSON(t *testing.T) {
	_, err := audit.Unmarshal([]byte("not json"))
	assert.Error(t, err)
}

func TestRecord_JSONFormat(t *testing.T) {
	rec := audit.New("check-1", "max-spread", "spread_pips <= 3", false).
		WithSeverity("block").
		WithSnapshot(json.RawMessage(`{"spread_pips":4.5}`))

	data, err := rec.Marshal()
	require.NoError(t, err)

	// Verify it's valid JSON
	var raw map[string]any
	err = json.Unmarshal(data, &raw)
	require.NoError(t, err)

	// Verify expected fields exist
	assert.Equal(t, float64(audit.Version), raw["version"])
	assert.Equal(t, rec.ID, raw["id"])
	assert.Equal(t, "check-1", raw["check_id"])
	assert.Equal(t, "max-spread", raw["rule_id"])
	assert.Equal(t, "spread_pips <= 3", raw["expression"])
	assert.Equal(t, false, raw["allowed"])
	assert.Equal(t, "block", raw["severity"])
	assert.NotEmpty(t, raw["timestamp"])

	// Snapshot should be nested JSON
	snapMap, ok := raw["snapshot"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4.5), snapMap["spread_pips"])
}

func TestRecord_JSONFormat_OmitsEmpty(t *testing.T) {
	rec := audit.New("check-1", "max-spread", "true", true)

	data, err := rec.Marshal()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	// Optional fields should not appear on clean allows
	assert.NotContains(t, raw, "severity")
	assert.NotContains(t, raw, "err_kind")
	assert.NotContains(t, raw, "message")
	assert.NotContains(t, raw, "snapshot")
}

func TestRecord_LargeSnapshot(t *testing.T) {
	// Test with a larger snapshot payload
	snap := make(map[string]string)
	for i := 0; i < 1000; i++ {
		snap[string(rune('a'+i%26))+string(rune('0'+i%10))] = "value"
	}

	snapBytes, err := json.Marshal(snap)
	require.NoError(t, err)

	rec := audit.New("check-1", "max-spread", "true", true).
		WithSnapshot(snapBytes)
	data, err := rec.Marshal()
	require.NoError(t, err)

	loaded, err := audit.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, string(snapBytes), string(loaded.Snapshot))
}
