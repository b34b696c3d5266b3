package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Version is the current audit record format version.
// Increment when making breaking changes to record structure.
const Version = 1

// Record is the persisted form of one gate decision.
// It carries enough to answer "what was asked, and why was it denied"
// long after the snapshot that produced the decision is gone.
type Record struct {
	// Metadata
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	CheckID   string    `json:"check_id"`
	RuleID    string    `json:"rule_id"`
	Timestamp time.Time `json:"timestamp"`

	// Decision
	Expression string `json:"expression"`
	Allowed    bool   `json:"allowed"`
	Severity   string `json:"severity,omitempty"`
	ErrKind    string `json:"err_kind,omitempty"`
	Message    string `json:"message,omitempty"`

	// Snapshot is the JSON-serialized context the rule was evaluated
	// against, when the caller chose to retain it.
	Snapshot json.RawMessage `json:"snapshot,omitempty"`
}

// Marshal serializes a record to JSON.
func (r *Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// Unmarshal deserializes a record from JSON.
func Unmarshal(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// New creates a new record with a generated ID and the current time.
func New(checkID, ruleID, expression string, allowed bool) *Record {
	return &Record{
		Version:    Version,
		ID:         uuid.NewString(),
		CheckID:    checkID,
		RuleID:     ruleID,
		Timestamp:  time.Now().UTC(),
		Expression: expression,
		Allowed:    allowed,
	}
}

// WithSeverity sets the rule severity for denied decisions.
func (r *Record) WithSeverity(severity string) *Record {
	r.Severity = severity
	return r
}

// WithErrKind sets the failure classification when evaluation errored.
func (r *Record) WithErrKind(kind string) *Record {
	r.ErrKind = kind
	return r
}

// WithMessage sets the rendered violation message.
func (r *Record) WithMessage(message string) *Record {
	r.Message = message
	return r
}

// WithSnapshot attaches the serialized evaluation context.
func (r *Record) WithSnapshot(snapshot json.RawMessage) *Record {
	r.Snapshot = snapshot
	return r
}
