package domain

import (
	"reflect"
	"time"
)

// RiskLevel classifies the severity of an audited action.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ValidRiskLevel reports whether l is a known risk level.
func ValidRiskLevel(l RiskLevel) bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// AuditEntry is a single append-only audit record. Entries are written in the
// same transaction as the mutation they describe and are never updated or
// deleted; neither the repository nor the schema exposes a mutation path.
type AuditEntry struct {
	ID                string
	TenantID          string
	ActorID           string
	Action            string
	RiskLevel         RiskLevel
	Reason            string
	OldValues         map[string]any
	NewValues         map[string]any
	Diff              map[string][]any // key -> [old, new], changed keys only
	PasswordConfirmed bool
	IPAddress         string
	CreatedAt         time.Time
}

// Diff compares two snapshots. For every key present in either map whose
// values differ it yields {key: [old, new]}; keys with identical values are
// omitted. A key missing from one side diffs against nil.
func Diff(oldValues, newValues map[string]any) map[string][]any {
	out := make(map[string][]any)
	for k, ov := range oldValues {
		nv, ok := newValues[k]
		if !ok {
			out[k] = []any{ov, nil}
			continue
		}
		if !reflect.DeepEqual(ov, nv) {
			out[k] = []any{ov, nv}
		}
	}
	for k, nv := range newValues {
		if _, ok := oldValues[k]; !ok {
			out[k] = []any{nil, nv}
		}
	}
	return out
}

// AuditFilter holds filter parameters for forensic audit queries.
type AuditFilter struct {
	ActorID   *string
	RiskLevel *RiskLevel
	Action    *string
	From      *time.Time
	To        *time.Time
	Page      PageRequest
}
