// File: internal/common/model.go
package common

import "time"

// User roles. The role column is a closed enum.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Streamer onboarding cohorts.
const (
	JoinPhase01 = "phase01"
	JoinPhase02 = "phase02"
	JoinPhase03 = "phase03"
)

// WriteResult carries the metadata the store reports for a write. Failures
// travel on the error channel; RowsAffected tells callers whether the write
// actually matched a row.
type WriteResult struct {
	RowsAffected int64         `json:"rows_affected"`
	Duration     time.Duration `json:"-"`
}
