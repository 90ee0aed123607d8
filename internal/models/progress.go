package models

// Sync states for locally created progress records. Pending rows are the
// only on-device data whose loss is a data-loss event; everything else is a
// rebuildable cache.
const (
	SyncStatePending = 0
	SyncStateSynced  = 1
)

// Evidence statuses for a child's session outcome.
const (
	EvidenceNone      = "none"
	EvidenceMaterials = "materials"
	EvidenceComplete  = "complete"
)

// ProgressRecord is one child's outcome for one session. Created locally at
// session close; only the push pipeline mutates it (sync_state 0 -> 1).
type ProgressRecord struct {
	ID             string `db:"id" json:"id"`
	ChildID        string `db:"child_id" json:"child_id"`
	ActivityID     string `db:"activity_id" json:"activity_id"`
	ExecutionDate  string `db:"execution_date" json:"execution_date"`
	Attended       bool   `db:"attended" json:"attended"`
	EvidenceStatus string `db:"evidence_status" json:"evidence_status"`
	SyncState      int    `db:"sync_state" json:"sync_state"`
}

// RemoteProgressRecord is the upload payload: the record without its
// local-only sync_state field.
type RemoteProgressRecord struct {
	ID             string `json:"id"`
	ChildID        string `json:"child_id"`
	ActivityID     string `json:"activity_id"`
	ExecutionDate  string `json:"execution_date"`
	Attended       bool   `json:"attended"`
	EvidenceStatus string `json:"evidence_status"`
}

// ForUpload strips the local sync_state from the record.
func (r ProgressRecord) ForUpload() RemoteProgressRecord {
	return RemoteProgressRecord{
		ID:             r.ID,
		ChildID:        r.ChildID,
		ActivityID:     r.ActivityID,
		ExecutionDate:  r.ExecutionDate,
		Attended:       r.Attended,
		EvidenceStatus: r.EvidenceStatus,
	}
}
