package models

// AccessStatusAudit represents the ACCESS_STATUS_AUDIT table.
// One row per access request status transition.
type AccessStatusAudit struct {
	AuditID        string  `db:"AUDIT_ID" json:"auditId"`
	RequestID      string  `db:"REQUEST_ID" json:"requestId"`
	CurrentStatus  string  `db:"CURRENT_STATUS" json:"currentStatus"`
	PreviousStatus *string `db:"PREVIOUS_STATUS" json:"previousStatus,omitempty"`
	ActionTime     int64   `db:"ACTION_TIME" json:"actionTime"`
	ActionBy       *string `db:"ACTION_BY" json:"actionBy,omitempty"`
	Reason         *string `db:"REASON" json:"reason,omitempty"`
}
