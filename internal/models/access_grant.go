package models

import "strings"

// Grant scope capabilities
const (
	ScopeReadProfile  = "ReadProfile"
	ScopeReadRecords  = "ReadRecords"
	ScopeCreateRecord = "CreateRecord"
)

// DefaultGrantScope is the capability set minted on successful OTP verification.
var DefaultGrantScope = []string{ScopeReadProfile, ScopeReadRecords, ScopeCreateRecord}

// AccessGrant represents the ACCESS_GRANT table.
// A grant is immutable once minted; its expiry clock is independent of the
// originating request's TTL and is never extended in place.
type AccessGrant struct {
	GrantID     string `db:"GRANT_ID" json:"grantId"`
	RequestID   string `db:"REQUEST_ID" json:"requestId"`
	SubjectID   string `db:"SUBJECT_ID" json:"subjectId"`
	RequesterID string `db:"REQUESTER_ID" json:"requesterId"`
	Scope       string `db:"SCOPE" json:"scope"`
	IssuedTime  int64  `db:"ISSUED_TIME" json:"issuedTime"`
	ExpiryTime  int64  `db:"EXPIRY_TIME" json:"expiryTime"`
}

// IsExpired reports whether the grant's TTL has passed at the given time (millis).
func (g *AccessGrant) IsExpired(nowMillis int64) bool {
	return nowMillis >= g.ExpiryTime
}

// HasScope reports whether the grant carries the given capability.
func (g *AccessGrant) HasScope(capability string) bool {
	for _, s := range strings.Split(g.Scope, ",") {
		if strings.TrimSpace(s) == capability {
			return true
		}
	}
	return false
}

// JoinScope serializes a capability list into the stored SCOPE column format.
func JoinScope(capabilities []string) string {
	return strings.Join(capabilities, ",")
}

// GrantResponse is the API response for a minted access grant
type GrantResponse struct {
	GrantID     string   `json:"grantId"`
	RequestID   string   `json:"requestId"`
	SubjectID   string   `json:"subjectId"`
	RequesterID string   `json:"requesterId"`
	Scope       []string `json:"scope"`
	IssuedTime  int64    `json:"issuedTime"`
	ExpiryTime  int64    `json:"expiryTime"`
	Message     string   `json:"message,omitempty"`
}

// ToResponse converts an AccessGrant to its API representation
func (g *AccessGrant) ToResponse() *GrantResponse {
	return &GrantResponse{
		GrantID:     g.GrantID,
		RequestID:   g.RequestID,
		SubjectID:   g.SubjectID,
		RequesterID: g.RequesterID,
		Scope:       strings.Split(g.Scope, ","),
		IssuedTime:  g.IssuedTime,
		ExpiryTime:  g.ExpiryTime,
	}
}
