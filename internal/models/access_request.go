package models

// Access request statuses
const (
	RequestStatusPending  = "PENDING"
	RequestStatusVerified = "VERIFIED"
	RequestStatusExpired  = "EXPIRED"
	RequestStatusRevoked  = "REVOKED"
)

// AccessRequest represents the ACCESS_REQUEST table
type AccessRequest struct {
	RequestID     string `db:"REQUEST_ID" json:"requestId"`
	SubjectID     string `db:"SUBJECT_ID" json:"subjectId"`
	RequesterID   string `db:"REQUESTER_ID" json:"requesterId"`
	CurrentStatus string `db:"CURRENT_STATUS" json:"currentStatus"`
	CreatedTime   int64  `db:"CREATED_TIME" json:"createdTime"`
	ExpiryTime    int64  `db:"EXPIRY_TIME" json:"expiryTime"`
}

// IsExpired reports whether the request's TTL has passed at the given time (millis).
func (r *AccessRequest) IsExpired(nowMillis int64) bool {
	return nowMillis >= r.ExpiryTime
}

// AccessRequestCreateRequest is the API request body for POST /access/request
type AccessRequestCreateRequest struct {
	SubjectID string `json:"subjectId" binding:"required"`
}

// AccessRequestResponse is the API response for a created access request
type AccessRequestResponse struct {
	RequestID     string `json:"requestId"`
	SubjectID     string `json:"subjectId"`
	RequesterID   string `json:"requesterId"`
	CurrentStatus string `json:"currentStatus"`
	CreatedTime   int64  `json:"createdTime"`
	ExpiryTime    int64  `json:"expiryTime"`
	Message       string `json:"message,omitempty"`
}

// ToResponse converts an AccessRequest to its API representation
func (r *AccessRequest) ToResponse() *AccessRequestResponse {
	return &AccessRequestResponse{
		RequestID:     r.RequestID,
		SubjectID:     r.SubjectID,
		RequesterID:   r.RequesterID,
		CurrentStatus: r.CurrentStatus,
		CreatedTime:   r.CreatedTime,
		ExpiryTime:    r.ExpiryTime,
	}
}
