package models

// HealthRecord represents the HEALTH_RECORD table
type HealthRecord struct {
	RecordID    string `db:"RECORD_ID" json:"recordId"`
	SubjectID   string `db:"SUBJECT_ID" json:"subjectId"`
	AuthorID    string `db:"AUTHOR_ID" json:"authorId"`
	Title       string `db:"TITLE" json:"title"`
	Content     string `db:"CONTENT" json:"content"`
	CreatedTime int64  `db:"CREATED_TIME" json:"createdTime"`
}

// HealthRecordCreateRequest is the API request body for POST /access/health-records/:migrantId
type HealthRecordCreateRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// HealthRecordListResponse is the API response for GET /access/records/:migrantId
type HealthRecordListResponse struct {
	Records []HealthRecord `json:"records"`
	Count   int            `json:"count"`
}

// SummaryResponse is the API response for GET /access/aiSummary/:migrantId
type SummaryResponse struct {
	SubjectID string `json:"subjectId"`
	Summary   string `json:"summary"`
}
