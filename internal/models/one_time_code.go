package models

// OneTimeCode represents the ONE_TIME_CODE table.
// A code is bound 1:1 to an access request and is single-use: once consumed
// (verified, exhausted, or expired alongside its request) it is never reusable.
type OneTimeCode struct {
	RequestID   string `db:"REQUEST_ID" json:"requestId"`
	CodeValue   string `db:"CODE_VALUE" json:"-"`
	Attempts    int    `db:"ATTEMPTS" json:"attempts"`
	MaxAttempts int    `db:"MAX_ATTEMPTS" json:"maxAttempts"`
	Consumed    bool   `db:"CONSUMED" json:"consumed"`
	CreatedTime int64  `db:"CREATED_TIME" json:"createdTime"`
}

// AttemptsExhausted reports whether the attempt bound has been reached.
func (c *OneTimeCode) AttemptsExhausted() bool {
	return c.Attempts >= c.MaxAttempts
}

// VerifyRequest is the API request body for POST /access/verify
type VerifyRequest struct {
	RequestID string `json:"requestId" binding:"required"`
	OTP       string `json:"otp" binding:"required"`
}
