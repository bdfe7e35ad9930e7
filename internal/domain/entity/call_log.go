package entity

// CallLog records one automated outbound call placed for a bill
type CallLog struct {
	ID            int64      `json:"id"`
	BillID        int64      `json:"bill_id"`
	VapiCallID    *string    `json:"vapi_call_id,omitempty"`
	CustomerPhone string     `json:"customer_phone"`
	Status        string     `json:"status"`
	Outcome       *string    `json:"outcome,omitempty"`
	Duration      *int       `json:"duration,omitempty"`
	StartedAt     *Timestamp `json:"started_at,omitempty"`
	EndedAt       *Timestamp `json:"ended_at,omitempty"`
	Transcript    *string    `json:"transcript,omitempty"`
	RecordingURL  *string    `json:"recording_url,omitempty"`
	SMSSent       int        `json:"sms_sent"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
	CreatedAt     Timestamp  `json:"created_at"`
}

// DurationSeconds returns the call duration, 0 when unknown
func (c *CallLog) DurationSeconds() int {
	if c.Duration == nil {
		return 0
	}
	return *c.Duration
}
