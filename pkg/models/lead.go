package models

// LeadData is the normalized snapshot of one captured lead. Every field
// is optional; an empty field simply means the form did not provide it.
type LeadData struct {
	FullName  string `json:"full_name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`

	// Canonical international format, or empty when normalization failed.
	Phone string `json:"phone,omitempty"`

	Address      string `json:"address,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Zip          string `json:"zip,omitempty"`

	Notes       string `json:"notes,omitempty"`
	RequestType string `json:"request_type,omitempty"`

	ConsentToCallNow      bool   `json:"consent_to_call_now,omitempty"`
	PreferredCallbackTime string `json:"preferred_callback_time,omitempty"`

	Status string `json:"status,omitempty"`

	// Correlation identifiers from the originating Wix form.
	SubmissionID string `json:"submission_id,omitempty"`
	ContactID    string `json:"contact_id,omitempty"`
}
