package models

// Represents the form-submission webhook payload sent by Wix
type WixSubmissionPayload struct {
	SubmissionID string     `json:"submissionId"`
	ContactID    string     `json:"contactId"`
	Contact      WixContact `json:"contact"`

	// Free-form form fields, keyed by their configured label.
	Submissions []WixField `json:"submissions"`
}

type WixContact struct {
	Name    WixName    `json:"name"`
	Phones  []string   `json:"phones"`
	Address WixAddress `json:"address"`
}

type WixName struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

type WixAddress struct {
	Formatted   string `json:"formattedAddress"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	Subdivision string `json:"subdivision"`
	PostalCode  string `json:"postalCode"`
}

type WixField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
