package models

// AgentVariables is the flat variable map consumed by the voice agent.
// The field set is fixed: the shape is identical whether a lead was
// found or not, so the agent prompt can reference every variable
// unconditionally.
type AgentVariables struct {
	Honorific             string `json:"honorific"`
	RequestType           string `json:"request_type"`
	SourceSite            string `json:"source_site"`
	AgentName             string `json:"agent_name"`
	LastName              string `json:"last_name"`
	LastNameSuffix        string `json:"last_name_suffix"`
	LeadFullName          string `json:"lead_full_name"`
	FirstName             string `json:"first_name"`
	LeadPhone             string `json:"lead_phone"`
	CustomerAddress       string `json:"customer_address"`
	AddressLine1          string `json:"address_line1"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	Zip                   string `json:"zip"`
	Notes                 string `json:"notes"`
	Location              string `json:"location"`
	WixSubmissionID       string `json:"wix_submission_id"`
	WixContactID          string `json:"wix_contact_id"`
	Status                string `json:"status"`
	PreferredCallbackTime string `json:"preferred_callback_time"`
	ConsentToCallNow      string `json:"consent_to_call_now"`
}
