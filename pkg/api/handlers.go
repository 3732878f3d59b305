package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"leadrelay/pkg/clients/retell"
	"leadrelay/pkg/clients/slack"
	"leadrelay/pkg/config"
	"leadrelay/pkg/metrics"
	"leadrelay/pkg/models"
	"leadrelay/pkg/phone"
	"leadrelay/pkg/store"
)

// Field names the voice platform may use for the caller's phone number,
// in lookup precedence order. The platform is not assumed to use a single
// fixed schema.
var phoneFieldCandidates = []string{
	"to", "to_number", "from", "from_number", "phone", "caller", "customer_number",
}

var submissionFieldCandidates = []string{
	"sid", "submission_id", "wix_submission_id",
}

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	leadStore   store.LeadStore
	backendName string
	notifier    slack.Client
	voice       retell.Client
	cfg         *config.Config
	log         *zap.SugaredLogger
}

// NewHandlers creates a new Handlers instance. notifier and voice may be
// nil when the corresponding vendor is not configured.
func NewHandlers(
	leadStore store.LeadStore,
	backendName string,
	notifier slack.Client,
	voice retell.Client,
	cfg *config.Config,
	log *zap.SugaredLogger,
) *Handlers {
	return &Handlers{
		leadStore:   leadStore,
		backendName: backendName,
		notifier:    notifier,
		voice:       voice,
		cfg:         cfg,
		log:         log,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"backend": h.backendName,
	})
}

// HandleWixSubmission processes incoming lead-capture webhooks from the
// Wix form. Storage faults never fail the producer; only a payload we
// cannot make sense of gets a 400.
func (h *Handlers) HandleWixSubmission(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Warnw("error reading request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading request"})
		return
	}

	h.log.Debugw("received wix webhook", "body", string(body))

	var payload models.WixSubmissionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.log.Warnw("error parsing wix payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	lead := leadFromSubmission(&payload)
	if lead == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing contact and submission fields"})
		return
	}

	h.leadStore.Save(c.Request.Context(), lead)
	metrics.IngestsTotal.Inc()

	if h.notifier != nil {
		go func(lead *models.LeadData) {
			if err := h.notifier.NotifyLead(context.Background(), lead); err != nil {
				h.log.Warnw("slack notification failed", "error", err)
			}
		}(lead)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"event_id": uuid.NewString(),
		"message":  "Lead received",
	})
}

// HandleAgentLookup resolves the stored lead for an incoming voice-agent
// initialization request. This endpoint always answers 200 with the full
// variable schema: an error status here would abort the live call that
// depends on it, so every internal failure degrades to defaults.
func (h *Handlers) HandleAgentLookup(c *gin.Context) {
	vars := h.defaultVariables()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Warnw("error reading lookup body", "error", err)
		c.JSON(http.StatusOK, vars)
		return
	}

	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil || req == nil {
		h.log.Debugw("lookup request unparseable, serving defaults")
		c.JSON(http.StatusOK, vars)
		return
	}

	canonical := probePhone(req)
	submissionID := probeString(req, submissionFieldCandidates)

	phoneKey := store.PhoneKey(canonical)
	submissionKey := store.SubmissionKey(submissionID)
	if phoneKey == "" && submissionKey == "" {
		metrics.LookupsTotal.WithLabelValues("no_key").Inc()
		c.JSON(http.StatusOK, vars)
		return
	}

	lead, found := h.leadStore.GetLeadData(c.Request.Context(), phoneKey, submissionKey)
	if !found {
		metrics.LookupsTotal.WithLabelValues("miss").Inc()
		c.JSON(http.StatusOK, vars)
		return
	}

	metrics.LookupsTotal.WithLabelValues("hit").Inc()
	c.JSON(http.StatusOK, h.leadVariables(lead))
}

// HandleAgentCall places an ops-triggered outbound call to a lead,
// seeding the agent with the same variables a lookup would produce.
func (h *Handlers) HandleAgentCall(c *gin.Context) {
	if h.voice == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Voice provider not configured"})
		return
	}

	var req struct {
		Phone        string `json:"phone" binding:"required"`
		SubmissionID string `json:"submission_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing phone number"})
		return
	}

	canonical, ok := phone.Normalize(req.Phone)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unusable phone number"})
		return
	}

	vars := h.defaultVariables()
	lead, found := h.leadStore.GetLeadData(
		c.Request.Context(),
		store.PhoneKey(canonical),
		store.SubmissionKey(req.SubmissionID),
	)
	if found {
		vars = h.leadVariables(lead)
	}

	callID, err := h.voice.CreateCall(c.Request.Context(), h.cfg.RetellFromNumber, canonical, vars)
	if err != nil {
		h.log.Errorw("outbound call failed", "phone", canonical, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Call placement failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "call_id": callID})
}

// HandleListNumbers reports the phone numbers bound to the voice account.
func (h *Handlers) HandleListNumbers(c *gin.Context) {
	if h.voice == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Voice provider not configured"})
		return
	}

	numbers, err := h.voice.ListNumbers(c.Request.Context())
	if err != nil {
		h.log.Errorw("listing numbers failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Provider request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"numbers": numbers})
}

// leadFromSubmission maps the producer payload onto a LeadData record.
// Returns nil when the payload carries nothing identifying at all.
func leadFromSubmission(p *models.WixSubmissionPayload) *models.LeadData {
	lead := &models.LeadData{
		FirstName:    p.Contact.Name.First,
		LastName:     p.Contact.Name.Last,
		FullName:     strings.TrimSpace(p.Contact.Name.First + " " + p.Contact.Name.Last),
		Address:      p.Contact.Address.Formatted,
		AddressLine1: p.Contact.Address.AddressLine,
		City:         p.Contact.Address.City,
		State:        p.Contact.Address.Subdivision,
		Zip:          p.Contact.Address.PostalCode,
		Status:       "new",
		SubmissionID: p.SubmissionID,
		ContactID:    p.ContactID,
	}

	rawPhone := ""
	if len(p.Contact.Phones) > 0 {
		rawPhone = p.Contact.Phones[0]
	}

	for _, field := range p.Submissions {
		label := strings.ToLower(field.Label)
		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}
		switch {
		case strings.Contains(label, "phone"):
			rawPhone = value
		case strings.Contains(label, "project") || strings.Contains(label, "request type"):
			lead.RequestType = value
		case strings.Contains(label, "note") || strings.Contains(label, "message") || strings.Contains(label, "detail"):
			lead.Notes = value
		case strings.Contains(label, "call now"):
			lead.ConsentToCallNow = parseBool(value)
		case strings.Contains(label, "callback") || strings.Contains(label, "call back"):
			lead.PreferredCallbackTime = value
		}
	}

	// A failed normalization leaves the phone blank; partial lead data is
	// still worth storing under the submission key.
	if canonical, ok := phone.Normalize(rawPhone); ok {
		lead.Phone = canonical
	}

	if lead.Phone == "" && lead.SubmissionID == "" && lead.FullName == "" {
		return nil
	}
	return lead
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "yes", "y", "1", "on":
		return true
	}
	return false
}

// probePhone tries each candidate field name, at the top level and inside
// a nested call object, returning the first value that normalizes.
func probePhone(req map[string]any) string {
	scopes := []map[string]any{req}
	for _, nested := range []string{"call_inbound", "call"} {
		if m, ok := req[nested].(map[string]any); ok {
			scopes = append(scopes, m)
		}
	}

	for _, scope := range scopes {
		for _, name := range phoneFieldCandidates {
			raw, ok := scope[name].(string)
			if !ok || raw == "" {
				continue
			}
			if canonical, ok := phone.Normalize(raw); ok {
				return canonical
			}
		}
	}
	return ""
}

func probeString(req map[string]any, candidates []string) string {
	for _, name := range candidates {
		if v, ok := req[name].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// defaultVariables is the safe shape served on any miss or failure.
func (h *Handlers) defaultVariables() models.AgentVariables {
	return models.AgentVariables{
		Honorific:        "there",
		RequestType:      "general inquiry",
		SourceSite:       h.cfg.SourceSite,
		AgentName:        h.cfg.AgentName,
		Location:         h.cfg.Location,
		Status:           "unknown",
		ConsentToCallNow: "false",
	}
}

// leadVariables flattens a stored lead into the agent variable schema.
func (h *Handlers) leadVariables(lead *models.LeadData) models.AgentVariables {
	vars := h.defaultVariables()

	if lead.FirstName != "" {
		// "Hi {{honorific}}" reads as a personal greeting when we know
		// who answered.
		vars.Honorific = lead.FirstName
		vars.FirstName = lead.FirstName
	}
	if lead.LastName != "" {
		vars.LastName = lead.LastName
		vars.LastNameSuffix = " " + lead.LastName
	}
	vars.LeadFullName = lead.FullName
	if lead.RequestType != "" {
		vars.RequestType = lead.RequestType
	}
	vars.LeadPhone = lead.Phone
	vars.CustomerAddress = lead.Address
	vars.AddressLine1 = lead.AddressLine1
	vars.City = lead.City
	vars.State = lead.State
	vars.Zip = lead.Zip
	vars.Notes = lead.Notes
	vars.WixSubmissionID = lead.SubmissionID
	vars.WixContactID = lead.ContactID
	if lead.Status != "" {
		vars.Status = lead.Status
	}
	vars.PreferredCallbackTime = lead.PreferredCallbackTime
	vars.ConsentToCallNow = strconv.FormatBool(lead.ConsentToCallNow)

	return vars
}
