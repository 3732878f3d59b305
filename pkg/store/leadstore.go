package store

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"leadrelay/pkg/models"
	"leadrelay/pkg/phone"
)

// LeadStore defines the interface for persisting and resolving captured leads
type LeadStore interface {
	// Save writes the lead under every derivable key (phone, submission id)
	// with the configured TTL. Write failures are logged and swallowed:
	// ingest must not fail the producer just because caching did.
	Save(ctx context.Context, lead *models.LeadData)

	// GetLeadData tries phoneKey first, then submissionKey, and returns the
	// first hit. Empty keys skip that axis; backend errors count as misses.
	GetLeadData(ctx context.Context, phoneKey, submissionKey string) (*models.LeadData, bool)
}

type leadStoreImpl struct {
	backend Backend
	ttl     time.Duration
	log     *zap.SugaredLogger
}

// NewLeadStore creates a new lead store on top of the given backend
func NewLeadStore(backend Backend, ttl time.Duration, log *zap.SugaredLogger) LeadStore {
	return &leadStoreImpl{
		backend: backend,
		ttl:     ttl,
		log:     log,
	}
}

func (s *leadStoreImpl) Save(ctx context.Context, lead *models.LeadData) {
	var keys []string
	if canonical, ok := phone.Normalize(lead.Phone); ok {
		keys = append(keys, PhoneKey(canonical))
	}
	if k := SubmissionKey(lead.SubmissionID); k != "" {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		// Nothing to index by; the lead is unreachable either way.
		s.log.Debugw("lead has no derivable keys, skipping save")
		return
	}

	payload, err := json.Marshal(lead)
	if err != nil {
		s.log.Errorw("failed to serialize lead", "error", err)
		return
	}

	for _, key := range keys {
		if err := s.backend.Set(ctx, key, string(payload), s.ttl); err != nil {
			s.log.Warnw("lead cache write failed", "key", key, "error", err)
		}
	}
}

func (s *leadStoreImpl) GetLeadData(ctx context.Context, phoneKey, submissionKey string) (*models.LeadData, bool) {
	for _, key := range []string{phoneKey, submissionKey} {
		if key == "" {
			continue
		}

		raw, found, err := s.backend.Get(ctx, key)
		if err != nil {
			s.log.Warnw("lead cache read failed", "key", key, "error", err)
			continue
		}
		if !found {
			continue
		}

		var lead models.LeadData
		if err := json.Unmarshal([]byte(raw), &lead); err != nil {
			s.log.Warnw("stored lead is unreadable", "key", key, "error", err)
			continue
		}
		return &lead, true
	}

	return nil, false
}
