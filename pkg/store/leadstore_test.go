package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leadrelay/pkg/models"
	"leadrelay/pkg/timeutil"
)

type fakeEntry struct {
	value string
	ttl   time.Duration
}

// fakeBackend records writes and can be forced to fail either direction.
type fakeBackend struct {
	mu      sync.Mutex
	entries map[string]fakeEntry
	setErr  error
	getErr  error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{entries: make(map[string]fakeEntry)}
}

func (b *fakeBackend) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if b.setErr != nil {
		return b.setErr
	}
	b.mu.Lock()
	b.entries[key] = fakeEntry{value: value, ttl: ttl}
	b.mu.Unlock()
	return nil
}

func (b *fakeBackend) Get(_ context.Context, key string) (string, bool, error) {
	if b.getErr != nil {
		return "", false, b.getErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[key]
	if !ok {
		return "", false, nil
	}
	return e.value, true, nil
}

func (b *fakeBackend) Name() string { return "fake" }

func testLeadStore(b Backend, ttl time.Duration) LeadStore {
	return NewLeadStore(b, ttl, zap.NewNop().Sugar())
}

func TestKeyDerivation(t *testing.T) {
	assert.Equal(t, "ph:+12814562323", PhoneKey("+12814562323"))
	assert.Equal(t, "sub:sub-1", SubmissionKey("sub-1"))
	assert.Equal(t, "", PhoneKey(""))
	assert.Equal(t, "", SubmissionKey(""))
}

func TestSaveAndGetLeadData(t *testing.T) {
	ctx := context.Background()
	lead := &models.LeadData{
		FirstName:    "Dana",
		LastName:     "Reeves",
		FullName:     "Dana Reeves",
		Phone:        "+12814562323",
		SubmissionID: "sub-1",
		Status:       "new",
	}

	tests := []struct {
		name          string
		phoneKey      string
		submissionKey string
	}{
		{"by phone key", PhoneKey("+12814562323"), ""},
		{"by submission key", "", SubmissionKey("sub-1")},
		{"by both keys", PhoneKey("+12814562323"), SubmissionKey("sub-1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testLeadStore(NewMemoryBackend(nil), time.Hour)
			s.Save(ctx, lead)

			got, found := s.GetLeadData(ctx, tt.phoneKey, tt.submissionKey)
			require.True(t, found)
			assert.Equal(t, lead, got)
		})
	}
}

func TestSaveNormalizesPhoneForKey(t *testing.T) {
	backend := newFakeBackend()
	s := testLeadStore(backend, time.Hour)

	s.Save(context.Background(), &models.LeadData{Phone: "(281) 456-2323"})

	_, ok := backend.entries["ph:+12814562323"]
	assert.True(t, ok, "phone key must be derived from the canonical form")
}

func TestSaveUsesConfiguredTTL(t *testing.T) {
	backend := newFakeBackend()
	s := testLeadStore(backend, 86400*time.Second)

	s.Save(context.Background(), &models.LeadData{
		Phone:        "+12814562323",
		SubmissionID: "sub-1",
	})

	require.Len(t, backend.entries, 2)
	for key, e := range backend.entries {
		assert.Equal(t, 86400*time.Second, e.ttl, "key %s", key)
	}
}

func TestSaveWithoutDerivableKeysIsNoop(t *testing.T) {
	backend := newFakeBackend()
	s := testLeadStore(backend, time.Hour)

	s.Save(context.Background(), &models.LeadData{FirstName: "Dana", Phone: "not a number"})

	assert.Empty(t, backend.entries)
}

func TestSaveSwallowsBackendErrors(t *testing.T) {
	backend := newFakeBackend()
	backend.setErr = errors.New("connection refused")
	s := testLeadStore(backend, time.Hour)

	// Must not panic or surface the error in any way.
	s.Save(context.Background(), &models.LeadData{Phone: "+12814562323"})

	_, found := s.GetLeadData(context.Background(), PhoneKey("+12814562323"), "")
	assert.False(t, found)
}

func TestGetLeadDataBackendErrorIsMiss(t *testing.T) {
	backend := newFakeBackend()
	backend.getErr = errors.New("i/o timeout")
	s := testLeadStore(backend, time.Hour)

	_, found := s.GetLeadData(context.Background(), PhoneKey("+12814562323"), SubmissionKey("sub-1"))
	assert.False(t, found)
}

func TestGetLeadDataAxisExclusion(t *testing.T) {
	ctx := context.Background()
	s := testLeadStore(NewMemoryBackend(nil), time.Hour)

	// Indexed only by submission id: the phone axis must not match.
	s.Save(ctx, &models.LeadData{SubmissionID: "sub-only"})

	_, found := s.GetLeadData(ctx, PhoneKey("+12814562323"), "")
	assert.False(t, found)

	got, found := s.GetLeadData(ctx, "", SubmissionKey("sub-only"))
	require.True(t, found)
	assert.Equal(t, "sub-only", got.SubmissionID)
}

func TestGetLeadDataPhoneKeyWinsOverSubmissionKey(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend(nil)
	s := testLeadStore(backend, time.Hour)

	// Two different records, e.g. a phone number reassigned between leads.
	require.NoError(t, backend.Set(ctx, PhoneKey("+12814562323"), `{"first_name":"Current"}`, time.Hour))
	require.NoError(t, backend.Set(ctx, SubmissionKey("sub-old"), `{"first_name":"Stale"}`, time.Hour))

	got, found := s.GetLeadData(ctx, PhoneKey("+12814562323"), SubmissionKey("sub-old"))
	require.True(t, found)
	assert.Equal(t, "Current", got.FirstName)
}

func TestGetLeadDataAfterTTLExpiry(t *testing.T) {
	ctx := context.Background()
	clock := timeutil.NewFrozenClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	s := testLeadStore(NewMemoryBackend(clock), 86400*time.Second)

	s.Save(ctx, &models.LeadData{Phone: "+12814562323", SubmissionID: "sub-1"})

	clock.Advance(86401 * time.Second)

	_, found := s.GetLeadData(ctx, PhoneKey("+12814562323"), SubmissionKey("sub-1"))
	assert.False(t, found, "both keys must expire together")
}

func TestRepeatSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := testLeadStore(NewMemoryBackend(nil), time.Hour)

	s.Save(ctx, &models.LeadData{Phone: "+12814562323", SubmissionID: "sub-1", Notes: "first"})
	s.Save(ctx, &models.LeadData{Phone: "+12814562323", SubmissionID: "sub-1", Notes: "second"})

	got, found := s.GetLeadData(ctx, PhoneKey("+12814562323"), "")
	require.True(t, found)
	assert.Equal(t, "second", got.Notes)

	got, found = s.GetLeadData(ctx, "", SubmissionKey("sub-1"))
	require.True(t, found)
	assert.Equal(t, "second", got.Notes)
}
