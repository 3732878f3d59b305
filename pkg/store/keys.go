package store

const (
	phoneKeyPrefix      = "ph:"
	submissionKeyPrefix = "sub:"
)

// PhoneKey derives the cache key for a canonical phone number. Returns ""
// for an empty input; callers must only pass numbers that already passed
// normalization, so malformed numbers never enter the keyspace.
//
// Keys are plain text on purpose: the keyspace is small and unhashed keys
// stay human-debuggable in redis-cli.
func PhoneKey(canonicalPhone string) string {
	if canonicalPhone == "" {
		return ""
	}
	return phoneKeyPrefix + canonicalPhone
}

// SubmissionKey derives the cache key for a form submission id. Returns ""
// for an empty input.
func SubmissionKey(submissionID string) string {
	if submissionID == "" {
		return ""
	}
	return submissionKeyPrefix + submissionID
}
