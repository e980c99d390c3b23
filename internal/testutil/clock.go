package testutil

import "time"

// SampleFetchedAtRFC3339 is the wire form of SampleFetchedAt, as rendered in
// the fetched_at field of /standings.
const SampleFetchedAtRFC3339 = "2025-03-01T15:00:00Z"

// NowAt pins a snapshot clock to at.
func NowAt(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// MustParseRFC3339 parses a fetched_at style timestamp into UTC. It panics on
// malformed input so fixtures can be declared at package level.
func MustParseRFC3339(v string) time.Time {
	at, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		panic("testutil: bad timestamp " + v + ": " + err.Error())
	}
	return at.UTC()
}
