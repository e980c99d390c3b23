package standings

import (
	"slices"
	"strings"
	"time"
)

// Snapshot is one complete pull of the league table and form guide.
// It is read-only once constructed.
type Snapshot struct {
	FetchedAt time.Time
	Source    string

	order     []string
	standings map[string]Standing
	forms     map[string]FormHistory
}

// Key returns the lookup key for a team name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewSnapshot assembles a snapshot from records in table order.
// Team names must be unique case-insensitively and every standing needs a form entry.
func NewSnapshot(fetchedAt time.Time, source string, records []Standing, forms []FormHistory) (*Snapshot, error) {
	snap := &Snapshot{
		FetchedAt: fetchedAt,
		Source:    source,
		order:     make([]string, 0, len(records)),
		standings: make(map[string]Standing, len(records)),
		forms:     make(map[string]FormHistory, len(forms)),
	}

	for i, rec := range records {
		key := Key(rec.Name)
		if _, dup := snap.standings[key]; dup {
			return nil, &NormalizationError{Row: i + 1, Field: ColumnNames[ColName], Value: rec.Name, Err: ErrDuplicateTeam}
		}
		snap.standings[key] = rec
		snap.order = append(snap.order, key)
	}
	for _, f := range forms {
		snap.forms[Key(f.Name)] = f
	}

	if err := snap.checkConsistency(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Snapshot) checkConsistency() error {
	var missingForms, missingStandings []string
	for key := range s.standings {
		if _, ok := s.forms[key]; !ok {
			missingForms = append(missingForms, key)
		}
	}
	for key := range s.forms {
		if _, ok := s.standings[key]; !ok {
			missingStandings = append(missingStandings, key)
		}
	}
	if len(missingForms) == 0 && len(missingStandings) == 0 {
		return nil
	}
	slices.Sort(missingForms)
	slices.Sort(missingStandings)
	return &ConsistencyError{MissingForms: missingForms, MissingStandings: missingStandings}
}

// Len returns the number of teams in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Standings returns a copy of the table in rank order.
func (s *Snapshot) Standings() []Standing {
	if s == nil {
		return []Standing{}
	}
	out := make([]Standing, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.standings[key])
	}
	return out
}

// Forms returns a copy of every form history in rank order.
func (s *Snapshot) Forms() []FormHistory {
	if s == nil {
		return []FormHistory{}
	}
	out := make([]FormHistory, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.form(key))
	}
	return out
}

// Standing looks up a team by case-insensitive name.
func (s *Snapshot) Standing(name string) (Standing, bool) {
	if s == nil {
		return Standing{}, false
	}
	rec, ok := s.standings[Key(name)]
	return rec, ok
}

// Form looks up a team's form history by case-insensitive name.
func (s *Snapshot) Form(name string) (FormHistory, bool) {
	if s == nil {
		return FormHistory{}, false
	}
	key := Key(name)
	if _, ok := s.forms[key]; !ok {
		return FormHistory{}, false
	}
	return s.form(key), true
}

func (s *Snapshot) form(key string) FormHistory {
	f := s.forms[key]
	results := slices.Clone(f.Results)
	if results == nil {
		results = []Result{}
	}
	return FormHistory{Name: f.Name, Results: results}
}

// Keys returns the standings and forms key sets, sorted.
func (s *Snapshot) Keys() (standingKeys, formKeys []string) {
	if s == nil {
		return nil, nil
	}
	for key := range s.standings {
		standingKeys = append(standingKeys, key)
	}
	for key := range s.forms {
		formKeys = append(formKeys, key)
	}
	slices.Sort(standingKeys)
	slices.Sort(formKeys)
	return standingKeys, formKeys
}

// Names returns every team's display name sorted case-insensitively.
func (s *Snapshot) Names() []string {
	if s == nil {
		return []string{}
	}
	names := make([]string, 0, len(s.order))
	for _, key := range s.order {
		names = append(names, s.standings[key].Name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return names
}

// Response renders the snapshot as the /standings payload.
func (s *Snapshot) Response() StandingsResponse {
	resp := StandingsResponse{Standings: s.Standings()}
	if s != nil {
		resp.Source = s.Source
		if !s.FetchedAt.IsZero() {
			resp.FetchedAt = s.FetchedAt.UTC().Format(time.RFC3339)
		}
	}
	return resp
}
