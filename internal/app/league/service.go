package league

import (
	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
)

// Store exposes the currently published snapshot.
type Store interface {
	Current() (*standings.Snapshot, bool)
}

// Service answers standings and form lookups against the current snapshot.
type Service struct {
	store Store
}

// NewService constructs a Service reading from store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Snapshot returns the current snapshot or ErrSnapshotUnavailable.
func (s *Service) Snapshot() (*standings.Snapshot, error) {
	if s == nil || s.store == nil {
		return nil, standings.ErrSnapshotUnavailable
	}
	snap, ok := s.store.Current()
	if !ok || snap == nil {
		return nil, standings.ErrSnapshotUnavailable
	}
	return snap, nil
}

// Standings returns the full table in rank order.
func (s *Service) Standings() (standings.StandingsResponse, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return standings.StandingsResponse{}, err
	}
	return snap.Response(), nil
}

// TeamNames returns every display name sorted case-insensitively.
func (s *Service) TeamNames() ([]string, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Names(), nil
}

// FindStanding returns the standing for name, matched case-insensitively.
func (s *Service) FindStanding(name string) (standings.Standing, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return standings.Standing{}, err
	}
	rec, ok := snap.Standing(name)
	if !ok {
		return standings.Standing{}, unknownTeam(snap, name)
	}
	return rec, nil
}

// FindForm returns the recent results for name, most recent first.
func (s *Service) FindForm(name string) (standings.FormHistory, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return standings.FormHistory{}, err
	}
	form, ok := snap.Form(name)
	if !ok {
		return standings.FormHistory{}, unknownTeam(snap, name)
	}
	return form, nil
}

// FindTeam returns the standing and form for name together.
func (s *Service) FindTeam(name string) (standings.TeamSummary, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return standings.TeamSummary{}, err
	}
	rec, ok := snap.Standing(name)
	if !ok {
		return standings.TeamSummary{}, unknownTeam(snap, name)
	}
	form, _ := snap.Form(name)
	return standings.TeamSummary{Standing: rec, Form: form}, nil
}

func unknownTeam(snap *standings.Snapshot, attempted string) *standings.UnknownTeamError {
	return &standings.UnknownTeamError{Attempted: attempted, ValidNames: snap.Names()}
}
