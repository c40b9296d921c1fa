package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/group-stage/internal/domain/auditlog"
	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
)

type stubTeamRepository struct {
	mu        sync.Mutex
	items     []team.Team
	updateErr error
	listErr   error
}

func (s *stubTeamRepository) List(context.Context) ([]team.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]team.Team(nil), s.items...), nil
}

func (s *stubTeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Name == name {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (s *stubTeamRepository) Create(_ context.Context, item team.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.Name == item.Name {
			return fmt.Errorf("%w: %s", tournament.ErrTeamExists, item.Name)
		}
	}
	s.items = append(s.items, item)
	return nil
}

func (s *stubTeamRepository) Update(_ context.Context, oldName string, item team.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	for idx := range s.items {
		if s.items[idx].Name == oldName {
			s.items[idx] = item
			return nil
		}
	}
	return fmt.Errorf("%w: %s", tournament.ErrTeamNotFound, oldName)
}

func (s *stubTeamRepository) DeleteAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}

type stubMatchRepository struct {
	mu      sync.Mutex
	items   []match.Match
	nextID  int64
	listErr error
}

func (s *stubMatchRepository) List(context.Context) ([]match.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]match.Match(nil), s.items...), nil
}

func (s *stubMatchRepository) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return match.Match{}, false, nil
}

func (s *stubMatchRepository) Create(_ context.Context, item match.Match) (match.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.ID > s.nextID {
			s.nextID = existing.ID
		}
	}
	s.nextID++
	item.ID = s.nextID
	s.items = append(s.items, item)
	return item, nil
}

func (s *stubMatchRepository) Update(_ context.Context, item match.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for idx := range s.items {
		if s.items[idx].ID == item.ID {
			s.items[idx] = item
			return nil
		}
	}
	return fmt.Errorf("%w: id=%d", tournament.ErrMatchNotFound, item.ID)
}

func (s *stubMatchRepository) DeleteAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}

type stubAuditRecorder struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (s *stubAuditRecorder) Record(_ context.Context, message string) (auditlog.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return auditlog.Entry{}, s.err
	}
	s.messages = append(s.messages, message)
	return auditlog.Entry{Message: message, Timestamp: time.Now()}, nil
}

var errStoreDown = errors.New("store down")

func seededTeams() []team.Team {
	return []team.Team{
		{Name: "Alpha", RegistrationDate: team.RegistrationDate{Day: 1, Month: 1}, Group: 1},
		{Name: "Beta", RegistrationDate: team.RegistrationDate{Day: 2, Month: 1}, Group: 1},
		{Name: "Gamma", RegistrationDate: team.RegistrationDate{Day: 3, Month: 1}, Group: 1},
		{Name: "Delta", RegistrationDate: team.RegistrationDate{Day: 4, Month: 1}, Group: 1},
		{Name: "Omega", RegistrationDate: team.RegistrationDate{Day: 5, Month: 1}, Group: 2},
	}
}
