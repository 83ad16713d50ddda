package trading

import (
	"sync"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
)

// SeasonChangeListener is told about every effective season change
type SeasonChangeListener func(previous, current shared.Season)

// SeasonState holds the current trading season for one engine
type SeasonState struct {
	mu        sync.RWMutex
	current   shared.Season
	listeners []SeasonChangeListener
}

// NewSeasonState creates an unset season state
func NewSeasonState() *SeasonState {
	return &SeasonState{}
}

// Set validates and stores a season. Listeners run only when the value actually changes.
func (s *SeasonState) Set(raw string) (shared.Season, error) {
	season, err := shared.ParseSeason(raw)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	previous := s.current
	s.current = season
	listeners := append([]SeasonChangeListener(nil), s.listeners...)
	s.mu.Unlock()

	if previous != season {
		for _, l := range listeners {
			l(previous, season)
		}
	}
	return season, nil
}

// Current returns the season and whether one has been set
func (s *SeasonState) Current() (shared.Season, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != ""
}

// Require returns the season or an InvalidArgument error when none is set
func (s *SeasonState) Require() (shared.Season, error) {
	season, ok := s.Current()
	if !ok {
		return "", shared.NewValidationError("season", "season has not been set")
	}
	return season, nil
}

// OnChange registers a listener
func (s *SeasonState) OnChange(listener SeasonChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}
