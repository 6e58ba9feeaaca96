package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"urlguard/internal/config"
	"urlguard/internal/heuristic"
	"urlguard/internal/metrics"
	"urlguard/internal/models"
	"urlguard/internal/normalize"
	"urlguard/internal/safebrowsing"

	"github.com/google/uuid"
)

// Lookuper submits one threat query to the external lookup service. The real
// HTTP client and test doubles both satisfy it.
type Lookuper interface {
	Lookup(ctx context.Context, query safebrowsing.Query) (*safebrowsing.Result, error)
}

type Service struct {
	checks          map[string]*models.Check
	activeChecks    map[string]struct{}
	completedChecks map[string]struct{}
	subs            []chan models.StateChange
	scanner         *heuristic.Scanner
	lookup          Lookuper
	cfg             *config.Config
	log             *slog.Logger
	mu              sync.Mutex
}

func NewService(cfg *config.Config, log *slog.Logger, lookup Lookuper) *Service {
	return &Service{
		cfg:             cfg,
		log:             log,
		lookup:          lookup,
		scanner:         heuristic.NewScanner(),
		checks:          make(map[string]*models.Check),
		activeChecks:    make(map[string]struct{}),
		completedChecks: make(map[string]struct{}),
	}
}

// Check normalizes raw input and starts one threat check. Invalid input
// resolves immediately; valid input is pending until the lookup finishes.
// Overlapping checks run independently, nothing sequences or cancels them.
func (s *Service) Check(ctx context.Context, rawURL string) (*models.CheckResponse, error) {
	checkID := uuid.New().String()

	canonical, err := normalize.Normalize(rawURL)
	if err != nil {
		s.log.Warn("URL rejected", slog.String("url", rawURL), slog.String("reason", err.Error()))

		s.mu.Lock()
		check := &models.Check{
			ID:      checkID,
			Verdict: models.VerdictInvalid,
			URL:     rawURL,
			Reason:  err.Error(),
		}
		s.checks[checkID] = check
		s.completedChecks[checkID] = struct{}{}
		res := s.snapshot(check)
		s.mu.Unlock()

		metrics.ChecksTotal.WithLabelValues(string(models.VerdictInvalid)).Inc()
		s.notify(check)

		return res, nil
	}

	s.mu.Lock()
	check := &models.Check{
		ID:           checkID,
		Verdict:      models.VerdictPending,
		URL:          rawURL,
		CanonicalURL: canonical,
	}
	s.checks[checkID] = check
	s.activeChecks[checkID] = struct{}{}
	res := s.snapshot(check)
	s.mu.Unlock()

	s.log.Info("check started", slog.String("checkID", checkID), slog.String("url", canonical))
	s.notify(check)

	go s.runCheck(checkID, canonical)

	return res, nil
}

// Status returns the current state of one check.
func (s *Service) Status(ctx context.Context, checkID string) (*models.CheckResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	check, ok := s.checks[checkID]
	if !ok {
		s.log.Error("check not found", slog.String("checkID", checkID))

		return nil, fmt.Errorf("check with id %s not found", checkID)
	}

	return s.snapshot(check), nil
}

// Subscribe returns a channel of verdict transitions. Events are dropped
// rather than blocking when the subscriber falls behind.
func (s *Service) Subscribe() <-chan models.StateChange {
	ch := make(chan models.StateChange, 16)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	return ch
}

// runCheck resolves one pending check: heuristic short-circuit first, then
// the external lookup. The pending state is always cleared, whatever path
// exits, including a panicking transport.
func (s *Service) runCheck(checkID, canonical string) {
	verdict := models.VerdictUnknown
	var threats []string
	reason := "threat lookup failed"

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("check panicked", slog.String("checkID", checkID), slog.Any("panic", r))
		}
		s.finish(checkID, verdict, threats, reason)
	}()

	if matches := s.scanner.Scan(canonical); len(matches) > 0 {
		rules := make([]string, 0, len(matches))
		for _, m := range matches {
			rules = append(rules, m.Rule)
			metrics.HeuristicHits.WithLabelValues(m.Rule).Inc()
		}

		s.log.Info("heuristic match", slog.String("checkID", checkID), slog.Any("rules", rules))

		verdict = models.VerdictUnsafe
		threats = []string{heuristic.Category}
		reason = "matched local denylist"

		return
	}

	query := safebrowsing.NewQuery(s.cfg.Lookup.ClientID, s.cfg.Lookup.ClientVersion, canonical)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Lookup.Timeout)
	defer cancel()

	start := time.Now()
	result, err := s.lookup.Lookup(ctx, query)
	metrics.LookupDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		verdict = models.VerdictUnknown
		reason = lookupReason(err)

		s.log.Error("lookup failed", slog.String("checkID", checkID), slog.String("error", err.Error()))

		return
	}

	if len(result.Matches) > 0 {
		verdict = models.VerdictUnsafe
		threats = make([]string, 0, len(result.Matches))
		for _, m := range result.Matches {
			threats = append(threats, m.ThreatType)
		}
		reason = ""

		return
	}

	// No matches field, or an empty one: no known threats.
	verdict = models.VerdictSafe
	reason = ""
}

// finish moves a pending check to its terminal verdict. The transition is
// atomic: readers observe either pending or the final state, never a partial
// update. Finishing an already terminal check is a no-op.
func (s *Service) finish(checkID string, verdict models.Verdict, threats []string, reason string) {
	s.mu.Lock()

	check, ok := s.checks[checkID]
	if !ok || check.Verdict != models.VerdictPending {
		s.mu.Unlock()
		return
	}

	check.Verdict = verdict
	check.Threats = threats
	check.Reason = reason

	delete(s.activeChecks, checkID)
	s.completedChecks[checkID] = struct{}{}
	s.mu.Unlock()

	metrics.ChecksTotal.WithLabelValues(string(verdict)).Inc()

	s.log.Info("check finished",
		slog.String("checkID", checkID),
		slog.String("verdict", string(verdict)))

	s.notify(check)
}

func (s *Service) notify(check *models.Check) {
	s.mu.Lock()
	subs := make([]chan models.StateChange, len(s.subs))
	copy(subs, s.subs)
	event := models.StateChange{
		CheckID: check.ID,
		Verdict: check.Verdict,
		Threats: check.Threats,
		Reason:  check.Reason,
	}
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// snapshot builds a status response. Callers must hold s.mu.
func (s *Service) snapshot(check *models.Check) *models.CheckResponse {
	var activeID, completedID []string
	for id := range s.activeChecks {
		activeID = append(activeID, id)
	}
	for id := range s.completedChecks {
		completedID = append(completedID, id)
	}

	copied := *check

	return &models.CheckResponse{
		Check:           &copied,
		ActiveChecks:    activeID,
		CompletedChecks: completedID,
	}
}
