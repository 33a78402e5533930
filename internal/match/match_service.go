package match

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/DhavalSuthar-24/leaguehub/internal/event"
	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/player"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

// CreateInput describes a new match. Without ScheduledTime the match starts
// immediately.
type CreateInput struct {
	HomeTeamID    string     `json:"homeTeamId" binding:"required"`
	AwayTeamID    string     `json:"awayTeamId" binding:"required"`
	HomePlayerIDs []string   `json:"homePlayerIds" binding:"required,min=1"`
	AwayPlayerIDs []string   `json:"awayPlayerIds" binding:"required,min=1"`
	ScheduledTime *time.Time `json:"scheduledTime"`
	Location      string     `json:"location"`
	EventID       *string    `json:"eventId"`
}

type RecordEventInput struct {
	Type     EventType `json:"type" binding:"required"`
	PlayerID string    `json:"playerId" binding:"required"`
	Minute   int       `json:"minute" binding:"gte=0"`
}

type EndInput struct {
	HomeScore int    `json:"homeScore" binding:"gte=0"`
	AwayScore int    `json:"awayScore" binding:"gte=0"`
	MVPID     string `json:"mvpId"`
}

type Service struct {
	st *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{st: st}
}

func (s *Service) repo() MatchRepository {
	return NewMatchRepository(s.st)
}

// checkLineup verifies ids are distinct members of the team's current roster.
func checkLineup(ctx context.Context, tx *store.Store, teamID string, ids []string) error {
	if !models.Distinct(ids) {
		return apperror.Validation("lineup contains the same player twice")
	}
	roster, err := player.NewPlayerRepository(tx).ListByTeam(ctx, teamID)
	if err != nil {
		return err
	}
	onTeam := make(map[string]bool, len(roster))
	for _, p := range roster {
		onTeam[p.ID] = true
	}
	for _, id := range ids {
		if !onTeam[id] {
			return apperror.Validationf("player %s is not on team %s", id, teamID)
		}
	}
	return nil
}

// Create validates and stores a match.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Match, error) {
	var m *Match
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		var err error
		m, err = create(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func create(ctx context.Context, tx *store.Store, in CreateInput) (*Match, error) {
	if in.HomeTeamID == "" || in.AwayTeamID == "" {
		return nil, apperror.Validation("both teams are required")
	}
	if in.HomeTeamID == in.AwayTeamID {
		return nil, apperror.Validation("a team cannot play itself")
	}
	if len(in.HomePlayerIDs) == 0 || len(in.AwayPlayerIDs) == 0 {
		return nil, apperror.Validation("each side needs at least one player")
	}

	teams := team.NewTeamRepository(tx)
	for _, id := range []string{in.HomeTeamID, in.AwayTeamID} {
		if _, err := teams.GetTeamByID(ctx, id); err != nil {
			return nil, err
		}
	}
	if err := checkLineup(ctx, tx, in.HomeTeamID, in.HomePlayerIDs); err != nil {
		return nil, err
	}
	if err := checkLineup(ctx, tx, in.AwayTeamID, in.AwayPlayerIDs); err != nil {
		return nil, err
	}
	if in.EventID != nil && *in.EventID != "" {
		if _, err := event.NewEventRepository(tx).Get(ctx, *in.EventID); err != nil {
			return nil, err
		}
	} else {
		in.EventID = nil
	}

	m := &Match{
		HomeTeamID:    in.HomeTeamID,
		AwayTeamID:    in.AwayTeamID,
		HomePlayerIDs: models.IDList(in.HomePlayerIDs),
		AwayPlayerIDs: models.IDList(in.AwayPlayerIDs),
		EventID:       in.EventID,
		Location:      in.Location,
	}
	if in.ScheduledTime != nil {
		at := models.Stamp(*in.ScheduledTime)
		m.ScheduledTime = &at
		m.Status = StatusScheduled
	} else {
		now := models.Now()
		m.StartedAt = &now
		m.Status = StatusRunning
	}
	if err := NewMatchRepository(tx).CreateMatch(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Match, error) {
	return s.repo().GetMatch(ctx, id)
}

func (s *Service) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]Match, int64, error) {
	return s.repo().ListMatches(ctx, page, pageSize, filters)
}

// ListByEvent returns the matches linked to an event.
func (s *Service) ListByEvent(ctx context.Context, eventID string) ([]Match, error) {
	if _, err := event.NewEventRepository(s.st).Get(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo().ListByEvent(ctx, eventID)
}

// transition loads a match, checks it is in one of from, applies fn and
// saves. Nothing is written when a check fails.
func (s *Service) transition(ctx context.Context, id string, from []Status, fn func(m *Match) error) (*Match, error) {
	matches := s.repo()
	m, err := matches.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, st := range from {
		if m.Status == st {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperror.Validationf("match is %s", m.Status)
	}
	if err := fn(m); err != nil {
		return nil, err
	}
	if err := matches.SaveMatch(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Start kicks off a scheduled match.
func (s *Service) Start(ctx context.Context, id string) (*Match, error) {
	return s.transition(ctx, id, []Status{StatusScheduled}, func(m *Match) error {
		now := models.Now()
		m.StartedAt = &now
		m.Status = StatusRunning
		return nil
	})
}

// RecordEvent appends an action by a lineup player. A goal also counts on
// the scorer's side.
func (s *Service) RecordEvent(ctx context.Context, id string, in RecordEventInput) (*Match, error) {
	if !in.Type.Valid() {
		return nil, apperror.Validationf("unknown match event type %q", in.Type)
	}
	return s.transition(ctx, id, []Status{StatusRunning}, func(m *Match) error {
		side := m.SideOf(in.PlayerID)
		if side == "" {
			return apperror.Validation("player is not in either lineup")
		}
		m.Events = append(m.Events, MatchEvent{
			ID:         store.NewID(),
			Type:       in.Type,
			PlayerID:   in.PlayerID,
			TeamID:     side,
			Minute:     in.Minute,
			RecordedAt: models.Now(),
		})
		if in.Type == EventGoal {
			if side == m.HomeTeamID {
				m.HomeScore++
			} else {
				m.AwayScore++
			}
		}
		return nil
	})
}

// End records the final score and MVP. The match then waits for the
// post-match evaluation.
func (s *Service) End(ctx context.Context, id string, in EndInput) (*Match, error) {
	if in.MVPID == "" {
		return nil, apperror.Validation("a man of the match must be selected")
	}
	if in.HomeScore < 0 || in.AwayScore < 0 {
		return nil, apperror.Validation("scores must not be negative")
	}
	return s.transition(ctx, id, []Status{StatusRunning}, func(m *Match) error {
		if m.SideOf(in.MVPID) == "" {
			return apperror.Validation("man of the match must be in one of the lineups")
		}
		now := models.Now()
		mvp := in.MVPID
		m.HomeScore, m.AwayScore = in.HomeScore, in.AwayScore
		m.ManOfTheMatch = &mvp
		m.FinishedAt = &now
		m.Status = StatusAwaitingConfirmation
		return nil
	})
}

// Cancel calls off a match that has not ended.
func (s *Service) Cancel(ctx context.Context, id string) (*Match, error) {
	return s.transition(ctx, id, []Status{StatusScheduled, StatusRunning}, func(m *Match) error {
		m.Status = StatusCancelled
		return nil
	})
}

// Delete removes a match that is not finished or cancelled.
func (s *Service) Delete(ctx context.Context, id string) error {
	matches := s.repo()
	m, err := matches.GetMatch(ctx, id)
	if err != nil {
		return err
	}
	if m.Status.Terminal() {
		return apperror.Validationf("a %s match cannot be deleted", m.Status)
	}
	return matches.DeleteMatch(ctx, id)
}

// SubmitEvaluation finalizes a match: team records, experience points and
// player statistics are updated together with the status, or not at all.
func (s *Service) SubmitEvaluation(ctx context.Context, id string) (*Match, error) {
	var m *Match
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		matches := NewMatchRepository(tx)
		var err error
		if m, err = matches.GetMatch(ctx, id); err != nil {
			return err
		}
		if m.Status != StatusAwaitingConfirmation {
			return apperror.Validationf("match is %s", m.Status)
		}

		teams := team.NewTeamRepository(tx)
		for _, side := range []struct {
			id           string
			scored, conc int
		}{
			{m.HomeTeamID, m.HomeScore, m.AwayScore},
			{m.AwayTeamID, m.AwayScore, m.HomeScore},
		} {
			t, err := teams.GetTeamByID(ctx, side.id)
			if err != nil {
				return err
			}
			t.RecordResult(side.scored, side.conc)
			if err := teams.UpdateTeam(ctx, t); err != nil {
				return err
			}
		}

		if err := applyPlayerStats(ctx, tx, m); err != nil {
			return err
		}

		m.Status = StatusFinished
		return matches.SaveMatch(ctx, m)
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("match_id", id).Msg("Match evaluation failed")
		return nil, err
	}
	return m, nil
}

func applyPlayerStats(ctx context.Context, tx *store.Store, m *Match) error {
	players := player.NewPlayerRepository(tx)
	for _, pid := range m.Participants() {
		p, err := players.Get(ctx, pid)
		if apperror.Is(err, apperror.KindNotFound) {
			// card deleted since the lineup was picked
			continue
		}
		if err != nil {
			return err
		}
		p.MatchesPlayed++
		for _, ev := range m.Events {
			if ev.PlayerID != pid {
				continue
			}
			switch ev.Type {
			case EventGoal:
				p.Goals++
			case EventAssist:
				p.Assists++
			case EventDefensiveContribution:
				p.DefensiveContributions++
			case EventCleanSheet:
				p.CleanSheets++
			case EventPenaltySave:
				p.PenaltySaves++
			}
		}
		if m.ManOfTheMatch != nil && *m.ManOfTheMatch == pid {
			p.MVPCount++
		}
		if err := players.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
