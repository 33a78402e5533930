package match

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/notification"
	"github.com/DhavalSuthar-24/leaguehub/internal/player"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

var _ notification.MatchRequestResponder = (*Service)(nil)

type SubmitInput struct {
	RequesterTeamID             string     `json:"requesterTeamId" binding:"required"`
	OpponentTeamID              string     `json:"opponentTeamId" binding:"required"`
	Lineup                      []string   `json:"lineup" binding:"required"`
	ScheduledTime               *time.Time `json:"scheduledTime"`
	Location                    string     `json:"location"`
	Message                     string     `json:"message" binding:"max=500"`
	RequireOpponentConfirmation bool       `json:"requireOpponentConfirmation"`
}

func checkLineupSize(ids []string) error {
	if len(ids) < MinLineup || len(ids) > MaxLineup {
		return apperror.Validationf("a lineup needs %d to %d players, got %d", MinLineup, MaxLineup, len(ids))
	}
	return nil
}

// Submit files a match request on behalf of the requester team's captain.
func (s *Service) Submit(ctx context.Context, captainUserID string, in SubmitInput) (*MatchRequest, error) {
	if in.RequesterTeamID == in.OpponentTeamID {
		return nil, apperror.Validation("a team cannot play itself")
	}
	if err := checkLineupSize(in.Lineup); err != nil {
		return nil, err
	}

	var req *MatchRequest
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		teams := team.NewTeamRepository(tx)
		requester, err := teams.GetTeamByID(ctx, in.RequesterTeamID)
		if err != nil {
			return err
		}
		if requester.CaptainID != captainUserID {
			return apperror.Forbidden("only the team captain can request a match")
		}
		opponent, err := teams.GetTeamByID(ctx, in.OpponentTeamID)
		if err != nil {
			return err
		}
		if err := checkLineup(ctx, tx, requester.ID, in.Lineup); err != nil {
			return err
		}

		req = &MatchRequest{
			RequesterTeamID: requester.ID,
			OpponentTeamID:  opponent.ID,
			RequestedBy:     captainUserID,
			Lineup:          models.IDList(in.Lineup),
			Location:        in.Location,
			Message:         in.Message,
			Status:          RequestPendingAdmin,
		}
		if in.ScheduledTime != nil {
			at := models.Stamp(*in.ScheduledTime)
			req.ScheduledTime = &at
		}
		if in.RequireOpponentConfirmation {
			req.Status = RequestPendingOpponent
		}
		if err := NewMatchRepository(tx).CreateRequest(ctx, req); err != nil {
			return err
		}
		if req.Status != RequestPendingOpponent {
			return nil
		}
		_, err = notification.NewService(tx).Notify(ctx, opponent.CaptainID, notification.TypeMatchRequest,
			"Match request", requester.Name+" challenged "+opponent.Name+" to a match",
			notification.Metadata{RequestID: req.ID})
		return err
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) GetRequest(ctx context.Context, id string) (*MatchRequest, error) {
	return s.repo().GetRequest(ctx, id)
}

// Requests lists requests, optionally in one status.
func (s *Service) Requests(ctx context.Context, status RequestStatus) ([]MatchRequest, error) {
	return s.repo().ListRequests(ctx, status)
}

// RequestsForCaptain lists requests involving any team the user captains.
func (s *Service) RequestsForCaptain(ctx context.Context, userID string) ([]MatchRequest, error) {
	teams, err := team.NewTeamRepository(s.st).GetTeamsByCaptain(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	return s.repo().ListRequestsForTeams(ctx, ids)
}

func (s *Service) AwaitingOpponent(ctx context.Context, id string) (bool, error) {
	req, err := s.repo().GetRequest(ctx, id)
	if err != nil {
		return false, err
	}
	return req.Status == RequestPendingOpponent, nil
}

// opponentRequest loads a request awaiting the opponent and checks the
// caller captains the opponent team.
func opponentRequest(ctx context.Context, tx *store.Store, userID, id string) (*MatchRequest, *team.Team, error) {
	req, err := NewMatchRepository(tx).GetRequest(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if req.Status != RequestPendingOpponent {
		return nil, nil, apperror.Validationf("match request is %s", req.Status)
	}
	opponent, err := team.NewTeamRepository(tx).GetTeamByID(ctx, req.OpponentTeamID)
	if err != nil {
		return nil, nil, err
	}
	if opponent.CaptainID != userID {
		return nil, nil, apperror.Forbidden("only the opponent captain can answer this request")
	}
	return req, opponent, nil
}

// OpponentAccept forwards the request to the admins. A lineup given here
// obeys the same size rule as the requester's.
func (s *Service) OpponentAccept(ctx context.Context, userID, id string, lineup []string) error {
	if len(lineup) > 0 {
		if err := checkLineupSize(lineup); err != nil {
			return err
		}
	}
	return s.st.Transaction(ctx, func(tx *store.Store) error {
		req, opponent, err := opponentRequest(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		if len(lineup) > 0 {
			if err := checkLineup(ctx, tx, opponent.ID, lineup); err != nil {
				return err
			}
			req.OpponentLineup = models.IDList(lineup)
		}
		req.Status = RequestPendingAdmin
		if err := NewMatchRepository(tx).SaveRequest(ctx, req); err != nil {
			return err
		}
		_, err = notification.NewService(tx).Notify(ctx, req.RequestedBy, notification.TypeMatchRequestAccepted,
			"Match request accepted", opponent.Name+" accepted your match request",
			notification.Metadata{RequestID: req.ID})
		return err
	})
}

// OpponentDecline closes the request on the opponent's behalf.
func (s *Service) OpponentDecline(ctx context.Context, userID, id, reason string) error {
	return s.st.Transaction(ctx, func(tx *store.Store) error {
		req, opponent, err := opponentRequest(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		req.Status = RequestRejected
		req.Reason = strings.TrimSpace(reason)
		if err := NewMatchRepository(tx).SaveRequest(ctx, req); err != nil {
			return err
		}
		msg := opponent.Name + " declined your match request"
		if req.Reason != "" {
			msg += ": " + req.Reason
		}
		_, err = notification.NewService(tx).Notify(ctx, req.RequestedBy, notification.TypeMatchRequestRejected,
			"Match request declined", msg, notification.Metadata{RequestID: req.ID})
		return err
	})
}

// Approve creates the requested match. The away side plays the opponent's
// lineup, or its whole roster when none was given.
func (s *Service) Approve(ctx context.Context, id string) (*MatchRequest, *Match, error) {
	var (
		req *MatchRequest
		m   *Match
	)
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		requests := NewMatchRepository(tx)
		var err error
		if req, err = requests.GetRequest(ctx, id); err != nil {
			return err
		}
		if req.Status != RequestPendingAdmin {
			return apperror.Validationf("match request is %s", req.Status)
		}

		away := []string(req.OpponentLineup)
		if len(away) == 0 {
			roster, err := player.NewPlayerRepository(tx).ListByTeam(ctx, req.OpponentTeamID)
			if err != nil {
				return err
			}
			for _, p := range roster {
				away = append(away, p.ID)
			}
		}
		m, err = create(ctx, tx, CreateInput{
			HomeTeamID:    req.RequesterTeamID,
			AwayTeamID:    req.OpponentTeamID,
			HomePlayerIDs: req.Lineup,
			AwayPlayerIDs: away,
			ScheduledTime: req.ScheduledTime,
			Location:      req.Location,
		})
		if err != nil {
			return err
		}

		req.Status = RequestApproved
		req.MatchID = &m.ID
		if err := requests.SaveRequest(ctx, req); err != nil {
			return err
		}
		_, err = notification.NewService(tx).Notify(ctx, req.RequestedBy, notification.TypeMatchRequestApproved,
			"Match request approved", "Your match request was approved",
			notification.Metadata{RequestID: req.ID, MatchID: m.ID})
		return err
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("request_id", id).Msg("Match request approval failed")
		return nil, nil, err
	}
	return req, m, nil
}

// Reject closes a pending request. A reason is required.
func (s *Service) Reject(ctx context.Context, id, reason string) (*MatchRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperror.Validation("a rejection reason is required")
	}
	var req *MatchRequest
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		requests := NewMatchRepository(tx)
		var err error
		if req, err = requests.GetRequest(ctx, id); err != nil {
			return err
		}
		if !req.Pending() {
			return apperror.Validationf("match request is %s", req.Status)
		}
		req.Status = RequestRejected
		req.Reason = reason
		if err := requests.SaveRequest(ctx, req); err != nil {
			return err
		}
		_, err = notification.NewService(tx).Notify(ctx, req.RequestedBy, notification.TypeMatchRequestRejected,
			"Match request rejected", "Your match request was rejected: "+reason,
			notification.Metadata{RequestID: req.ID})
		return err
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}
