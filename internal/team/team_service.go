package team

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/notification"
	"github.com/DhavalSuthar-24/leaguehub/internal/player"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

type CreateTeamRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	LogoURL   string `json:"logoUrl"`
	CaptainID string `json:"captainId"`
}

type UpdateTeamRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=100"`
	LogoURL   *string `json:"logoUrl"`
	CaptainID *string `json:"captainId"`
}

type InvitePlayerRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Message  string `json:"message" binding:"max=500"`
}

type Actor = models.Actor

var _ notification.InvitationResponder = (*Service)(nil)

type Service struct {
	st *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{st: st}
}

func (s *Service) repo() TeamRepository {
	return NewTeamRepository(s.st)
}

// Create registers a team. A non-admin caller becomes its captain.
func (s *Service) Create(ctx context.Context, actor Actor, req CreateTeamRequest) (*Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("team name is required")
	}
	captainID := req.CaptainID
	if !actor.IsAdmin || captainID == "" {
		captainID = actor.UserID
	}

	t := &Team{Name: name, LogoURL: req.LogoURL, CaptainID: captainID}
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		if _, err := user.NewUserRepository(tx).Get(ctx, captainID); err != nil {
			return err
		}
		teams := NewTeamRepository(tx)
		if _, err := teams.GetTeamByName(ctx, name); err == nil {
			return apperror.Conflict("a team with this name already exists")
		} else if !apperror.Is(err, apperror.KindNotFound) {
			return err
		}
		return teams.CreateTeam(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Team, error) {
	return s.repo().GetTeamByID(ctx, id)
}

// Standings returns every team ranked by experience points.
func (s *Service) Standings(ctx context.Context) ([]RankedTeam, error) {
	teams, err := s.repo().GetAllTeams(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(teams), nil
}

func (s *Service) Roster(ctx context.Context, teamID string) ([]player.Player, error) {
	if _, err := s.repo().GetTeamByID(ctx, teamID); err != nil {
		return nil, err
	}
	return player.NewPlayerRepository(s.st).ListByTeam(ctx, teamID)
}

func (s *Service) authorize(t *Team, actor Actor) error {
	if actor.IsAdmin || t.CaptainID == actor.UserID {
		return nil
	}
	return apperror.Forbidden("only the team captain can manage this team")
}

func (s *Service) Update(ctx context.Context, actor Actor, id string, req UpdateTeamRequest) (*Team, error) {
	var t *Team
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		teams := NewTeamRepository(tx)
		var err error
		if t, err = teams.GetTeamByID(ctx, id); err != nil {
			return err
		}
		if err := s.authorize(t, actor); err != nil {
			return err
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperror.Validation("team name must not be empty")
			}
			if existing, err := teams.GetTeamByName(ctx, name); err == nil && existing.ID != t.ID {
				return apperror.Conflict("a team with this name already exists")
			}
			t.Name = name
		}
		if req.LogoURL != nil {
			t.LogoURL = *req.LogoURL
		}
		if req.CaptainID != nil && *req.CaptainID != t.CaptainID {
			if _, err := user.NewUserRepository(tx).Get(ctx, *req.CaptainID); err != nil {
				return err
			}
			t.CaptainID = *req.CaptainID
		}
		return teams.UpdateTeam(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the team and releases its roster.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.st.Transaction(ctx, func(tx *store.Store) error {
		if err := NewTeamRepository(tx).DeleteTeam(ctx, id); err != nil {
			return err
		}
		_, err := store.NewCollection[player.Player](tx, "player").Update(ctx,
			func(db *gorm.DB) *gorm.DB { return db.Where("team_id = ?", id) },
			map[string]any{"team_id": nil})
		return err
	})
}

// AssignPlayer puts a player on the team's roster.
func (s *Service) AssignPlayer(ctx context.Context, actor Actor, teamID, playerID string) (*player.Player, error) {
	var p *player.Player
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		t, err := NewTeamRepository(tx).GetTeamByID(ctx, teamID)
		if err != nil {
			return err
		}
		if err := s.authorize(t, actor); err != nil {
			return err
		}
		players := player.NewPlayerRepository(tx)
		if p, err = players.Get(ctx, playerID); err != nil {
			return err
		}
		p.TeamID = &t.ID
		return players.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RemovePlayer takes a player off the team's roster.
func (s *Service) RemovePlayer(ctx context.Context, actor Actor, teamID, playerID string) error {
	return s.st.Transaction(ctx, func(tx *store.Store) error {
		t, err := NewTeamRepository(tx).GetTeamByID(ctx, teamID)
		if err != nil {
			return err
		}
		if err := s.authorize(t, actor); err != nil {
			return err
		}
		players := player.NewPlayerRepository(tx)
		p, err := players.Get(ctx, playerID)
		if err != nil {
			return err
		}
		if p.TeamID == nil || *p.TeamID != teamID {
			return apperror.Validation("player is not on this team")
		}
		p.TeamID = nil
		return players.Save(ctx, p)
	})
}

// Invite asks a player to join the team and drops a team_invitation into
// the player's inbox.
func (s *Service) Invite(ctx context.Context, actor Actor, teamID string, req InvitePlayerRequest) (*TeamInvitation, error) {
	var inv *TeamInvitation
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		teams := NewTeamRepository(tx)
		t, err := teams.GetTeamByID(ctx, teamID)
		if err != nil {
			return err
		}
		if err := s.authorize(t, actor); err != nil {
			return err
		}
		p, err := player.NewPlayerRepository(tx).Get(ctx, req.PlayerID)
		if err != nil {
			return err
		}
		if p.UserID == nil {
			return apperror.Validation("player card is not linked to a user")
		}
		if p.TeamID != nil && *p.TeamID == teamID {
			return apperror.Conflict("player is already on this team")
		}
		if _, err := teams.GetPendingInvitation(ctx, teamID, p.ID); err == nil {
			return apperror.Conflict("player already has a pending invitation to this team")
		} else if !apperror.Is(err, apperror.KindNotFound) {
			return err
		}

		inv = &TeamInvitation{
			TeamID:    teamID,
			PlayerID:  p.ID,
			InvitedBy: actor.UserID,
			Message:   req.Message,
			Status:    InvitationPending,
		}
		if err := teams.CreateTeamInvitation(ctx, inv); err != nil {
			return err
		}
		_, err = notification.NewService(tx).Notify(ctx, *p.UserID, notification.TypeTeamInvitation,
			"Team invitation", t.Name+" invited you to join the team",
			notification.Metadata{InvitationID: inv.ID})
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) pendingForUser(ctx context.Context, tx *store.Store, userID, invitationID string) (*TeamInvitation, *player.Player, error) {
	inv, err := NewTeamRepository(tx).GetTeamInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, nil, err
	}
	p, err := player.NewPlayerRepository(tx).Get(ctx, inv.PlayerID)
	if err != nil {
		return nil, nil, err
	}
	if p.UserID == nil || *p.UserID != userID {
		return nil, nil, apperror.Forbidden("invitation is addressed to another player")
	}
	if inv.Status != InvitationPending {
		return nil, nil, apperror.Validationf("invitation is already %s", inv.Status)
	}
	return inv, p, nil
}

func (s *Service) InvitationOpen(ctx context.Context, invitationID string) (bool, error) {
	inv, err := NewTeamRepository(s.st).GetTeamInvitationByID(ctx, invitationID)
	if err != nil {
		return false, err
	}
	return inv.Status == InvitationPending, nil
}

// AcceptInvitation joins the invited player to the team and closes the
// invitation in one transaction.
func (s *Service) AcceptInvitation(ctx context.Context, userID, invitationID string) error {
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		inv, p, err := s.pendingForUser(ctx, tx, userID, invitationID)
		if err != nil {
			return err
		}
		t, err := NewTeamRepository(tx).GetTeamByID(ctx, inv.TeamID)
		if err != nil {
			return err
		}
		p.TeamID = &t.ID
		if err := player.NewPlayerRepository(tx).Save(ctx, p); err != nil {
			return err
		}
		inv.Status = InvitationAccepted
		if err := NewTeamRepository(tx).UpdateTeamInvitation(ctx, inv); err != nil {
			return err
		}
		return s.notifyInviter(ctx, tx, inv, p, "accepted")
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("invitation_id", invitationID).Msg("Accept invitation failed")
	}
	return err
}

func (s *Service) RejectInvitation(ctx context.Context, userID, invitationID string) error {
	return s.st.Transaction(ctx, func(tx *store.Store) error {
		inv, p, err := s.pendingForUser(ctx, tx, userID, invitationID)
		if err != nil {
			return err
		}
		inv.Status = InvitationRejected
		if err := NewTeamRepository(tx).UpdateTeamInvitation(ctx, inv); err != nil {
			return err
		}
		return s.notifyInviter(ctx, tx, inv, p, "rejected")
	})
}

func (s *Service) notifyInviter(ctx context.Context, tx *store.Store, inv *TeamInvitation, p *player.Player, verb string) error {
	if inv.InvitedBy == "" {
		return nil
	}
	_, err := notification.NewService(tx).Notify(ctx, inv.InvitedBy, notification.TypeInvitationAnswered,
		"Invitation "+verb, p.Name+" "+verb+" your invitation",
		notification.Metadata{InvitationID: inv.ID})
	return err
}

// InvitationsForUser lists the invitations addressed to the caller's card.
func (s *Service) InvitationsForUser(ctx context.Context, userID string) ([]TeamInvitation, error) {
	p, err := player.NewPlayerRepository(s.st).GetByUser(ctx, userID)
	if apperror.Is(err, apperror.KindNotFound) {
		return []TeamInvitation{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.repo().GetTeamInvitationsByPlayerID(ctx, p.ID)
}

func (s *Service) InvitationsForTeam(ctx context.Context, actor Actor, teamID string) ([]TeamInvitation, error) {
	t, err := s.repo().GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(t, actor); err != nil {
		return nil, err
	}
	return s.repo().GetTeamInvitationsByTeamID(ctx, teamID)
}
