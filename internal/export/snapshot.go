package export

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DhavalSuthar-24/leaguehub/internal/event"
	"github.com/DhavalSuthar-24/leaguehub/internal/kit"
	"github.com/DhavalSuthar-24/leaguehub/internal/match"
	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/notification"
	"github.com/DhavalSuthar-24/leaguehub/internal/player"
	"github.com/DhavalSuthar-24/leaguehub/internal/registration"
	"github.com/DhavalSuthar-24/leaguehub/internal/scout"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
)

// Snapshot is every stored record at one point in time.
type Snapshot struct {
	GeneratedAt     time.Time
	Users           []user.User
	Players         []player.Player
	Teams           []team.Team
	Invitations     []team.TeamInvitation
	Matches         []match.Match
	MatchRequests   []match.MatchRequest
	Registrations   []registration.PlayerRegistrationRequest
	Events          []event.Event
	Kits            []kit.Kit
	KitRequests     []kit.KitRequest
	Notifications   []notification.Notification
	ScoutProfiles   []scout.ScoutProfile
	ScoutActivities []scout.ScoutActivity
}

type Service struct {
	st *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{st: st}
}

// fetch runs one read as part of g and stores its result in dst.
func fetch[T any](ctx context.Context, g *errgroup.Group, dst *[]T, read func(context.Context) ([]T, error)) {
	g.Go(func() error {
		rows, err := read(ctx)
		if err != nil {
			return err
		}
		*dst = rows
		return nil
	})
}

// Snapshot reads every collection concurrently. Any failed read fails the
// whole snapshot.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{GeneratedAt: models.Now()}
	g, ctx := errgroup.WithContext(ctx)

	teams := team.NewTeamRepository(s.st)
	matches := match.NewMatchRepository(s.st)
	kits := kit.NewKitRepository(s.st)
	scouts := scout.NewScoutRepository(s.st)

	fetch(ctx, g, &snap.Users, user.NewUserRepository(s.st).List)
	fetch(ctx, g, &snap.Players, player.NewPlayerRepository(s.st).GetAll)
	fetch(ctx, g, &snap.Teams, teams.GetAllTeams)
	fetch(ctx, g, &snap.Invitations, teams.GetAllInvitations)
	fetch(ctx, g, &snap.Matches, matches.GetAllMatches)
	fetch(ctx, g, &snap.MatchRequests, matches.GetAllRequests)
	fetch(ctx, g, &snap.Registrations, registration.NewRegistrationRepository(s.st).GetAll)
	fetch(ctx, g, &snap.Events, event.NewEventRepository(s.st).GetAll)
	fetch(ctx, g, &snap.Kits, kits.GetAllKits)
	fetch(ctx, g, &snap.KitRequests, kits.GetAllRequests)
	fetch(ctx, g, &snap.Notifications, notification.NewNotificationRepository(s.st).GetAll)
	fetch(ctx, g, &snap.ScoutProfiles, scouts.GetAllProfiles)
	fetch(ctx, g, &snap.ScoutActivities, scouts.GetAllActivity)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
