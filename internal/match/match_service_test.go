package match

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DhavalSuthar-24/leaguehub/internal/event"
	"github.com/DhavalSuthar-24/leaguehub/internal/notification"
	"github.com/DhavalSuthar-24/leaguehub/internal/player"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/testutil"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

type fixture struct {
	st         *store.Store
	svc        *Service
	home, away *team.Team
	homeRoster []string
	awayRoster []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := testutil.NewTestStore(t, nil,
		&Match{}, &MatchRequest{}, &team.Team{}, &player.Player{}, &event.Event{}, &notification.Notification{})
	f := &fixture{st: st, svc: NewService(st)}
	f.home, f.homeRoster = seedTeam(t, st, "Falcons", "cap-home", 7)
	f.away, f.awayRoster = seedTeam(t, st, "Hawks", "cap-away", 6)
	return f
}

func seedTeam(t *testing.T, st *store.Store, name, captainID string, size int) (*team.Team, []string) {
	t.Helper()
	ctx := context.Background()
	tm := &team.Team{Name: name, CaptainID: captainID}
	if err := team.NewTeamRepository(st).CreateTeam(ctx, tm); err != nil {
		t.Fatalf("create team: %v", err)
	}
	players := player.NewPlayerRepository(st)
	ids := make([]string, 0, size)
	for i := 0; i < size; i++ {
		p := &player.Player{Name: fmt.Sprintf("%s %d", name, i+1), Position: player.PositionMID, TeamID: &tm.ID, CardType: player.CardSilver}
		if err := players.Create(ctx, p); err != nil {
			t.Fatalf("create player: %v", err)
		}
		ids = append(ids, p.ID)
	}
	return tm, ids
}

func (f *fixture) running(t *testing.T) *Match {
	t.Helper()
	m, err := f.svc.Create(context.Background(), CreateInput{
		HomeTeamID:    f.home.ID,
		AwayTeamID:    f.away.ID,
		HomePlayerIDs: f.homeRoster[:5],
		AwayPlayerIDs: f.awayRoster[:5],
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	return m
}

func TestCreateWithoutScheduleStartsImmediately(t *testing.T) {
	f := newFixture(t)
	m := f.running(t)
	if m.Status != StatusRunning || m.StartedAt == nil {
		t.Fatalf("expected running with startedAt, got %s %v", m.Status, m.StartedAt)
	}
}

func TestCreateScheduledThenStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	at := time.Now().Add(48 * time.Hour)
	m, err := f.svc.Create(ctx, CreateInput{
		HomeTeamID:    f.home.ID,
		AwayTeamID:    f.away.ID,
		HomePlayerIDs: f.homeRoster[:1],
		AwayPlayerIDs: f.awayRoster[:1],
		ScheduledTime: &at,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.Status != StatusScheduled || m.StartedAt != nil {
		t.Fatalf("expected scheduled, got %s", m.Status)
	}
	started, err := f.svc.Start(ctx, m.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != StatusRunning || started.StartedAt == nil {
		t.Fatalf("expected running, got %s", started.Status)
	}
	if _, err := f.svc.Start(ctx, m.ID); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error starting a running match, got %v", err)
	}
}

func TestCreateRejectsBadLineups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cases := map[string]CreateInput{
		"same team":      {HomeTeamID: f.home.ID, AwayTeamID: f.home.ID, HomePlayerIDs: f.homeRoster[:1], AwayPlayerIDs: f.homeRoster[1:2]},
		"empty side":     {HomeTeamID: f.home.ID, AwayTeamID: f.away.ID, HomePlayerIDs: f.homeRoster[:1]},
		"not on roster":  {HomeTeamID: f.home.ID, AwayTeamID: f.away.ID, HomePlayerIDs: f.awayRoster[:1], AwayPlayerIDs: f.awayRoster[1:2]},
		"duplicate pick": {HomeTeamID: f.home.ID, AwayTeamID: f.away.ID, HomePlayerIDs: []string{f.homeRoster[0], f.homeRoster[0]}, AwayPlayerIDs: f.awayRoster[:1]},
	}
	for name, in := range cases {
		if _, err := f.svc.Create(ctx, in); !apperror.Is(err, apperror.KindValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
	missing := "nope"
	_, err := f.svc.Create(ctx, CreateInput{HomeTeamID: f.home.ID, AwayTeamID: f.away.ID,
		HomePlayerIDs: f.homeRoster[:1], AwayPlayerIDs: f.awayRoster[:1], EventID: &missing})
	if !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("expected not found for unknown event, got %v", err)
	}
}

func TestEndWithoutMVPChangesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.running(t)

	if _, err := f.svc.End(ctx, m.ID, EndInput{HomeScore: 2, AwayScore: 0}); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := f.svc.End(ctx, m.ID, EndInput{HomeScore: 2, AwayScore: 0, MVPID: "outsider"}); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for MVP outside the lineups, got %v", err)
	}
	got, err := f.svc.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusRunning || got.HomeScore != 0 || got.FinishedAt != nil || got.ManOfTheMatch != nil {
		t.Fatalf("match changed: %+v", got)
	}
}

func TestEndRecordsScoreAndMVP(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.running(t)
	mvp := f.homeRoster[2]

	ended, err := f.svc.End(ctx, m.ID, EndInput{HomeScore: 3, AwayScore: 1, MVPID: mvp})
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if ended.Status != StatusAwaitingConfirmation {
		t.Fatalf("expected awaiting_confirmation, got %s", ended.Status)
	}
	if ended.FinishedAt == nil {
		t.Fatal("expected finishedAt to be set")
	}
	if ended.ManOfTheMatch == nil || *ended.ManOfTheMatch != mvp {
		t.Fatalf("expected MVP %s, got %v", mvp, ended.ManOfTheMatch)
	}
	if ended.HomeScore != 3 || ended.AwayScore != 1 {
		t.Fatalf("expected 3-1, got %d-%d", ended.HomeScore, ended.AwayScore)
	}
	if _, err := f.svc.Cancel(ctx, m.ID); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error cancelling an ended match, got %v", err)
	}
}

func TestRecordEventCountsGoals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.running(t)

	if _, err := f.svc.RecordEvent(ctx, m.ID, RecordEventInput{Type: EventGoal, PlayerID: f.awayRoster[0], Minute: 12}); err != nil {
		t.Fatalf("record goal: %v", err)
	}
	got, err := f.svc.RecordEvent(ctx, m.ID, RecordEventInput{Type: EventAssist, PlayerID: f.awayRoster[1]})
	if err != nil {
		t.Fatalf("record assist: %v", err)
	}
	if got.AwayScore != 1 || got.HomeScore != 0 || len(got.Events) != 2 {
		t.Fatalf("unexpected match after events: %+v", got)
	}
	if got.Events[0].TeamID != f.away.ID {
		t.Fatalf("expected goal credited to %s, got %s", f.away.ID, got.Events[0].TeamID)
	}
	if _, err := f.svc.RecordEvent(ctx, m.ID, RecordEventInput{Type: EventGoal, PlayerID: f.awayRoster[5]}); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for a bench player, got %v", err)
	}
}

func TestSubmitEvaluationFinalizes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.running(t)
	scorer := f.homeRoster[0]

	for _, in := range []RecordEventInput{
		{Type: EventGoal, PlayerID: scorer},
		{Type: EventGoal, PlayerID: scorer},
		{Type: EventPenaltySave, PlayerID: f.awayRoster[0]},
	} {
		if _, err := f.svc.RecordEvent(ctx, m.ID, in); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if _, err := f.svc.End(ctx, m.ID, EndInput{HomeScore: 2, AwayScore: 0, MVPID: scorer}); err != nil {
		t.Fatalf("end: %v", err)
	}
	done, err := f.svc.SubmitEvaluation(ctx, m.ID)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if done.Status != StatusFinished {
		t.Fatalf("expected finished, got %s", done.Status)
	}

	teams := team.NewTeamRepository(f.st)
	home, _ := teams.GetTeamByID(ctx, f.home.ID)
	away, _ := teams.GetTeamByID(ctx, f.away.ID)
	if home.Wins != 1 || home.ExperiencePoints != team.XPWin || away.Losses != 1 || away.ExperiencePoints != team.XPLoss {
		t.Fatalf("unexpected records: home %+v away %+v", home, away)
	}

	players := player.NewPlayerRepository(f.st)
	p, _ := players.Get(ctx, scorer)
	if p.Goals != 2 || p.MatchesPlayed != 1 || p.MVPCount != 1 {
		t.Fatalf("unexpected scorer stats: %+v", p)
	}
	keeper, _ := players.Get(ctx, f.awayRoster[0])
	if keeper.PenaltySaves != 1 || keeper.MatchesPlayed != 1 {
		t.Fatalf("unexpected keeper stats: %+v", keeper)
	}
	bench, _ := players.Get(ctx, f.homeRoster[6])
	if bench.MatchesPlayed != 0 {
		t.Fatalf("bench player should not be counted, got %d", bench.MatchesPlayed)
	}

	if _, err := f.svc.SubmitEvaluation(ctx, m.ID); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error on second evaluation, got %v", err)
	}
	if err := f.svc.Delete(ctx, m.ID); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected finished match to be undeletable, got %v", err)
	}
}

func TestDeleteNonTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.running(t)
	if err := f.svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.Get(ctx, m.ID); !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCancelScheduledAndRunning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	at := time.Now().Add(24 * time.Hour)
	scheduled, err := f.svc.Create(ctx, CreateInput{
		HomeTeamID:    f.home.ID,
		AwayTeamID:    f.away.ID,
		HomePlayerIDs: f.homeRoster[:2],
		AwayPlayerIDs: f.awayRoster[:2],
		ScheduledTime: &at,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	running := f.running(t)

	for _, m := range []*Match{scheduled, running} {
		cancelled, err := f.svc.Cancel(ctx, m.ID)
		if err != nil {
			t.Fatalf("cancel %s match: %v", m.Status, err)
		}
		if cancelled.Status != StatusCancelled {
			t.Fatalf("expected cancelled, got %s", cancelled.Status)
		}
		if _, err := f.svc.Start(ctx, m.ID); !apperror.Is(err, apperror.KindValidation) {
			t.Fatalf("expected validation error starting a cancelled match, got %v", err)
		}
		if err := f.svc.Delete(ctx, m.ID); !apperror.Is(err, apperror.KindValidation) {
			t.Fatalf("expected cancelled match to be undeletable, got %v", err)
		}
		got, err := f.svc.Get(ctx, m.ID)
		if err != nil || got.Status != StatusCancelled {
			t.Fatalf("expected stored cancelled match, got %+v %v", got, err)
		}
	}
}

func TestScheduledTimeKeepsStoredPrecision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 19, 45, 0, 987654321, time.FixedZone("CET", 3600))
	m, err := f.svc.Create(ctx, CreateInput{
		HomeTeamID:    f.home.ID,
		AwayTeamID:    f.away.ID,
		HomePlayerIDs: f.homeRoster[:1],
		AwayPlayerIDs: f.awayRoster[:1],
		ScheduledTime: &at,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.ScheduledTime.Nanosecond() != 987654000 || m.ScheduledTime.Location() != time.UTC {
		t.Fatalf("scheduled time not normalised: %v", m.ScheduledTime)
	}
	got, err := f.svc.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.ScheduledTime.Equal(*m.ScheduledTime) {
		t.Fatalf("scheduled time changed on reload: %v != %v", got.ScheduledTime, m.ScheduledTime)
	}

	req, err := f.svc.Submit(ctx, "cap-home", SubmitInput{
		RequesterTeamID: f.home.ID,
		OpponentTeamID:  f.away.ID,
		Lineup:          f.homeRoster[:5],
		ScheduledTime:   &at,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !req.ScheduledTime.Equal(*m.ScheduledTime) {
		t.Fatalf("request time not normalised: %v", req.ScheduledTime)
	}
}

func TestApprovedRequestCreatesRunningMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lineup := f.homeRoster[:5]

	req, err := f.svc.Submit(ctx, "cap-home", SubmitInput{
		RequesterTeamID: f.home.ID,
		OpponentTeamID:  f.away.ID,
		Lineup:          lineup,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if req.Status != RequestPendingAdmin {
		t.Fatalf("expected pending_admin, got %s", req.Status)
	}

	approved, m, err := f.svc.Approve(ctx, req.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != RequestApproved || approved.MatchID == nil || *approved.MatchID != m.ID {
		t.Fatalf("unexpected request after approval: %+v", approved)
	}
	if m.Status != StatusRunning || m.HomeTeamID != f.home.ID || m.AwayTeamID != f.away.ID {
		t.Fatalf("unexpected match: %+v", m)
	}
	if len(m.HomePlayerIDs) != len(lineup) {
		t.Fatalf("expected home lineup %v, got %v", lineup, m.HomePlayerIDs)
	}
	for i, id := range lineup {
		if m.HomePlayerIDs[i] != id {
			t.Fatalf("expected home lineup %v, got %v", lineup, m.HomePlayerIDs)
		}
	}
	if len(m.AwayPlayerIDs) != len(f.awayRoster) {
		t.Fatalf("expected the full away roster, got %v", m.AwayPlayerIDs)
	}

	inbox, _ := notification.NewService(f.st).ListForUser(ctx, "cap-home", false)
	if len(inbox) != 1 || inbox[0].Type != notification.TypeMatchRequestApproved || inbox[0].Meta().MatchID != m.ID {
		t.Fatalf("expected an approval notification, got %+v", inbox)
	}
}

func TestSubmitRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, "cap-home", SubmitInput{RequesterTeamID: f.home.ID, OpponentTeamID: f.away.ID, Lineup: f.homeRoster[:4]}); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for 4 players, got %v", err)
	}
	if _, err := f.svc.Submit(ctx, "cap-away", SubmitInput{RequesterTeamID: f.home.ID, OpponentTeamID: f.away.ID, Lineup: f.homeRoster[:5]}); !apperror.Is(err, apperror.KindForbidden) {
		t.Fatalf("expected forbidden for another captain, got %v", err)
	}
	if _, err := f.svc.Submit(ctx, "cap-home", SubmitInput{RequesterTeamID: f.home.ID, OpponentTeamID: f.away.ID, Lineup: f.awayRoster[:5]}); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for players off the roster, got %v", err)
	}
	list, _ := f.svc.Requests(ctx, "")
	if len(list) != 0 {
		t.Fatalf("expected nothing written, got %d requests", len(list))
	}
}

func TestOpponentConfirmationThroughInbox(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inbox := notification.NewService(f.st)
	inbox.HandleMatchRequests(f.svc)

	req, err := f.svc.Submit(ctx, "cap-home", SubmitInput{
		RequesterTeamID:             f.home.ID,
		OpponentTeamID:              f.away.ID,
		Lineup:                      f.homeRoster[:6],
		RequireOpponentConfirmation: true,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if req.Status != RequestPendingOpponent {
		t.Fatalf("expected pending_opponent, got %s", req.Status)
	}
	if _, _, err := f.svc.Approve(ctx, req.ID); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error approving before the opponent answered, got %v", err)
	}

	list, err := inbox.ListForUser(ctx, "cap-away", true)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one notification for the opponent, got %v %v", list, err)
	}
	if err := inbox.Respond(ctx, "cap-away", list[0].ID, notification.RespondInput{
		Action: notification.ActionAccept,
		Lineup: f.awayRoster[:5],
	}); err != nil {
		t.Fatalf("respond: %v", err)
	}

	got, _ := f.svc.GetRequest(ctx, req.ID)
	if got.Status != RequestPendingAdmin || len(got.OpponentLineup) != 5 {
		t.Fatalf("unexpected request after accept: %+v", got)
	}
	_, m, err := f.svc.Approve(ctx, req.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if len(m.AwayPlayerIDs) != 5 {
		t.Fatalf("expected the opponent lineup, got %v", m.AwayPlayerIDs)
	}
}

func (f *fixture) awaitingOpponent(t *testing.T) *MatchRequest {
	t.Helper()
	req, err := f.svc.Submit(context.Background(), "cap-home", SubmitInput{
		RequesterTeamID:             f.home.ID,
		OpponentTeamID:              f.away.ID,
		Lineup:                      f.homeRoster[:5],
		RequireOpponentConfirmation: true,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return req
}

func TestOpponentDeclineClosesRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.awaitingOpponent(t)

	if err := f.svc.OpponentDecline(ctx, "cap-home", req.ID, "no"); !apperror.Is(err, apperror.KindForbidden) {
		t.Fatalf("expected forbidden for the requester, got %v", err)
	}
	if err := f.svc.OpponentDecline(ctx, "cap-away", req.ID, "  no pitch  "); err != nil {
		t.Fatalf("decline: %v", err)
	}

	got, err := f.svc.GetRequest(ctx, req.ID)
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if got.Status != RequestRejected || got.Reason != "no pitch" {
		t.Fatalf("unexpected request after decline: %+v", got)
	}
	inbox, err := notification.NewService(f.st).ListForUser(ctx, "cap-home", false)
	if err != nil || len(inbox) != 1 {
		t.Fatalf("expected one notification for the requester, got %v %v", inbox, err)
	}
	if inbox[0].Type != notification.TypeMatchRequestRejected || inbox[0].Meta().RequestID != req.ID {
		t.Fatalf("unexpected notification: %+v", inbox[0])
	}
	if err := f.svc.OpponentDecline(ctx, "cap-away", req.ID, ""); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error declining twice, got %v", err)
	}
}

func TestInboxClearsRequestRejectedByAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inbox := notification.NewService(f.st)
	inbox.HandleMatchRequests(f.svc)
	req := f.awaitingOpponent(t)

	if _, err := f.svc.Reject(ctx, req.ID, "season over"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	list, err := inbox.ListForUser(ctx, "cap-away", true)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected the opponent's notification, got %v %v", list, err)
	}
	err = inbox.Respond(ctx, "cap-away", list[0].ID, notification.RespondInput{Action: notification.ActionAccept})
	if !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if count, _ := inbox.UnreadCount(ctx, "cap-away"); count != 0 {
		t.Fatalf("expected the settled notification to be read, %d unread", count)
	}
	got, _ := f.svc.GetRequest(ctx, req.ID)
	if got.Status != RequestRejected || got.Reason != "season over" {
		t.Fatalf("request must stay rejected: %+v", got)
	}
}

func TestRejectNeedsReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req, err := f.svc.Submit(ctx, "cap-home", SubmitInput{RequesterTeamID: f.home.ID, OpponentTeamID: f.away.ID, Lineup: f.homeRoster[:5]})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.svc.Reject(ctx, req.ID, "  "); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	rejected, err := f.svc.Reject(ctx, req.ID, "pitch unavailable")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != RequestRejected || rejected.Reason != "pitch unavailable" {
		t.Fatalf("unexpected request: %+v", rejected)
	}
	inbox, _ := notification.NewService(f.st).ListForUser(ctx, "cap-home", false)
	if len(inbox) != 1 || inbox[0].Type != notification.TypeMatchRequestRejected {
		t.Fatalf("expected a rejection notification, got %+v", inbox)
	}
}
