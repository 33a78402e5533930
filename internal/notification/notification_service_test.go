package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/DhavalSuthar-24/leaguehub/internal/testutil"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

type fakeResponder struct {
	accepted []string
	declined []string
	settled  bool
	err      error
}

func (f *fakeResponder) AwaitingOpponent(context.Context, string) (bool, error) {
	return !f.settled, nil
}

func (f *fakeResponder) InvitationOpen(context.Context, string) (bool, error) {
	return !f.settled, nil
}

func (f *fakeResponder) OpponentAccept(_ context.Context, _, requestID string, _ []string) error {
	f.accepted = append(f.accepted, requestID)
	return f.err
}

func (f *fakeResponder) OpponentDecline(_ context.Context, _, requestID, _ string) error {
	f.declined = append(f.declined, requestID)
	return f.err
}

func (f *fakeResponder) AcceptInvitation(_ context.Context, _, invitationID string) error {
	f.accepted = append(f.accepted, invitationID)
	return f.err
}

func (f *fakeResponder) RejectInvitation(_ context.Context, _, invitationID string) error {
	f.declined = append(f.declined, invitationID)
	return f.err
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(testutil.NewTestStore(t, nil, &Notification{}))
}

func TestListForUserNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	repo := svc.repo()

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"old", "mid", "new"} {
		n := &Notification{RecipientID: "u1", Type: TypeKitUpdate, Title: title, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := svc.Notify(ctx, "u2", TypeKitUpdate, "other", "", Metadata{}); err != nil {
		t.Fatalf("notify: %v", err)
	}

	list, err := svc.ListForUser(ctx, "u1", false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].Title != "new" || list[2].Title != "old" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestMarkReadIsRecipientOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	n, err := svc.Notify(ctx, "u1", TypeKitUpdate, "Kit ready", "", Metadata{KitRequestID: "k1"})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := svc.MarkRead(ctx, "u2", n.ID); !apperror.Is(err, apperror.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.MarkRead(ctx, "u1", n.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	count, err := svc.UnreadCount(ctx, "u1")
	if err != nil || count != 0 {
		t.Fatalf("expected 0 unread, got %d, %v", count, err)
	}
	got, err := svc.repo().Get(ctx, n.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Meta().KitRequestID != "k1" {
		t.Fatalf("metadata lost: %+v", got.Meta())
	}
}

func TestMarkAllRead(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := svc.Notify(ctx, "u1", TypeKitUpdate, "x", "", Metadata{}); err != nil {
			t.Fatalf("notify: %v", err)
		}
	}
	n, err := svc.MarkAllRead(ctx, "u1")
	if err != nil || n != 3 {
		t.Fatalf("expected 3 updated, got %d, %v", n, err)
	}
	unread, err := svc.ListForUser(ctx, "u1", true)
	if err != nil || len(unread) != 0 {
		t.Fatalf("expected empty unread list, got %d, %v", len(unread), err)
	}
}

func TestRespondDispatchesAndMarksRead(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	requests := &fakeResponder{}
	invitations := &fakeResponder{}
	svc.HandleMatchRequests(requests)
	svc.HandleInvitations(invitations)

	mr, _ := svc.Notify(ctx, "cap", TypeMatchRequest, "Challenge", "", Metadata{RequestID: "r1"})
	inv, _ := svc.Notify(ctx, "cap", TypeTeamInvitation, "Join us", "", Metadata{InvitationID: "i1"})

	if err := svc.Respond(ctx, "cap", mr.ID, RespondInput{Action: ActionAccept}); err != nil {
		t.Fatalf("respond to request: %v", err)
	}
	if err := svc.Respond(ctx, "cap", inv.ID, RespondInput{Action: ActionReject}); err != nil {
		t.Fatalf("respond to invitation: %v", err)
	}
	if len(requests.accepted) != 1 || requests.accepted[0] != "r1" {
		t.Fatalf("request not accepted: %+v", requests)
	}
	if len(invitations.declined) != 1 || invitations.declined[0] != "i1" {
		t.Fatalf("invitation not rejected: %+v", invitations)
	}
	count, _ := svc.UnreadCount(ctx, "cap")
	if count != 0 {
		t.Fatalf("expected both notifications read, %d unread", count)
	}
}

func TestRespondLeavesNotificationUnreadWhenActionFails(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	svc.HandleMatchRequests(&fakeResponder{err: apperror.Validation("a lineup needs 5 to 7 players, got 3")})

	n, _ := svc.Notify(ctx, "cap", TypeMatchRequest, "Challenge", "", Metadata{RequestID: "r1"})
	err := svc.Respond(ctx, "cap", n.ID, RespondInput{Action: ActionAccept})
	if !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected the action error, got %v", err)
	}
	got, _ := svc.repo().Get(ctx, n.ID)
	if got.Read {
		t.Fatalf("notification must stay unread")
	}
}

func TestRespondMarksSettledNotificationsRead(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	requests := &fakeResponder{settled: true}
	svc.HandleMatchRequests(requests)
	svc.HandleInvitations(&fakeResponder{settled: true})

	mr, _ := svc.Notify(ctx, "cap", TypeMatchRequest, "Challenge", "", Metadata{RequestID: "r1"})
	inv, _ := svc.Notify(ctx, "cap", TypeTeamInvitation, "Join us", "", Metadata{InvitationID: "i1"})

	if err := svc.Respond(ctx, "cap", mr.ID, RespondInput{Action: ActionAccept}); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.Respond(ctx, "cap", inv.ID, RespondInput{Action: ActionReject}); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(requests.accepted) != 0 {
		t.Fatalf("settled request must not be answered again: %+v", requests)
	}
	count, _ := svc.UnreadCount(ctx, "cap")
	if count != 0 {
		t.Fatalf("expected settled notifications read, %d unread", count)
	}
}

func TestRespondRejectsPlainNotifications(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	n := &Notification{RecipientID: "u1", Type: TypeCardRejected, Metadata: datatypes.NewJSONType(Metadata{})}
	if err := svc.repo().Create(ctx, n); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := svc.Respond(ctx, "u1", n.ID, RespondInput{Action: ActionAccept})
	if !errors.Is(err, apperror.Validation("")) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
