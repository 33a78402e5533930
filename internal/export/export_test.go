package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

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
	"github.com/DhavalSuthar-24/leaguehub/internal/testutil"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
)

var allModels = []any{
	&user.User{}, &player.Player{}, &team.Team{}, &team.TeamInvitation{},
	&match.Match{}, &match.MatchRequest{}, &registration.PlayerRegistrationRequest{},
	&event.Event{}, &kit.Kit{}, &kit.KitRequest{}, &notification.Notification{},
	&scout.ScoutProfile{}, &scout.ScoutActivity{},
}

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st := testutil.NewTestStore(t, nil, allModels...)
	ctx := context.Background()
	u := &user.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "secret-hash", Role: user.RoleCaptain}
	if err := user.NewUserRepository(st).Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := team.NewTeamRepository(st).CreateTeam(ctx, &team.Team{Name: "Harbour FC", CaptainID: u.ID}); err != nil {
		t.Fatalf("create team: %v", err)
	}
	if err := player.NewPlayerRepository(st).Create(ctx, &player.Player{Name: "Ana", Position: player.PositionMID, CardType: player.CardSilver}); err != nil {
		t.Fatalf("create player: %v", err)
	}
	if _, err := notification.NewService(st).Notify(ctx, u.ID, notification.TypeKitUpdate, "Kit", "Your kit is ready", notification.Metadata{KitRequestID: "k1"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	return st
}

func TestFileName(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 5, 7, 0, time.UTC)
	if got := FileName(at); got != "league-backup-2026-03-01_09-05-07.xlsx" {
		t.Fatalf("unexpected file name %q", got)
	}
}

func TestTruncateCountsCharacters(t *testing.T) {
	long := strings.Repeat("é", MaxCellLength+10)
	got := Truncate(long)
	if n := len([]rune(got)); n != MaxCellLength {
		t.Fatalf("expected %d characters, got %d", MaxCellLength, n)
	}
	if Truncate("short") != "short" {
		t.Fatal("short strings must be kept")
	}
}

func TestFlattenWritesNestedValuesAsJSON(t *testing.T) {
	tbl, err := flatten("Matches", []match.Match{{
		ID:            "m1",
		HomePlayerIDs: models.IDList{"a", "b"},
		HomeScore:     2,
	}})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if tbl.columns[0] != "id" {
		t.Fatalf("expected id first, got %v", tbl.columns)
	}
	values := map[string]any{}
	for i, col := range tbl.columns {
		values[col] = tbl.rows[0][i]
	}
	if values["homePlayerIds"] != `["a","b"]` {
		t.Fatalf("expected lineup as JSON text, got %#v", values["homePlayerIds"])
	}
	if values["homeScore"] != int64(2) {
		t.Fatalf("expected numeric score, got %#v", values["homeScore"])
	}
}

func TestWorkbookHasSummaryAndOneSheetPerEntity(t *testing.T) {
	st := seededStore(t)
	snap, err := NewService(st).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	f, err := Workbook(snap)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 14 || sheets[0] != "Summary" {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	summary, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("summary rows: %v", err)
	}
	counts := map[string]string{}
	for _, row := range summary[1:] {
		if len(row) == 2 {
			counts[row[0]] = row[1]
		}
	}
	if counts["Users"] != "1" || counts["Teams"] != "1" || counts["Notifications"] != "1" || counts["Matches"] != "0" {
		t.Fatalf("unexpected counts %v", counts)
	}

	users, err := f.GetRows("Users")
	if err != nil {
		t.Fatalf("user rows: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected header and one user, got %d rows", len(users))
	}
	for _, col := range users[0] {
		if strings.Contains(strings.ToLower(col), "password") {
			t.Fatalf("password column exported: %v", users[0])
		}
	}
}

func TestSnapshotFailsWhenAnyReadFails(t *testing.T) {
	// notifications table missing
	st := testutil.NewTestStore(t, nil, &user.User{}, &player.Player{}, &team.Team{})
	if _, err := NewService(st).Snapshot(context.Background()); err == nil {
		t.Fatal("expected snapshot to fail")
	}
}

func TestSaveToWritesWorkbook(t *testing.T) {
	st := seededStore(t)
	dir := t.TempDir()
	path, err := NewService(st).SaveTo(context.Background(), dir)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(path, dir) || !strings.HasSuffix(path, ".xlsx") {
		t.Fatalf("unexpected path %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if f.GetSheetList()[0] != "Summary" {
		t.Fatalf("unexpected first sheet %v", f.GetSheetList())
	}
}

func TestExportHandlerServesAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := seededStore(t)
	r := gin.New()
	r.GET("/export", NewExportController(NewService(st)).Export)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Content-Type") != xlsxContentType {
		t.Fatalf("unexpected content type %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "league-backup-") {
		t.Fatalf("unexpected disposition %q", w.Header().Get("Content-Disposition"))
	}
	if w.Body.Len() == 0 {
		t.Fatal("empty workbook")
	}
}
