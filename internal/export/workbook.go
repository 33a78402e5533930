package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

// MaxCellLength is the longest text a workbook cell can hold.
const MaxCellLength = 32767

const summarySheet = "Summary"

// FileName names a backup taken at now.
func FileName(now time.Time) string {
	return "league-backup-" + now.UTC().Format("2006-01-02_15-04-05") + ".xlsx"
}

// Truncate cuts s to MaxCellLength characters.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxCellLength {
		return s
	}
	r := []rune(s)
	return string(r[:MaxCellLength])
}

// table is one sheet: a header row and one row of cells per record.
type table struct {
	name    string
	columns []string
	rows    [][]any
}

// flatten turns records into a table. Columns are the union of the JSON
// field names, id first then alphabetical. Nested values become JSON text.
func flatten[T any](name string, records []T) (table, error) {
	t := table{name: name}
	objs := make([]map[string]any, 0, len(records))
	keys := make(map[string]bool)
	for i := range records {
		raw, err := json.Marshal(&records[i])
		if err != nil {
			return t, err
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		obj := map[string]any{}
		if err := dec.Decode(&obj); err != nil {
			return t, err
		}
		for k := range obj {
			keys[k] = true
		}
		objs = append(objs, obj)
	}

	for k := range keys {
		if k != "id" {
			t.columns = append(t.columns, k)
		}
	}
	sort.Strings(t.columns)
	if keys["id"] || len(keys) == 0 {
		t.columns = append([]string{"id"}, t.columns...)
	}

	for _, obj := range objs {
		row := make([]any, len(t.columns))
		for i, col := range t.columns {
			row[i] = cell(obj[col])
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func cell(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return Truncate(x)
	case bool:
		return x
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	default:
		raw, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return Truncate(string(raw))
	}
}

func (s *Snapshot) tables() ([]table, error) {
	builders := []func() (table, error){
		func() (table, error) { return flatten("Users", s.Users) },
		func() (table, error) { return flatten("Players", s.Players) },
		func() (table, error) { return flatten("Teams", s.Teams) },
		func() (table, error) { return flatten("Team Invitations", s.Invitations) },
		func() (table, error) { return flatten("Matches", s.Matches) },
		func() (table, error) { return flatten("Match Requests", s.MatchRequests) },
		func() (table, error) { return flatten("Registrations", s.Registrations) },
		func() (table, error) { return flatten("Events", s.Events) },
		func() (table, error) { return flatten("Kits", s.Kits) },
		func() (table, error) { return flatten("Kit Requests", s.KitRequests) },
		func() (table, error) { return flatten("Notifications", s.Notifications) },
		func() (table, error) { return flatten("Scout Profiles", s.ScoutProfiles) },
		func() (table, error) { return flatten("Scout Activity", s.ScoutActivities) },
	}
	tables := make([]table, 0, len(builders))
	for _, build := range builders {
		t, err := build()
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return err
		}
	}
	return nil
}

// Workbook builds the backup workbook: a Summary sheet followed by one sheet
// per entity. The caller closes the file.
func Workbook(snap *Snapshot) (*excelize.File, error) {
	tables, err := snap.tables()
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, "flatten snapshot", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		f.Close()
		return nil, err
	}
	summary := [][]any{
		{"Entity", "Count"},
	}
	for _, t := range tables {
		summary = append(summary, []any{t.name, len(t.rows)})
	}
	summary = append(summary, []any{}, []any{"Generated at", snap.GeneratedAt.UTC().Format(time.RFC3339)})
	if err := writeRows(f, summarySheet, summary); err != nil {
		f.Close()
		return nil, err
	}

	for _, t := range tables {
		if _, err := f.NewSheet(t.name); err != nil {
			f.Close()
			return nil, err
		}
		header := make([]any, len(t.columns))
		for i, c := range t.columns {
			header[i] = c
		}
		if err := writeRows(f, t.name, append([][]any{header}, t.rows...)); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write takes a snapshot and streams it to w as a workbook.
func (s *Service) Write(ctx context.Context, w io.Writer) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	f, err := Workbook(snap)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

// SaveTo writes a workbook into dir and returns its path.
func (s *Service) SaveTo(ctx context.Context, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	f, err := Workbook(snap)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, FileName(snap.GeneratedAt))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	log.Ctx(ctx).Info().Str("path", path).Msg("Backup written")
	return path, nil
}
