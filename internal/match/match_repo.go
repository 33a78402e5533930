package match

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
)

// MatchRepository defines methods to interact with match-related data
type MatchRepository interface {
	// Match methods
	CreateMatch(ctx context.Context, m *Match) error
	GetMatch(ctx context.Context, id string) (*Match, error)
	GetAllMatches(ctx context.Context) ([]Match, error)
	ListMatches(ctx context.Context, page, pageSize int, filters map[string]string) ([]Match, int64, error)
	ListByEvent(ctx context.Context, eventID string) ([]Match, error)
	SaveMatch(ctx context.Context, m *Match) error
	DeleteMatch(ctx context.Context, id string) error

	// Match request methods
	CreateRequest(ctx context.Context, r *MatchRequest) error
	GetRequest(ctx context.Context, id string) (*MatchRequest, error)
	GetAllRequests(ctx context.Context) ([]MatchRequest, error)
	ListRequests(ctx context.Context, status RequestStatus) ([]MatchRequest, error)
	ListRequestsForTeams(ctx context.Context, teamIDs []string) ([]MatchRequest, error)
	SaveRequest(ctx context.Context, r *MatchRequest) error
}

type matchRepository struct {
	matches  *store.Collection[Match]
	requests *store.Collection[MatchRequest]
}

func NewMatchRepository(st *store.Store) MatchRepository {
	return &matchRepository{
		matches:  store.NewCollection[Match](st, "match", "status", "event_id", "home_team_id", "away_team_id"),
		requests: store.NewCollection[MatchRequest](st, "match request", "status", "requester_team_id", "opponent_team_id"),
	}
}

func (r *matchRepository) CreateMatch(ctx context.Context, m *Match) error {
	if m.ID == "" {
		m.ID = store.NewID()
	}
	if m.Events == nil {
		m.Events = datatypes.JSONSlice[MatchEvent]{}
	}
	m.Touch(models.Now())
	return r.matches.Put(ctx, m)
}

func (r *matchRepository) GetMatch(ctx context.Context, id string) (*Match, error) {
	return r.matches.Get(ctx, id)
}

func (r *matchRepository) GetAllMatches(ctx context.Context) ([]Match, error) {
	return r.matches.GetAll(ctx)
}

// ListMatches pages through matches, newest first. Supported filters are
// status, team_id (either side) and event_id.
func (r *matchRepository) ListMatches(ctx context.Context, page, pageSize int, filters map[string]string) ([]Match, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if status, ok := filters["status"]; ok {
			db = db.Where("status = ?", status)
		}
		if teamID, ok := filters["team_id"]; ok {
			db = db.Where("home_team_id = ? OR away_team_id = ?", teamID, teamID)
		}
		if eventID, ok := filters["event_id"]; ok {
			db = db.Where("event_id = ?", eventID)
		}
		return db
	}

	total, err := r.matches.Count(ctx, scope)
	if err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * pageSize
	matches, err := r.matches.Find(ctx, func(db *gorm.DB) *gorm.DB {
		return scope(db).Order("created_at desc").Order("id").Offset(offset).Limit(pageSize)
	})
	if err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

func (r *matchRepository) ListByEvent(ctx context.Context, eventID string) ([]Match, error) {
	return r.matches.GetByIndex(ctx, "event_id", eventID)
}

func (r *matchRepository) SaveMatch(ctx context.Context, m *Match) error {
	m.Touch(models.Now())
	return r.matches.Put(ctx, m)
}

func (r *matchRepository) DeleteMatch(ctx context.Context, id string) error {
	return r.matches.Delete(ctx, id)
}

func (r *matchRepository) CreateRequest(ctx context.Context, req *MatchRequest) error {
	if req.ID == "" {
		req.ID = store.NewID()
	}
	req.Touch(models.Now())
	return r.requests.Put(ctx, req)
}

func (r *matchRepository) GetRequest(ctx context.Context, id string) (*MatchRequest, error) {
	return r.requests.Get(ctx, id)
}

func (r *matchRepository) GetAllRequests(ctx context.Context) ([]MatchRequest, error) {
	return r.requests.GetAll(ctx)
}

func (r *matchRepository) ListRequests(ctx context.Context, status RequestStatus) ([]MatchRequest, error) {
	return r.requests.Find(ctx, func(db *gorm.DB) *gorm.DB {
		if status != "" {
			db = db.Where("status = ?", status)
		}
		return db.Order("created_at desc").Order("id")
	})
}

// ListRequestsForTeams returns requests where any of teamIDs is either side.
func (r *matchRepository) ListRequestsForTeams(ctx context.Context, teamIDs []string) ([]MatchRequest, error) {
	if len(teamIDs) == 0 {
		return []MatchRequest{}, nil
	}
	return r.requests.Find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("requester_team_id IN ? OR opponent_team_id IN ?", teamIDs, teamIDs).
			Order("created_at desc").Order("id")
	})
}

func (r *matchRepository) SaveRequest(ctx context.Context, req *MatchRequest) error {
	req.Touch(models.Now())
	return r.requests.Put(ctx, req)
}
