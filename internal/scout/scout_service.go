package scout

import (
	"context"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/player"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 50
)

type Service struct {
	st *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{st: st}
}

func (s *Service) repo() ScoutRepository {
	return NewScoutRepository(s.st)
}

// entityName looks the viewed record up; a missing record is NotFound.
func entityName(ctx context.Context, st *store.Store, typ EntityType, id string) (string, error) {
	switch typ {
	case EntityPlayer:
		p, err := player.NewPlayerRepository(st).Get(ctx, id)
		if err != nil {
			return "", err
		}
		return p.Name, nil
	case EntityTeam:
		t, err := team.NewTeamRepository(st).GetTeamByID(ctx, id)
		if err != nil {
			return "", err
		}
		return t.Name, nil
	}
	return "", apperror.Validationf("unknown entity type %q", typ)
}

// RecordView logs that the scout opened a player or team and bumps the
// profile counters in the same transaction.
func (s *Service) RecordView(ctx context.Context, scoutID string, typ EntityType, entityID string) (*ScoutProfile, error) {
	if !typ.Valid() {
		return nil, apperror.Validationf("unknown entity type %q", typ)
	}
	var prof *ScoutProfile
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		if _, err := entityName(ctx, tx, typ, entityID); err != nil {
			return err
		}
		scouts := NewScoutRepository(tx)
		now := models.Now()
		if err := scouts.AppendActivity(ctx, &ScoutActivity{
			ScoutID:    scoutID,
			EntityID:   entityID,
			EntityType: typ,
			ViewedAt:   now,
		}); err != nil {
			return err
		}

		var err error
		prof, err = scouts.GetProfile(ctx, scoutID)
		if apperror.Is(err, apperror.KindNotFound) {
			prof, err = &ScoutProfile{ID: scoutID}, nil
		}
		if err != nil {
			return err
		}
		prof.TotalViews++
		if typ == EntityPlayer {
			prof.PlayerViews++
		} else {
			prof.TeamViews++
		}
		prof.LastViewedAt = &now
		return scouts.SaveProfile(ctx, prof)
	})
	if err != nil {
		return nil, err
	}
	return prof, nil
}

// Profile returns the scout's aggregates, zero when nothing was viewed yet.
func (s *Service) Profile(ctx context.Context, scoutID string) (*ScoutProfile, error) {
	prof, err := s.repo().GetProfile(ctx, scoutID)
	if apperror.Is(err, apperror.KindNotFound) {
		return &ScoutProfile{ID: scoutID}, nil
	}
	return prof, err
}

// RecentlyViewed lists distinct viewed entities, most recent view first.
// Entities deleted since are dropped.
func (s *Service) RecentlyViewed(ctx context.Context, scoutID string, limit int) ([]ViewedEntity, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	log, err := s.repo().ListActivity(ctx, scoutID)
	if err != nil {
		return nil, err
	}

	out := []ViewedEntity{}
	seen := make(map[string]bool)
	for _, a := range log {
		key := string(a.EntityType) + ":" + a.EntityID
		if seen[key] {
			continue
		}
		seen[key] = true
		name, err := entityName(ctx, s.st, a.EntityType, a.EntityID)
		if apperror.Is(err, apperror.KindNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, ViewedEntity{EntityID: a.EntityID, EntityType: a.EntityType, Name: name, ViewedAt: a.ViewedAt})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
