package kit

import (
	"context"
	"strings"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/notification"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
	"github.com/DhavalSuthar-24/leaguehub/pkg/utils"
)

type KitInput struct {
	Name      string   `json:"name" binding:"required"`
	TeamID    *string  `json:"teamId"`
	Price     float64  `json:"price" binding:"gte=0"`
	ImageURL  string   `json:"imageUrl"`
	Sizes     []string `json:"sizes"`
	Available *bool    `json:"available"`
}

type SubmitInput struct {
	Type         RequestType `json:"type" binding:"required,oneof=official_kit custom_design"`
	KitID        string      `json:"kitId"`
	Size         string      `json:"size" binding:"required"`
	Quantity     int         `json:"quantity" binding:"gte=0"`
	PlayerName   string      `json:"playerName"`
	PlayerNumber int         `json:"playerNumber" binding:"gte=0,lte=99"`
	DesignNotes  string      `json:"designNotes" binding:"max=2000"`
}

type Service struct {
	st *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{st: st}
}

func (s *Service) repo() KitRepository {
	return NewKitRepository(s.st)
}

func (s *Service) checkTeam(ctx context.Context, teamID *string) (*string, error) {
	if teamID == nil || *teamID == "" {
		return nil, nil
	}
	if _, err := team.NewTeamRepository(s.st).GetTeamByID(ctx, *teamID); err != nil {
		return nil, err
	}
	return teamID, nil
}

func (s *Service) CreateKit(ctx context.Context, in KitInput) (*Kit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.Validation("kit name is required")
	}
	if in.Price < 0 {
		return nil, apperror.Validation("price must not be negative")
	}
	teamID, err := s.checkTeam(ctx, in.TeamID)
	if err != nil {
		return nil, err
	}
	k := &Kit{
		Name:      name,
		TeamID:    teamID,
		Price:     in.Price,
		ImageURL:  in.ImageURL,
		Sizes:     append([]string{}, in.Sizes...),
		Available: in.Available == nil || *in.Available,
	}
	if err := s.repo().CreateKit(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *Service) GetKit(ctx context.Context, id string) (*Kit, error) {
	return s.repo().GetKit(ctx, id)
}

func (s *Service) ListKits(ctx context.Context) ([]Kit, error) {
	return s.repo().GetAllKits(ctx)
}

// UpdateKit replaces the kit's catalogue fields.
func (s *Service) UpdateKit(ctx context.Context, id string, in KitInput) (*Kit, error) {
	kits := s.repo()
	k, err := kits.GetKit(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.Validation("kit name is required")
	}
	if in.Price < 0 {
		return nil, apperror.Validation("price must not be negative")
	}
	if k.TeamID, err = s.checkTeam(ctx, in.TeamID); err != nil {
		return nil, err
	}
	k.Name, k.Price, k.ImageURL = name, in.Price, in.ImageURL
	if in.Sizes != nil {
		k.Sizes = append([]string{}, in.Sizes...)
	}
	if in.Available != nil {
		k.Available = *in.Available
	}
	if err := kits.SaveKit(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *Service) DeleteKit(ctx context.Context, id string) error {
	return s.repo().DeleteKit(ctx, id)
}

// Submit places a kit order. Official kits must name an available catalogue
// kit; custom designs must describe the design.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (*KitRequest, error) {
	in.Size = strings.TrimSpace(in.Size)
	in.DesignNotes = strings.TrimSpace(in.DesignNotes)
	if in.Size == "" {
		return nil, apperror.Validation("size is required")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 {
		return nil, apperror.Validation("quantity must be positive")
	}

	req := &KitRequest{
		UserID:       userID,
		Type:         in.Type,
		Size:         in.Size,
		Quantity:     in.Quantity,
		PlayerName:   strings.TrimSpace(in.PlayerName),
		PlayerNumber: in.PlayerNumber,
		DesignNotes:  in.DesignNotes,
		Status:       StatusPending,
	}
	switch in.Type {
	case TypeOfficialKit:
		if in.KitID == "" {
			return nil, apperror.Validation("an official kit order needs a kit")
		}
		k, err := s.repo().GetKit(ctx, in.KitID)
		if err != nil {
			return nil, err
		}
		if !k.Available {
			return nil, apperror.Validation("kit is not available")
		}
		if !k.HasSize(in.Size) {
			return nil, apperror.Validationf("kit is not offered in size %s", in.Size)
		}
		req.KitID = &k.ID
	case TypeCustomDesign:
		if in.DesignNotes == "" {
			return nil, apperror.Validation("a custom design order needs design notes")
		}
	default:
		return nil, apperror.Validationf("unknown kit request type %q", in.Type)
	}

	ref, err := utils.Reference("KIT")
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, "could not generate order reference", err)
	}
	req.Reference = ref
	if err := s.repo().CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]KitRequest, error) {
	return s.repo().ListRequestsByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]KitRequest, error) {
	return s.repo().GetAllRequests(ctx)
}

// SetStatus moves an order to any status of the closed set.
func (s *Service) SetStatus(ctx context.Context, id string, status RequestStatus) (*KitRequest, error) {
	if !status.Valid() {
		return nil, apperror.Validationf("unknown kit request status %q", status)
	}
	requests := s.repo()
	req, err := requests.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Status = status
	if err := requests.SaveRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// SetAdminMessage replaces the order's admin note and tells the owner.
func (s *Service) SetAdminMessage(ctx context.Context, id, message string) (*KitRequest, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperror.Validation("message is required")
	}
	var req *KitRequest
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		requests := NewKitRepository(tx)
		var err error
		if req, err = requests.GetRequest(ctx, id); err != nil {
			return err
		}
		now := models.Now()
		req.AdminMessage = message
		req.AdminMessageAt = &now
		if err := requests.SaveRequest(ctx, req); err != nil {
			return err
		}
		_, err = notification.NewService(tx).Notify(ctx, req.UserID, notification.TypeKitUpdate,
			"Kit order "+req.Reference, message, notification.Metadata{KitRequestID: req.ID})
		return err
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}
