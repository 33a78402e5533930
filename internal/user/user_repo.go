package user

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

// UserRepository defines the persistence operations on users.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByPlayerCard(ctx context.Context, playerID string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Save(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	LinkPlayerCard(ctx context.Context, userID, playerID string) (*User, error)
}

type userRepository struct {
	users *store.Collection[User]
}

func NewUserRepository(st *store.Store) UserRepository {
	return &userRepository{users: store.NewCollection[User](st, "user", "email", "player_card_id", "role")}
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a new user. An email already on file is a conflict and the
// existing record is left untouched.
func (r *userRepository) Create(ctx context.Context, u *User) error {
	u.Email = NormalizeEmail(u.Email)
	if _, err := r.GetByEmail(ctx, u.Email); err == nil {
		return apperror.Conflict("a user with this email already exists")
	} else if !apperror.Is(err, apperror.KindNotFound) {
		return err
	}
	if u.ID == "" {
		u.ID = store.NewID()
	}
	u.Touch(models.Now())
	return r.users.Put(ctx, u)
}

func (r *userRepository) Get(ctx context.Context, id string) (*User, error) {
	return r.users.Get(ctx, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	found, err := r.users.GetByIndex(ctx, "email", NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperror.NotFound("user not found")
	}
	return &found[0], nil
}

func (r *userRepository) GetByPlayerCard(ctx context.Context, playerID string) (*User, error) {
	found, err := r.users.GetByIndex(ctx, "player_card_id", playerID)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperror.NotFound("user not found")
	}
	return &found[0], nil
}

func (r *userRepository) List(ctx context.Context) ([]User, error) {
	return r.users.Find(ctx, func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") })
}

func (r *userRepository) Save(ctx context.Context, u *User) error {
	u.Touch(models.Now())
	return r.users.Put(ctx, u)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.users.Delete(ctx, id)
}

// LinkPlayerCard points the user at a player card. A card already held by
// another user is a conflict.
func (r *userRepository) LinkPlayerCard(ctx context.Context, userID, playerID string) (*User, error) {
	u, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	holder, err := r.GetByPlayerCard(ctx, playerID)
	switch {
	case err == nil && holder.ID != userID:
		return nil, apperror.Conflict("player card is already linked to another user")
	case err != nil && !apperror.Is(err, apperror.KindNotFound):
		return nil, err
	}
	u.PlayerCardID = &playerID
	if err := r.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
