package services

import (
	"context"
	"errors"
	"strings"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/store"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]types.User, error)
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	EmailOrNameTaken(ctx context.Context, email, name string, excludeID int) (bool, error)
	Delete(ctx context.Context, id int) error
	DeleteWithPosts(ctx context.Context, id int) ([]string, error)
}

// MediaRemover deletes stored media objects.
type MediaRemover interface {
	Remove(ctx context.Context, key string)
}

// UserService encapsulates account use-cases: registration, credential
// checks, profile edits and removal.
type UserService struct {
	repo     UserRepository
	media    MediaRemover
	hashCost int
}

func NewUserService(repo UserRepository, media MediaRemover) *UserService {
	return &UserService{repo: repo, media: media, hashCost: bcrypt.DefaultCost}
}

// Registration is the input for creating an account.
type Registration struct {
	Name     string
	Email    string
	Password string
	Bio      string
}

// Register creates an account with the given role.
func (s *UserService) Register(ctx context.Context, reg Registration, role string) (types.User, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Bio = strings.TrimSpace(reg.Bio)
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		return types.User{}, ErrMissingRegistration
	}
	if role == "" {
		role = types.RoleUser
	}

	if _, err := s.repo.GetByEmail(ctx, reg.Email); err == nil {
		return types.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.hashCost)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Name:         reg.Name,
		Email:        reg.Email,
		Bio:          reg.Bio,
		Role:         role,
		PasswordHash: string(hashed),
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return types.User{}, ErrEmailTaken
		}
		return types.User{}, err
	}
	return user, nil
}

// Authenticate checks member credentials. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.checkCredentials(ctx, email, password)
	if errors.Is(err, errBadCredentials) {
		return types.User{}, ErrInvalidCredentials
	}
	return user, err
}

// AuthenticateAdmin checks credentials and additionally requires the admin role.
func (s *UserService) AuthenticateAdmin(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.checkCredentials(ctx, email, password)
	if errors.Is(err, errBadCredentials) {
		return types.User{}, ErrAdminInvalidCredentials
	}
	if err != nil {
		return types.User{}, err
	}
	if !user.IsAdmin() {
		return types.User{}, ErrAdminOnly
	}
	return user, nil
}

var errBadCredentials = errors.New("bad credentials")

func (s *UserService) checkCredentials(ctx context.Context, email, password string) (types.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return types.User{}, ErrMissingCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, errBadCredentials
		}
		return types.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, errBadCredentials
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return types.User{}, ErrUserNotFound
	}
	return user, err
}

// ProfileUpdate carries the fields a user may change. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Name            *string
	Email           *string
	Bio             *string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile applies upd to userID on behalf of actorID. Changing the
// name, email or password requires the current password.
func (s *UserService) UpdateProfile(ctx context.Context, actorID, userID int, upd ProfileUpdate) (types.User, error) {
	if actorID != userID {
		return types.User{}, ErrForeignProfileUpdate
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return types.User{}, err
	}

	name := user.Name
	if upd.Name != nil {
		name = strings.TrimSpace(*upd.Name)
	}
	email := user.Email
	if upd.Email != nil {
		email = strings.TrimSpace(*upd.Email)
	}
	if name == "" || email == "" {
		return types.User{}, ErrBlankProfileField
	}

	sensitive := upd.NewPassword != "" || name != user.Name || email != user.Email
	if sensitive {
		if upd.CurrentPassword == "" {
			return types.User{}, ErrCurrentPasswordRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(upd.CurrentPassword)); err != nil {
			return types.User{}, ErrCurrentPasswordIncorrect
		}
	}

	if name != user.Name || email != user.Email {
		taken, err := s.repo.EmailOrNameTaken(ctx, email, name, userID)
		if err != nil {
			return types.User{}, err
		}
		if taken {
			return types.User{}, ErrEmailOrNameInUse
		}
	}

	user.Name = name
	user.Email = email
	if upd.Bio != nil {
		user.Bio = strings.TrimSpace(*upd.Bio)
	}
	if upd.NewPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(upd.NewPassword), s.hashCost)
		if err != nil {
			return types.User{}, err
		}
		user.PasswordHash = string(hashed)
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return types.User{}, ErrUserNotFound
		case errors.Is(err, store.ErrConflict):
			return types.User{}, ErrEmailOrNameInUse
		}
		return types.User{}, err
	}
	return updated, nil
}

// DeleteAccount removes userID together with every post it authored.
// Only the account owner may do this.
func (s *UserService) DeleteAccount(ctx context.Context, actorID, userID int) error {
	if actorID != userID {
		return ErrForeignProfileDelete
	}

	mediaKeys, err := s.repo.DeleteWithPosts(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if s.media != nil {
		for _, key := range mediaKeys {
			s.media.Remove(ctx, key)
		}
	}
	return nil
}

// AdminDelete removes the user row only. Authored posts stay in place and
// drop out of the main feed because it joins on existing authors.
func (s *UserService) AdminDelete(ctx context.Context, userID int) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
