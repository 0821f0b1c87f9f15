package memory

import (
	"context"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/store"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

type UserRepository struct {
	db *DB
}

func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	users := make([]types.User, len(r.db.users))
	copy(users, r.db.users)
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if i := r.db.userIndex(id); i >= 0 {
		return r.db.users[i], nil
	}
	return types.User{}, store.ErrNotFound
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, user := range r.db.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	if user.Role == "" {
		user.Role = types.RoleUser
	}
	user.ID = r.db.id("users")
	user.CreatedAt = r.db.stamp()
	r.db.users = append(r.db.users, user)
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user types.User) (types.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := r.db.userIndex(user.ID)
	if i < 0 {
		return types.User{}, store.ErrNotFound
	}
	for _, existing := range r.db.users {
		if existing.ID != user.ID && existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}

	stored := r.db.users[i]
	stored.Name = user.Name
	stored.Email = user.Email
	stored.Bio = user.Bio
	stored.PasswordHash = user.PasswordHash
	r.db.users[i] = stored
	return stored, nil
}

func (r *UserRepository) EmailOrNameTaken(ctx context.Context, email, name string, excludeID int) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, user := range r.db.users {
		if user.ID != excludeID && (user.Email == email || user.Name == name) {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes only the user row. Authored posts are kept.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := r.db.userIndex(id)
	if i < 0 {
		return store.ErrNotFound
	}
	r.db.deleteUserCascade(i)
	return nil
}

// DeleteWithPosts removes the user's posts and the user atomically and
// returns the media keys of the removed posts.
func (r *UserRepository) DeleteWithPosts(ctx context.Context, id int) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := r.db.userIndex(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}

	var mediaKeys []string
	for j := len(r.db.posts) - 1; j >= 0; j-- {
		if r.db.posts[j].UserID != id {
			continue
		}
		if post := r.db.deletePostCascade(j); post.MediaPath != "" {
			mediaKeys = append(mediaKeys, post.MediaPath)
		}
	}
	r.db.deleteUserCascade(r.db.userIndex(id))
	return mediaKeys, nil
}
