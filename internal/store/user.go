package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/db"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, bio, role, password_hash, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (types.User, error) {
	var user types.User
	var bio sql.NullString
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&bio,
		&user.Role,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return types.User{}, err
	}
	user.Bio = bio.String
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	user.CreatedAt = now()

	const query = `
		INSERT INTO users (name, email, bio, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		user.Name,
		user.Email,
		nullString(user.Bio),
		user.Role,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&user.ID); err != nil {
		return types.User{}, translateWriteError(err)
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user types.User) (types.User, error) {
	const query = `
		UPDATE users
		SET name = $1,
			email = $2,
			bio = $3,
			password_hash = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		user.Name,
		user.Email,
		nullString(user.Bio),
		user.PasswordHash,
		user.ID,
	)
	if err != nil {
		return types.User{}, translateWriteError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.User{}, err
	}
	if affected == 0 {
		return types.User{}, ErrNotFound
	}
	return user, nil
}

// EmailOrNameTaken reports whether a user other than excludeID already uses
// the given email or name.
func (r *UserRepository) EmailOrNameTaken(ctx context.Context, email, name string, excludeID int) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE (email = $1 OR name = $2) AND id <> $3
		)`
	var taken bool
	if err := r.db.QueryRowContext(ctx, query, email, name, excludeID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

// Delete removes only the user row. Posts authored by the user are kept.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM users WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWithPosts removes the user's posts and then the user in a single
// transaction. It returns the media keys of the removed posts so callers can
// clean up stored objects once the rows are gone.
func (r *UserRepository) DeleteWithPosts(ctx context.Context, id int) ([]string, error) {
	var mediaKeys []string
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`DELETE FROM posts WHERE user_id = $1 RETURNING media_path`, id)
		if err != nil {
			return err
		}
		for rows.Next() {
			var media sql.NullString
			if err := rows.Scan(&media); err != nil {
				rows.Close()
				return err
			}
			if media.Valid && media.String != "" {
				mediaKeys = append(mediaKeys, media.String)
			}
		}
		if err := rows.Close(); err != nil {
			return err
		}
		if err := rows.Err(); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mediaKeys, nil
}
