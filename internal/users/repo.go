package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrReasonTooShort = errors.New("suspension reason must be at least 10 characters")
	ErrBadStatus      = errors.New("invalid user status")
)

// MinReasonLen applies to suspension reasons, mirrored by order rejection.
const MinReasonLen = 10

type RegisterInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Role     Role   `json:"role"`
}

type Repo struct{ DB *pgxpool.Pool }

const userCols = `id, email, name, photo_url, role, status, suspended_reason, created_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.Status, &u.SuspendedReason, &u.CreatedAt)
	return u, err
}

// Upsert registers a user on first sight of an email. Social logins re-post
// the same payload on every sign-in, so an existing email returns the stored
// row untouched (created=false) rather than an error.
func (r *Repo) Upsert(ctx context.Context, in RegisterInput) (User, bool, error) {
	role := in.Role
	if role != RoleManager {
		role = RoleBuyer // admin is never self-assigned
	}

	row := r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, in.Email)
	if u, err := scanUser(row); err == nil {
		return u, false, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return User{}, false, err
	}

	id := uuid.NewString()
	row = r.DB.QueryRow(ctx, `
		INSERT INTO users (id, email, name, photo_url, role, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING `+userCols,
		id, in.Email, in.Name, in.PhotoURL, role)
	u, err := scanUser(row)
	if err != nil {
		return User{}, false, err
	}
	return u, u.ID == id, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *Repo) GetByID(ctx context.Context, id string) (User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+userCols+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SetStatus applies an admin decision: approve, suspend (reason required) or
// reactivate (approve again, clearing the stored reason).
func (r *Repo) SetStatus(ctx context.Context, id string, status Status, reason string) (User, error) {
	switch status {
	case StatusApproved:
		reason = ""
	case StatusSuspended:
		if len(reason) < MinReasonLen {
			return User{}, ErrReasonTooShort
		}
	default:
		return User{}, ErrBadStatus
	}

	row := r.DB.QueryRow(ctx, `
		UPDATE users SET status=$2, suspended_reason=$3 WHERE id=$1
		RETURNING `+userCols, id, status, reason)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}
