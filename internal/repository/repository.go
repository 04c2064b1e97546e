package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sellerops/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SetDefaultUser seeds the initial admin account when the users table is
// empty, so a fresh deployment is reachable.
func (r *Repository) SetDefaultUser(ctx context.Context) error {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := r.CreateUser(ctx, "admin", "admin", nil); err != nil {
		return fmt.Errorf("seed default user: %w", err)
	}
	return nil
}

func (r *Repository) CreateUser(ctx context.Context, username, password string, chineseName *string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user domain.User
	err = r.pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, chinese_name)
		VALUES ($1, $2, $3)
		RETURNING id, username, chinese_name, created_at
	`, username, string(hash), chineseName).Scan(&user.ID, &user.Username, &user.ChineseName, &user.CreatedAt)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("username %q: %w", username, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &user, nil
}

// AuthenticateUser verifies credentials. A nil user with nil error means the
// username is unknown or the password does not match; callers must not learn
// which.
func (r *Repository) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	var (
		user domain.User
		hash string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, chinese_name, created_at, password_hash
		FROM users
		WHERE username = $1
	`, strings.TrimSpace(username)).Scan(&user.ID, &user.Username, &user.ChineseName, &user.CreatedAt, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate user query: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, nil
	}
	return &user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, chinese_name, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.ChineseName, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, username, chinese_name, created_at
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.ChineseName, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *Repository) UpdateUserPassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	tag, err := r.pool.Exec(ctx, "UPDATE users SET password_hash = $1 WHERE id = $2", string(hash), id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CreateSession(ctx context.Context, userID int64, ttl time.Duration) (*domain.Session, error) {
	session := domain.Session{
		Token:  uuid.NewString(),
		UserID: userID,
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, NOW() + $3::interval)
		RETURNING created_at, expires_at
	`, session.Token, userID, fmt.Sprintf("%d seconds", int(ttl.Seconds()))).Scan(&session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return &session, nil
}

// GetSessionUser resolves a session token to its user. Expired sessions are
// deleted on sight and reported as not found.
func (r *Repository) GetSessionUser(ctx context.Context, token string) (*domain.User, error) {
	var (
		user      domain.User
		expiresAt time.Time
	)
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.username, u.chinese_name, u.created_at, s.expires_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = $1
	`, token).Scan(&user.ID, &user.Username, &user.ChineseName, &user.CreatedAt, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if time.Now().After(expiresAt) {
		_, _ = r.pool.Exec(ctx, "DELETE FROM sessions WHERE token = $1", token)
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM sessions WHERE token = $1", token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
