package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/letsplay/court-booking/internal/model"
    "github.com/letsplay/court-booking/internal/utils"
)

// UserRepo provides persistence for application users.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password, inserts the user and returns its ID.
// Duplicate emails map to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password string, skill model.Skill, cost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (email, password_hash, skill) VALUES (?,?,?)",
        email, hash, uint8(skill))
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    return r.scanOne(ctx,
        "SELECT id,email,password_hash,skill,avatar_url,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
        email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    return r.scanOne(ctx,
        "SELECT id,email,password_hash,skill,avatar_url,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
        id)
}

// UpdateProfile changes the user's skill tier and avatar reference.
// A nil avatarURL clears the stored reference.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, skill model.Skill, avatarURL *string) error {
    res, err := r.DB.ExecContext(ctx,
        "UPDATE users SET skill=?, avatar_url=?, updated_at=NOW() WHERE id=?",
        uint8(skill), avatarURL, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // The row may exist with identical values; distinguish from absence.
        var one int
        if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&one); err != nil {
            return err
        }
    }
    return nil
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg interface{}) (model.User, error) {
    var (
        u      model.User
        skill  uint8
        avatar sql.NullString
    )
    err := r.DB.QueryRowContext(ctx, query, arg).
        Scan(&u.ID, &u.Email, &u.PasswordHash, &skill, &avatar, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    if err != nil {
        return model.User{}, err
    }
    u.Skill = model.Skill(skill)
    if avatar.Valid {
        a := avatar.String
        u.AvatarURL = &a
    }
    return u, nil
}
