package model

import (
    "fmt"
    "time"
)

// Skill is the ordinal competence tier used to match opponents of a
// similar level. Values are stored as small integers in the `users`
// table and compared for equality during matchmaking.
type Skill uint8

const (
    SkillNovice       Skill = 1
    SkillIntermediate Skill = 2
    SkillAdvanced     Skill = 3
    SkillMaster       Skill = 4
)

// skillNames maps each tier to its display label.
var skillNames = map[Skill]string{
    SkillNovice:       "NOVICE",
    SkillIntermediate: "INTERMEDIATE",
    SkillAdvanced:     "ADVANCED",
    SkillMaster:       "MASTER",
}

// String returns the label for the tier, or "UNKNOWN" for values
// outside the defined range.
func (s Skill) String() string {
    if name, ok := skillNames[s]; ok {
        return name
    }
    return "UNKNOWN"
}

// Valid reports whether the tier is one of the defined values.
func (s Skill) Valid() bool {
    _, ok := skillNames[s]
    return ok
}

// ParseSkill validates a numeric tier received from a client. It
// returns an error for values outside 1..4.
func ParseSkill(n int) (Skill, error) {
    s := Skill(n)
    if !s.Valid() {
        return 0, fmt.Errorf("invalid skill level %d", n)
    }
    return s, nil
}

// User represents an application user record as stored in the
// `users` table. The password hash never leaves the repository
// layer; handlers define separate response types with JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Skill        – ordinal competence tier (1..4).
//  AvatarURL    – optional reference to an externally stored avatar.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Skill        Skill     // users.skill
    AvatarURL    *string   // users.avatar_url (nullable)
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and carries expiry and revocation
// metadata. The plain token is not stored; only its SHA-256 hash.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
