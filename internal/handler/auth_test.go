package handler

import (
    "net/http"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"

    "github.com/letsplay/court-booking/internal/config"
    "github.com/letsplay/court-booking/internal/repository"
    "github.com/letsplay/court-booking/internal/utils"
)

func newAuthTest(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    cfg := config.Config{
        JWTSecret:      "test-secret",
        AccessTTLMin:   15,
        RefreshTTLDays: 7,
        BcryptCost:     bcrypt.MinCost,
    }
    return NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)), mock
}

func TestRegisterRejectsInvalidSkill(t *testing.T) {
    h, mock := newAuthTest(t)

    body := `{"email":"a@example.com","password":"pw","skill":7}`
    c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/register", body, 0)

    require.NoError(t, h.Register(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Contains(t, rec.Body.String(), "skill must be between 1 and 4")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
    h, mock := newAuthTest(t)

    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
        WithArgs("a@example.com", sqlmock.AnyArg(), 2).
        WillReturnError(errDuplicate{})

    body := `{"email":"A@Example.com","password":"pw","skill":2}`
    c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/register", body, 0)

    require.NoError(t, h.Register(c))
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Contains(t, rec.Body.String(), "email already exists")
    assert.NoError(t, mock.ExpectationsWereMet())
}

type errDuplicate struct{}

func (errDuplicate) Error() string {
    return "Error 1062: Duplicate entry 'a@example.com' for key 'users.uq_users_email'"
}

func userRowWithHash(id uint64, email, hash string) *sqlmock.Rows {
    now := time.Now()
    return sqlmock.NewRows([]string{
        "id", "email", "password_hash", "skill", "avatar_url",
        "is_active", "created_at", "updated_at",
    }).AddRow(id, email, hash, 2, nil, true, now, now)
}

func TestLoginWrongPassword(t *testing.T) {
    h, mock := newAuthTest(t)

    hash, err := utils.HashPassword("right", bcrypt.MinCost)
    require.NoError(t, err)
    mock.ExpectQuery(regexp.QuoteMeta("SELECT id,email,password_hash,skill,avatar_url,is_active,created_at,updated_at FROM users WHERE email=?")).
        WithArgs("a@example.com").
        WillReturnRows(userRowWithHash(1, "a@example.com", hash))

    body := `{"email":"a@example.com","password":"wrong"}`
    c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/login", body, 0)

    require.NoError(t, h.Login(c))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.Contains(t, rec.Body.String(), "invalid credentials")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginIssuesTokens(t *testing.T) {
    h, mock := newAuthTest(t)

    hash, err := utils.HashPassword("right", bcrypt.MinCost)
    require.NoError(t, err)
    mock.ExpectQuery(regexp.QuoteMeta("SELECT id,email,password_hash,skill,avatar_url,is_active,created_at,updated_at FROM users WHERE email=?")).
        WithArgs("a@example.com").
        WillReturnRows(userRowWithHash(1, "a@example.com", hash))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO refresh_tokens")).
        WithArgs(uint64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
        WillReturnResult(sqlmock.NewResult(1, 1))

    body := `{"email":"a@example.com","password":"right"}`
    c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/login", body, 0)

    require.NoError(t, h.Login(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"access"`)
    assert.Contains(t, rec.Body.String(), `"refresh"`)
    assert.Contains(t, rec.Body.String(), "INTERMEDIATE")
    assert.NoError(t, mock.ExpectationsWereMet())
}
