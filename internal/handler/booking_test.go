package handler

import (
    "net/http"
    "net/http/httptest"
    "regexp"
    "strings"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/letsplay/court-booking/internal/repository"
)

func newBookingTest(t *testing.T) (*BookingHandler, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewBookingHandler(
        repository.NewReservationRepo(db),
        repository.NewSportCenterRepo(db),
        repository.NewUserRepo(db),
        repository.NewMessageRepo(db),
        repository.NewScoreRepo(db),
    ), mock
}

func newJSONContext(t *testing.T, method, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", userID)
    return c, rec
}

func TestCreateRejectsPastDate(t *testing.T) {
    h, mock := newBookingTest(t)

    body := `{"sport_center_id":1,"date":"2020-01-01","start_time":"10:00","end_time":"11:00"}`
    c, rec := newJSONContext(t, http.MethodPost, "/v1/reservations", body, 10)

    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Contains(t, rec.Body.String(), "choose a date in the future")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsTimeOrder(t *testing.T) {
    h, mock := newBookingTest(t)

    future := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
    body := `{"sport_center_id":1,"date":"` + future + `","start_time":"12:00","end_time":"10:00"}`
    c, rec := newJSONContext(t, http.MethodPost, "/v1/reservations", body, 10)

    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Contains(t, rec.Body.String(), "start time must be before end time")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCourtOverlapConflicts(t *testing.T) {
    h, mock := newBookingTest(t)

    future := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
    now := time.Now()

    mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, address, phone, slug, created_at FROM sport_centers")).
        WithArgs(uint64(1)).
        WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "phone", "slug", "created_at"}).
            AddRow(1, "Midtown Padel", "1 Main St", "555-0100", "midtown-padel", now))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT id, sport_center_id, room_number, is_available FROM courts")).
        WithArgs(uint64(3)).
        WillReturnRows(sqlmock.NewRows([]string{"id", "sport_center_id", "room_number", "is_available"}).
            AddRow(3, 1, 2, true))
    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reservations")).
        WithArgs(uint64(3), future, "11:00:00", "10:00:00").
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
    mock.ExpectRollback()

    body := `{"sport_center_id":1,"court_id":3,"date":"` + future + `","start_time":"10:00","end_time":"11:00"}`
    c, rec := newJSONContext(t, http.MethodPost, "/v1/reservations", body, 10)

    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Contains(t, rec.Body.String(), "court already reserved")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func userRow(id uint64, email string) *sqlmock.Rows {
    now := time.Now()
    return sqlmock.NewRows([]string{
        "id", "email", "password_hash", "skill", "avatar_url",
        "is_active", "created_at", "updated_at",
    }).AddRow(id, email, "x", 2, nil, true, now, now)
}

func TestJoinNotifiesBookerInSameTransaction(t *testing.T) {
    h, mock := newBookingTest(t)

    mock.ExpectQuery(regexp.QuoteMeta("SELECT id,email,password_hash,skill,avatar_url,is_active,created_at,updated_at FROM users WHERE id=?")).
        WithArgs(uint64(20)).
        WillReturnRows(userRow(20, "joiner@example.com"))
    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta("SELECT user_main_id FROM reservations")).
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"user_main_id"}).AddRow(10))
    mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations")).
        WithArgs(uint64(20), uint64(5)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    // The booker's notification commits together with the join.
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO messages")).
        WithArgs(uint64(10), "joiner@example.com joined your reservation").
        WillReturnResult(sqlmock.NewResult(1, 1))
    mock.ExpectCommit()

    c, rec := newJSONContext(t, http.MethodPost, "/v1/reservations/5/join", "", 20)
    c.SetParamNames("id")
    c.SetParamValues("5")

    require.NoError(t, h.Join(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"user_partner_id":20`)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinFilledReservationConflicts(t *testing.T) {
    h, mock := newBookingTest(t)

    mock.ExpectQuery(regexp.QuoteMeta("SELECT id,email,password_hash,skill,avatar_url,is_active,created_at,updated_at FROM users WHERE id=?")).
        WithArgs(uint64(20)).
        WillReturnRows(userRow(20, "joiner@example.com"))
    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta("SELECT user_main_id FROM reservations")).
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"user_main_id"}).AddRow(10))
    mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations")).
        WithArgs(uint64(20), uint64(5)).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectRollback()

    c, rec := newJSONContext(t, http.MethodPost, "/v1/reservations/5/join", "", 20)
    c.SetParamNames("id")
    c.SetParamValues("5")

    require.NoError(t, h.Join(c))
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Contains(t, rec.Body.String(), "already filled")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinOwnReservationForbidden(t *testing.T) {
    h, mock := newBookingTest(t)

    mock.ExpectQuery(regexp.QuoteMeta("SELECT id,email,password_hash,skill,avatar_url,is_active,created_at,updated_at FROM users WHERE id=?")).
        WithArgs(uint64(10)).
        WillReturnRows(userRow(10, "main@example.com"))
    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta("SELECT user_main_id FROM reservations")).
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"user_main_id"}).AddRow(10))
    mock.ExpectRollback()

    c, rec := newJSONContext(t, http.MethodPost, "/v1/reservations/5/join", "", 10)
    c.SetParamNames("id")
    c.SetParamValues("5")

    require.NoError(t, h.Join(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)
    assert.Contains(t, rec.Body.String(), "cannot join your own reservation")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByStrangerForbidden(t *testing.T) {
    h, mock := newBookingTest(t)

    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta("SELECT user_main_id, user_partner_id FROM reservations")).
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"user_main_id", "user_partner_id"}).AddRow(10, 20))
    mock.ExpectRollback()

    c, rec := newJSONContext(t, http.MethodDelete, "/v1/reservations/5", "", 99)
    c.SetParamNames("id")
    c.SetParamValues("5")

    require.NoError(t, h.Delete(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}
