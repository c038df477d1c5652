package handler

import (
    "net/http"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/letsplay/court-booking/internal/repository"
)

func newScoreTest(t *testing.T) (*ScoreHandler, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewScoreHandler(
        repository.NewReservationRepo(db),
        repository.NewScoreRepo(db),
        repository.NewStatsRepo(db),
    ), mock
}

func detailRow(date string, partnerID interface{}) *sqlmock.Rows {
    d, _ := time.Parse("2006-01-02", date)
    var partnerEmail interface{}
    if partnerID != nil {
        partnerEmail = "partner@example.com"
    }
    return sqlmock.NewRows([]string{
        "id", "sport_center_id", "name", "court_id", "room_number",
        "user_main_id", "email", "skill", "user_partner_id", "up_email",
        "date", "start_time", "end_time", "comment",
    }).AddRow(5, 1, "Midtown Padel", nil, nil,
        10, "main@example.com", 2, partnerID, partnerEmail,
        d, "10:00:00", "11:00:00", nil)
}

func TestSubmitScoreBeforeMatchEnds(t *testing.T) {
    h, mock := newScoreTest(t)

    future := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
    mock.ExpectQuery("SELECT r.id, r.sport_center_id, sc.name").
        WithArgs(uint64(5)).
        WillReturnRows(detailRow(future, 20))

    c, rec := newJSONContext(t, http.MethodPost, "/v1/reservations/5/score",
        `{"main_score":3,"partner_score":1}`, 10)
    c.SetParamNames("id")
    c.SetParamValues("5")

    require.NoError(t, h.Submit(c))
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Contains(t, rec.Body.String(), "match not finished yet")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitScoreWithoutPartner(t *testing.T) {
    h, mock := newScoreTest(t)

    mock.ExpectQuery("SELECT r.id, r.sport_center_id, sc.name").
        WithArgs(uint64(5)).
        WillReturnRows(detailRow("2026-01-01", nil))

    c, rec := newJSONContext(t, http.MethodPost, "/v1/reservations/5/score",
        `{"main_score":3,"partner_score":1}`, 10)
    c.SetParamNames("id")
    c.SetParamValues("5")

    require.NoError(t, h.Submit(c))
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Contains(t, rec.Body.String(), "no partner")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmByStrangerForbidden(t *testing.T) {
    h, mock := newScoreTest(t)

    mock.ExpectQuery("SELECT r.id, r.sport_center_id, sc.name").
        WithArgs(uint64(5)).
        WillReturnRows(detailRow("2026-01-01", 20))

    c, rec := newJSONContext(t, http.MethodPost, "/v1/reservations/5/score/confirm", "", 99)
    c.SetParamNames("id")
    c.SetParamValues("5")

    require.NoError(t, h.Confirm(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmFinalFlagUpdatesStats(t *testing.T) {
    h, mock := newScoreTest(t)

    now := time.Now()
    mock.ExpectQuery("SELECT r.id, r.sport_center_id, sc.name").
        WithArgs(uint64(5)).
        WillReturnRows(detailRow("2026-01-01", 20))
    mock.ExpectBegin()
    mock.ExpectExec(regexp.QuoteMeta("UPDATE scores SET confirmed_by_partner = 1")).
        WithArgs(uint64(5)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT id, reservation_id, main_score, partner_score")).
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows([]string{
            "id", "reservation_id", "main_score", "partner_score",
            "confirmed_by_main", "confirmed_by_partner", "created_at", "updated_at",
        }).AddRow(1, 5, 3, 1, true, true, now, now))
    // Main won 3-1, so the winner upsert targets user 10.
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_stats")).
        WithArgs(uint64(10), 3, 1, 3).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_stats")).
        WithArgs(uint64(20), 1, 3, 1).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    c, rec := newJSONContext(t, http.MethodPost, "/v1/reservations/5/score/confirm", "", 20)
    c.SetParamNames("id")
    c.SetParamValues("5")

    require.NoError(t, h.Confirm(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"confirmed":true`)
    assert.NoError(t, mock.ExpectationsWereMet())
}
