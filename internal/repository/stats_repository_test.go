package repository

import (
    "context"
    "regexp"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestStatsGetOrCreate(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewStatsRepo(db)

    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_stats")).
        WithArgs(uint64(7)).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, games_played")).
        WithArgs(uint64(7)).
        WillReturnRows(sqlmock.NewRows([]string{
            "id", "user_id", "games_played", "games_won", "games_lost",
            "sets_won", "sets_lost", "ranking",
        }).AddRow(1, 7, 4, 3, 1, 9, 4, 18))

    st, err := repo.GetOrCreate(context.Background(), 7)
    require.NoError(t, err)
    assert.Equal(t, uint64(7), st.UserID)
    assert.Equal(t, 4, st.GamesPlayed)
    assert.Equal(t, 18, st.Ranking)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyResultTxUpdatesBothPlayers(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewStatsRepo(db)

    mock.ExpectBegin()
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_stats")).
        WithArgs(uint64(10), 3, 1, 3).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_stats")).
        WithArgs(uint64(20), 1, 3, 1).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    tx, err := db.Begin()
    require.NoError(t, err)
    require.NoError(t, repo.ApplyResultTx(context.Background(), tx, 10, 20, 3, 1))
    require.NoError(t, tx.Commit())
    assert.NoError(t, mock.ExpectationsWereMet())
}
