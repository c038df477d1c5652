package repository

import (
    "context"
    "database/sql"

    "github.com/letsplay/court-booking/internal/model"
)

// StatsRepo maintains per-user aggregates of confirmed results. Rows
// are created lazily: on first profile view and, via the upserts in
// ApplyResultTx, on first confirmed score.
type StatsRepo struct {
    db *sql.DB
}

// NewStatsRepo returns a new StatsRepo bound to the given database.
func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// GetOrCreate returns the stats row for a user, inserting a zeroed
// row if none exists yet. user_stats.user_id carries a unique key,
// so the insert is a no-op when the row is already present.
func (r *StatsRepo) GetOrCreate(ctx context.Context, userID uint64) (model.UserStats, error) {
    const ins = `INSERT INTO user_stats (user_id) VALUES (?)
                 ON DUPLICATE KEY UPDATE user_id = user_id`
    if _, err := r.db.ExecContext(ctx, ins, userID); err != nil {
        return model.UserStats{}, err
    }
    const sel = `SELECT id, user_id, games_played, games_won, games_lost,
                        sets_won, sets_lost, ranking
                 FROM user_stats WHERE user_id = ?`
    var st model.UserStats
    err := r.db.QueryRowContext(ctx, sel, userID).Scan(
        &st.ID, &st.UserID, &st.GamesPlayed, &st.GamesWon, &st.GamesLost,
        &st.SetsWon, &st.SetsLost, &st.Ranking,
    )
    if err != nil {
        return model.UserStats{}, err
    }
    return st, nil
}

// ApplyResultTx folds one confirmed result into both players'
// aggregates inside the confirming transaction. Each player's
// games_played goes up by one; the winner gains a game won, the loser
// a game lost; each side accumulates its own sets as won and the
// opponent's as lost. Ranking is recomputed as games_won*3 +
// sets_won. The caller guards this with the confirmed-transition
// check so a result is never counted twice.
func (r *StatsRepo) ApplyResultTx(ctx context.Context, tx *sql.Tx, winnerID, loserID uint64, winnerSets, loserSets int) error {
    const winQ = `INSERT INTO user_stats
                  (user_id, games_played, games_won, games_lost, sets_won, sets_lost, ranking)
                  VALUES (?, 1, 1, 0, ?, ?, 3 + ?)
                  ON DUPLICATE KEY UPDATE
                    games_played = games_played + 1,
                    games_won    = games_won + 1,
                    sets_won     = sets_won + VALUES(sets_won),
                    sets_lost    = sets_lost + VALUES(sets_lost),
                    ranking      = games_won * 3 + sets_won`
    if _, err := tx.ExecContext(ctx, winQ, winnerID, winnerSets, loserSets, winnerSets); err != nil {
        return err
    }
    const loseQ = `INSERT INTO user_stats
                   (user_id, games_played, games_won, games_lost, sets_won, sets_lost, ranking)
                   VALUES (?, 1, 0, 1, ?, ?, ?)
                   ON DUPLICATE KEY UPDATE
                     games_played = games_played + 1,
                     games_lost   = games_lost + 1,
                     sets_won     = sets_won + VALUES(sets_won),
                     sets_lost    = sets_lost + VALUES(sets_lost),
                     ranking      = games_won * 3 + sets_won`
    if _, err := tx.ExecContext(ctx, loseQ, loserID, loserSets, winnerSets, loserSets); err != nil {
        return err
    }
    return nil
}
