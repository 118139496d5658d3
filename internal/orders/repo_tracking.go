package orders

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// AppendTracking adds one production-status record to an approved order.
// The log is append-only: rows are only ever inserted, seq strictly
// increases, and the server assigns the timestamp. Known labels mirror
// forward onto the order status; the status never moves backwards. The
// buyer email rides back on the result so the caller can publish and cache
// from the same locked read.
func (r *Repo) AppendTracking(ctx context.Context, orderID string, in TrackingInput) (TrackingResult, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return TrackingResult{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		cur   Status
		buyer string
	)
	err = tx.QueryRow(ctx, `SELECT status, buyer_email FROM orders WHERE id=$1 FOR UPDATE`, orderID).
		Scan(&cur, &buyer)
	if errors.Is(err, pgx.ErrNoRows) {
		return TrackingResult{}, ErrNotFound
	}
	if err != nil {
		return TrackingResult{}, err
	}

	switch cur {
	case StatusApproved, StatusInProduction, StatusShipped, StatusDelivered:
	default:
		return TrackingResult{}, ErrNotApproved
	}

	var lastSeq int
	err = tx.QueryRow(ctx, `SELECT COALESCE(MAX(seq), 0) FROM order_tracking WHERE order_id=$1`, orderID).
		Scan(&lastSeq)
	if err != nil {
		return TrackingResult{}, err
	}

	entry := NextTrackingEntry(lastSeq, in, time.Now())
	if _, err := tx.Exec(ctx, `
		INSERT INTO order_tracking (order_id, seq, status, location, note, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		orderID, entry.Seq, entry.Status, entry.Location, entry.Note, entry.Timestamp); err != nil {
		return TrackingResult{}, err
	}

	if next := MirrorStatus(cur, in.Status); next != cur {
		if _, err := tx.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, orderID, next); err != nil {
			return TrackingResult{}, err
		}
		cur = next
	}

	if err := tx.Commit(ctx); err != nil {
		return TrackingResult{}, err
	}
	return TrackingResult{Entry: entry, Status: cur, BuyerEmail: buyer}, nil
}
