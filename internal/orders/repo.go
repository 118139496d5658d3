package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const cols = `id, product_id, product_name, buyer_email, first_name, last_name,
	contact_number, delivery_address, additional_notes, quantity,
	order_price_cents, payment_method, status, rejection_reason, created_at,
	approved_at`

func scan(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.ProductID, &o.ProductName, &o.BuyerEmail,
		&o.FirstName, &o.LastName, &o.ContactNumber, &o.DeliveryAddress,
		&o.AdditionalNotes, &o.Quantity, &o.OrderPriceCents, &o.PaymentMethod,
		&o.Status, &o.RejectionReason, &o.CreatedAt, &o.ApprovedAt)
	return o, err
}

// Create places an order. Price and name are read from the products table
// inside the transaction, never trusted from the client; the resulting
// order_price is frozen for the life of the order.
func (r *Repo) Create(ctx context.Context, in CreateInput) (Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		name       string
		priceCents int64
		minQty     int
		available  int
	)
	err = tx.QueryRow(ctx, `
		SELECT name, price_cents, minimum_order_quantity, available_quantity
		FROM products WHERE id=$1`, in.ProductID).
		Scan(&name, &priceCents, &minQty, &available)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrProductNotFound
	}
	if err != nil {
		return Order{}, err
	}

	if err := ValidateQuantity(in.Quantity, minQty, available); err != nil {
		return Order{}, err
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (id, product_id, product_name, buyer_email,
			first_name, last_name, contact_number, delivery_address,
			additional_notes, quantity, order_price_cents, payment_method, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,'pending')
		RETURNING `+cols,
		uuid.NewString(), in.ProductID, name, in.BuyerEmail,
		in.FirstName, in.LastName, in.ContactNumber, in.DeliveryAddress,
		in.AdditionalNotes, in.Quantity, PriceFor(in.Quantity, priceCents), in.PaymentMethod)
	o, err := scan(row)
	if err != nil {
		return Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Get returns the order with its full tracking log.
func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	o, err := scan(r.DB.QueryRow(ctx, `SELECT `+cols+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	byOrder, err := r.trackingFor(ctx, []string{id})
	if err != nil {
		return Order{}, err
	}
	o.Tracking = byOrder[id]
	if o.Tracking == nil {
		o.Tracking = []TrackingEntry{}
	}
	return o, nil
}

// trackingFor loads the tracking logs for a set of orders in one query.
func (r *Repo) trackingFor(ctx context.Context, ids []string) (map[string][]TrackingEntry, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT order_id, seq, status, location, note, created_at
		FROM order_tracking WHERE order_id = ANY($1) ORDER BY order_id, seq`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]TrackingEntry{}
	for rows.Next() {
		var (
			id string
			t  TrackingEntry
		)
		if err := rows.Scan(&id, &t.Seq, &t.Status, &t.Location, &t.Note, &t.Timestamp); err != nil {
			return nil, err
		}
		out[id] = append(out[id], t)
	}
	return out, rows.Err()
}

// attachTracking assigns each order its log; orders without entries get an
// empty slice so the JSON stays [].
func attachTracking(list []Order, byOrder map[string][]TrackingEntry) {
	for i := range list {
		if t := byOrder[list[i].ID]; t != nil {
			list[i].Tracking = t
		} else {
			list[i].Tracking = []TrackingEntry{}
		}
	}
}

func (r *Repo) list(ctx context.Context, where string, args ...any) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+cols+` FROM orders `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	ids := make([]string, len(out))
	for i := range out {
		ids[i] = out[i].ID
	}
	byOrder, err := r.trackingFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	attachTracking(out, byOrder)
	return out, nil
}

func (r *Repo) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `ORDER BY created_at DESC`)
}

func (r *Repo) ListByBuyer(ctx context.Context, email string) ([]Order, error) {
	return r.list(ctx, `WHERE buyer_email=$1 ORDER BY created_at DESC`, email)
}

func (r *Repo) ListPending(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `WHERE status='pending' ORDER BY created_at`)
}

// ListApproved returns everything on the production side of the lifecycle,
// delivered orders included, so the tracking queue keeps its history.
func (r *Repo) ListApproved(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `WHERE status IN ('approved','in-production','shipped','delivered')
		ORDER BY approved_at DESC NULLS LAST`)
}

// Decide applies a manager decision to a pending order. Approve stamps
// approved_at; reject stores the (mandatory) reason. Any other source state
// fails with ErrNotPending and nothing changes.
func (r *Repo) Decide(ctx context.Context, id string, decision Status, reason string) (Order, error) {
	if err := ValidateDecision(decision, reason); err != nil {
		return Order{}, err
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cur Status
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&cur)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(cur, decision) {
		return Order{}, ErrNotPending
	}

	var row pgx.Row
	if decision == StatusApproved {
		row = tx.QueryRow(ctx, `
			UPDATE orders SET status='approved', approved_at=$2 WHERE id=$1
			RETURNING `+cols, id, time.Now().UTC())
	} else {
		row = tx.QueryRow(ctx, `
			UPDATE orders SET status='rejected', rejection_reason=$2 WHERE id=$1
			RETURNING `+cols, id, reason)
	}
	o, err := scan(row)
	if err != nil {
		return Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	o.Tracking = []TrackingEntry{}
	return o, nil
}

// Cancel is buyer-initiated and only valid while the order is still pending.
func (r *Repo) Cancel(ctx context.Context, id, buyerEmail string) (Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		cur   Status
		owner string
	)
	err = tx.QueryRow(ctx, `SELECT status, buyer_email FROM orders WHERE id=$1 FOR UPDATE`, id).
		Scan(&cur, &owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	if owner != buyerEmail {
		return Order{}, ErrNotOwner
	}
	if !CanTransition(cur, StatusCancelled) {
		return Order{}, ErrNotPending
	}

	o, err := scan(tx.QueryRow(ctx, `
		UPDATE orders SET status='cancelled' WHERE id=$1 RETURNING `+cols, id))
	if err != nil {
		return Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	o.Tracking = []TrackingEntry{}
	return o, nil
}
