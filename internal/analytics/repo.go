// Package analytics serves the admin dashboard aggregates. Revenue counts
// every order that was not rejected or cancelled.
package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/starboy1402/garments-tracker-api/internal/orders"
)

type ProductStat struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	OrderCount   int    `json:"orderCount"`
	RevenueCents int64  `json:"totalRevenueCents"`
}

type RevenuePoint struct {
	Date       string `json:"date"` // YYYY-MM-DD
	TotalCents int64  `json:"totalCents"`
	Count      int    `json:"count"`
}

type Summary struct {
	TotalUsers        int            `json:"totalUsers"`
	TotalProducts     int            `json:"totalProducts"`
	TotalOrders       int            `json:"totalOrders"`
	TotalRevenueCents int64          `json:"totalRevenueCents"`
	UsersByRole       map[string]int `json:"usersByRole"`
	OrdersByStatus    map[string]int `json:"ordersByStatus"`
	RecentOrders      []orders.Order `json:"recentOrders"`
	TopProducts       []ProductStat  `json:"topProducts"`
	RevenueByPeriod   []RevenuePoint `json:"revenueByPeriod"`
}

type Repo struct{ DB *pgxpool.Pool }

const revenueFilter = `status NOT IN ('rejected','cancelled')`

// Summary gathers all dashboard figures; period limits the revenue series to
// the last N days.
func (r *Repo) Summary(ctx context.Context, periodDays int) (Summary, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	s := Summary{
		UsersByRole:    map[string]int{},
		OrdersByStatus: map[string]int{},
		TopProducts:    []ProductStat{},
		RevenueByPeriod: []RevenuePoint{},
	}

	err := r.DB.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(order_price_cents), 0) FROM orders WHERE `+revenueFilter+`)`).
		Scan(&s.TotalUsers, &s.TotalProducts, &s.TotalOrders, &s.TotalRevenueCents)
	if err != nil {
		return Summary{}, err
	}

	rows, err := r.DB.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return Summary{}, err
	}
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			rows.Close()
			return Summary{}, err
		}
		s.UsersByRole[k] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	rows, err = r.DB.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return Summary{}, err
	}
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			rows.Close()
			return Summary{}, err
		}
		s.OrdersByStatus[k] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	ordersRepo := &orders.Repo{DB: r.DB}
	all, err := ordersRepo.ListAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	if len(all) > 10 {
		all = all[:10]
	}
	s.RecentOrders = all

	rows, err = r.DB.Query(ctx, `
		SELECT product_id, product_name, COUNT(*), COALESCE(SUM(order_price_cents), 0)
		FROM orders WHERE `+revenueFilter+`
		GROUP BY product_id, product_name
		ORDER BY COUNT(*) DESC, SUM(order_price_cents) DESC
		LIMIT 5`)
	if err != nil {
		return Summary{}, err
	}
	for rows.Next() {
		var p ProductStat
		if err := rows.Scan(&p.ProductID, &p.Name, &p.OrderCount, &p.RevenueCents); err != nil {
			rows.Close()
			return Summary{}, err
		}
		s.TopProducts = append(s.TopProducts, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	since := time.Now().UTC().AddDate(0, 0, -periodDays)
	rows, err = r.DB.Query(ctx, `
		SELECT date_trunc('day', created_at)::date, COALESCE(SUM(order_price_cents), 0), COUNT(*)
		FROM orders
		WHERE `+revenueFilter+` AND created_at >= $1
		GROUP BY 1 ORDER BY 1`, since)
	if err != nil {
		return Summary{}, err
	}
	for rows.Next() {
		var day time.Time
		var p RevenuePoint
		if err := rows.Scan(&day, &p.TotalCents, &p.Count); err != nil {
			rows.Close()
			return Summary{}, err
		}
		p.Date = day.Format("2006-01-02")
		s.RevenueByPeriod = append(s.RevenueByPeriod, p)
	}
	rows.Close()
	return s, rows.Err()
}
