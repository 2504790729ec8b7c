package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// OfferService manages promotional offers. Discount range and date ordering are
// validated here, at create/update time — the price resolver trusts stored data.
type OfferService interface {
	CreateOffer(ctx context.Context, o Offer) (*Offer, error)
	GetOffer(ctx context.Context, offerID int) (*Offer, error)
	// GetOffers returns all offers, newest start date first.
	GetOffers(ctx context.Context) ([]Offer, error)
	// GetActiveOffers returns offers whose interval contains now.
	GetActiveOffers(ctx context.Context, now time.Time) ([]Offer, error)
	UpdateOffer(ctx context.Context, o Offer) error
	DeleteOffer(ctx context.Context, offerID int) error
}

type offerService struct {
	pool *pgxpool.Pool
}

// NewOfferService constructs an OfferService backed by PostgreSQL.
func NewOfferService(pool *pgxpool.Pool) OfferService {
	return &offerService{pool: pool}
}

var (
	minDiscount = decimal.NewFromInt(1)
	maxDiscount = decimal.NewFromInt(99)
)

func validateOffer(o Offer) error {
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("missing required offer field: name")
	}
	if o.DiscountPercentage.LessThan(minDiscount) || o.DiscountPercentage.GreaterThan(maxDiscount) {
		return fmt.Errorf("discount percentage must be between 1 and 99, got %s", o.DiscountPercentage)
	}
	if o.StartDate.IsZero() || o.EndDate.IsZero() {
		return fmt.Errorf("offer requires both start and end dates")
	}
	if o.EndDate.Before(o.StartDate) {
		return fmt.Errorf("offer end date %s precedes start date %s",
			o.EndDate.Format("2006-01-02"), o.StartDate.Format("2006-01-02"))
	}
	return nil
}

func emptyIfNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}

func (s *offerService) CreateOffer(ctx context.Context, o Offer) (*Offer, error) {
	if err := validateOffer(o); err != nil {
		return nil, err
	}

	var created Offer
	err := s.pool.QueryRow(ctx, `
		INSERT INTO offers (name, description, discount_percentage, start_date, end_date, product_ids, category_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, discount_percentage, start_date, end_date, product_ids, category_ids, created_at
	`, o.Name, o.Description, o.DiscountPercentage, o.StartDate, o.EndDate,
		emptyIfNil(o.ProductIDs), emptyIfNil(o.CategoryIDs)).Scan(
		&created.ID, &created.Name, &created.Description, &created.DiscountPercentage,
		&created.StartDate, &created.EndDate, &created.ProductIDs, &created.CategoryIDs, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}
	return &created, nil
}

const offerColumns = "id, name, description, discount_percentage, start_date, end_date, product_ids, category_ids, created_at"

func (s *offerService) GetOffer(ctx context.Context, offerID int) (*Offer, error) {
	var o Offer
	err := s.pool.QueryRow(ctx,
		"SELECT "+offerColumns+" FROM offers WHERE id = $1", offerID,
	).Scan(&o.ID, &o.Name, &o.Description, &o.DiscountPercentage,
		&o.StartDate, &o.EndDate, &o.ProductIDs, &o.CategoryIDs, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("offer %d not found", offerID)
		}
		return nil, fmt.Errorf("failed to fetch offer %d: %w", offerID, err)
	}
	return &o, nil
}

func (s *offerService) queryOffers(ctx context.Context, query string, args ...any) ([]Offer, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	var offers []Offer
	for rows.Next() {
		var o Offer
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.DiscountPercentage,
			&o.StartDate, &o.EndDate, &o.ProductIDs, &o.CategoryIDs, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

func (s *offerService) GetOffers(ctx context.Context) ([]Offer, error) {
	return s.queryOffers(ctx, "SELECT "+offerColumns+" FROM offers ORDER BY start_date DESC")
}

func (s *offerService) GetActiveOffers(ctx context.Context, now time.Time) ([]Offer, error) {
	return s.queryOffers(ctx,
		"SELECT "+offerColumns+" FROM offers WHERE start_date <= $1 AND end_date >= $1 ORDER BY start_date DESC",
		now)
}

func (s *offerService) UpdateOffer(ctx context.Context, o Offer) error {
	if err := validateOffer(o); err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE offers
		SET name = $1, description = $2, discount_percentage = $3, start_date = $4,
		    end_date = $5, product_ids = $6, category_ids = $7
		WHERE id = $8
	`, o.Name, o.Description, o.DiscountPercentage, o.StartDate, o.EndDate,
		emptyIfNil(o.ProductIDs), emptyIfNil(o.CategoryIDs), o.ID)
	if err != nil {
		return fmt.Errorf("failed to update offer %d: %w", o.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("offer %d not found", o.ID)
	}
	return nil
}

func (s *offerService) DeleteOffer(ctx context.Context, offerID int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM offers WHERE id = $1", offerID)
	if err != nil {
		return fmt.Errorf("failed to delete offer %d: %w", offerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("offer %d not found", offerID)
	}
	return nil
}
