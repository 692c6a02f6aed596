package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the settings store uses, narrow
// enough for pgxmock injection.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	discountKey    = "discount_percent"
	pricePrefix    = "base_price:"
	maxDiscountPct = 90
)

// ErrInvalidSetting marks a rejected settings value, as opposed to
// storage trouble.
var ErrInvalidSetting = errors.New("invalid setting")

// SettingsStore persists admin-configurable settings in Postgres. It is
// the source of truth; CachedSettings layers a TTL cache on top.
type SettingsStore struct {
	pool PgxPool
}

// NewSettingsStore creates a settings store backed by a pgx pool.
func NewSettingsStore(pool PgxPool) *SettingsStore {
	if pool == nil {
		return nil
	}
	return &SettingsStore{pool: pool}
}

func (s *SettingsStore) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("catalog: read setting %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SettingsStore) set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	if _, err := s.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("catalog: write setting %s: %w", key, err)
	}
	return nil
}

// DiscountPercent returns the global discount percent, defaulting to 0.
func (s *SettingsStore) DiscountPercent(ctx context.Context) (int, error) {
	raw, found, err := s.get(ctx, discountKey)
	if err != nil || !found {
		return 0, err
	}
	pct, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("catalog: malformed discount setting %q", raw)
	}
	return pct, nil
}

// SetDiscountPercent stores the global discount percent, bounded to [0, 90].
func (s *SettingsStore) SetDiscountPercent(ctx context.Context, pct int) error {
	if pct < 0 || pct > maxDiscountPct {
		return fmt.Errorf("%w: discount percent %d out of range [0, %d]", ErrInvalidSetting, pct, maxDiscountPct)
	}
	return s.set(ctx, discountKey, strconv.Itoa(pct))
}

// BasePriceOverride returns the admin-set base price for a package, if any.
func (s *SettingsStore) BasePriceOverride(ctx context.Context, slug string) (int, bool, error) {
	raw, found, err := s.get(ctx, pricePrefix+slug)
	if err != nil || !found {
		return 0, false, err
	}
	price, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("catalog: malformed price setting %q", raw)
	}
	return price, true, nil
}

// SetBasePriceOverride stores a base-price override for a package.
func (s *SettingsStore) SetBasePriceOverride(ctx context.Context, slug string, price int) error {
	if price <= 0 {
		return fmt.Errorf("%w: base price must be positive, got %d", ErrInvalidSetting, price)
	}
	if _, ok := PackageBySlug(slug); !ok {
		return fmt.Errorf("%w: unknown package %q", ErrInvalidSetting, slug)
	}
	return s.set(ctx, pricePrefix+slug, strconv.Itoa(price))
}
