package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sellerops/internal/domain"

	"github.com/jackc/pgx/v5"
)

type ShopCreateInput struct {
	ShopName  string
	BrandName *string
	ShopURL   string
	Operator  *string
	ShopType  string
	CreatedBy *string
}

type ShopPatchInput struct {
	ShopName  *string
	BrandName *string
	ShopURL   *string
	Operator  *string
	ShopType  *string
}

const shopColumns = `
	id,
	shop_name,
	brand_name,
	shop_url,
	operator,
	shop_type,
	created_by,
	created_at,
	updated_at
`

func (r *Repository) CreateShop(ctx context.Context, input ShopCreateInput) (*domain.Shop, error) {
	if input.ShopType == "" {
		input.ShopType = domain.ShopTypeOwn
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO shops (shop_name, brand_name, shop_url, operator, shop_type, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+shopColumns,
		strings.TrimSpace(input.ShopName), input.BrandName, input.ShopURL,
		input.Operator, input.ShopType, input.CreatedBy,
	)
	shop, err := scanShop(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("shop %q: %w", input.ShopName, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("insert shop: %w", err)
	}
	return shop, nil
}

func (r *Repository) GetShopByID(ctx context.Context, id int64) (*domain.Shop, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+shopColumns+" FROM shops WHERE id = $1", id)
	shop, err := scanShop(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return shop, nil
}

// ListShops returns shops ordered the way the admin screens display them:
// own shops before competitor shops, each group alphabetically.
func (r *Repository) ListShops(ctx context.Context, shopType string) ([]domain.Shop, error) {
	query := "SELECT " + shopColumns + ` FROM shops
		WHERE ($1 = '' OR shop_type = $1)
		ORDER BY shop_type, shop_name`
	rows, err := r.pool.Query(ctx, query, strings.TrimSpace(shopType))
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()

	shops := make([]domain.Shop, 0)
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		shops = append(shops, *shop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shops: %w", err)
	}
	return shops, nil
}

func (r *Repository) PatchShop(ctx context.Context, id int64, input ShopPatchInput) (*domain.Shop, error) {
	sets := make([]string, 0, 5)
	args := []any{id}
	argIndex := 2

	appendSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}
	if input.ShopName != nil {
		appendSet("shop_name", strings.TrimSpace(*input.ShopName))
	}
	if input.BrandName != nil {
		appendSet("brand_name", *input.BrandName)
	}
	if input.ShopURL != nil {
		appendSet("shop_url", *input.ShopURL)
	}
	if input.Operator != nil {
		appendSet("operator", *input.Operator)
	}
	if input.ShopType != nil {
		appendSet("shop_type", *input.ShopType)
	}
	if len(sets) == 0 {
		return r.GetShopByID(ctx, id)
	}
	sets = append(sets, "updated_at = NOW()")

	row := r.pool.QueryRow(ctx,
		"UPDATE shops SET "+strings.Join(sets, ", ")+" WHERE id = $1 RETURNING "+shopColumns,
		args...,
	)
	shop, err := scanShop(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("shop name: %w", ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("patch shop: %w", err)
	}
	return shop, nil
}

func (r *Repository) DeleteShop(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM shops WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanShop(row pgx.Row) (*domain.Shop, error) {
	var shop domain.Shop
	err := row.Scan(
		&shop.ID,
		&shop.ShopName,
		&shop.BrandName,
		&shop.ShopURL,
		&shop.Operator,
		&shop.ShopType,
		&shop.CreatedBy,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}
