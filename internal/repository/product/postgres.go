package product

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"digitalshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultPageSize = 8
	maxPageSize     = 50
)

// AllCategories is the pseudo-category that disables the category filter.
const AllCategories = "All Products"

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, title, COALESCE(description, ''), price_cents, category, COALESCE(image, ''), rating, reviews, featured, COALESCE(download_url, ''), features, created_at`

func (r *postgresRepo) List(ctx context.Context, params ListParams) (*Page, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	key, desc := sortOrder(params.Sort)

	var where []string
	var args []interface{}
	if params.Category != "" && params.Category != AllCategories {
		args = append(args, params.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if q := strings.TrimSpace(params.Query); q != "" {
		args = append(args, "%"+q+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if params.Cursor != "" {
		sortArg, lastID, err := decodeCursor(params.Cursor, params.Sort)
		if err != nil {
			return nil, err
		}
		op := ">"
		if desc {
			op = "<"
		}
		args = append(args, sortArg, lastID)
		where = append(where, fmt.Sprintf("(%s, id::text) %s ($%d, $%d)", key, op, len(args)-1, len(args)))
	}

	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	query := fmt.Sprintf("SELECT %s FROM products", productColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id::text %s LIMIT %d", key, dir, dir, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Printf("product repo: list sort=%s category=%q error=%v", params.Sort, params.Category, err)
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.PriceCents, &p.Category, &p.Image, &p.Rating, &p.Reviews, &p.Featured, &p.DownloadURL, &p.Features, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	page := &Page{}
	if len(products) > limit {
		products = products[:limit]
		last := products[limit-1]
		page.NextCursor = encodeCursor(last, params.Sort)
	}
	page.Products = products
	return page, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)
	var p domain.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title, &p.Description, &p.PriceCents, &p.Category, &p.Image, &p.Rating, &p.Reviews, &p.Featured, &p.DownloadURL, &p.Features, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, title, description, price_cents, category, image, rating, reviews, featured, download_url, features)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7, $8, $9, NULLIF($10, ''), $11)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    category = EXCLUDED.category,
    image = EXCLUDED.image,
    rating = EXCLUDED.rating,
    reviews = EXCLUDED.reviews,
    featured = EXCLUDED.featured,
    download_url = EXCLUDED.download_url,
    features = EXCLUDED.features
RETURNING id::text, created_at
`
	out := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Title,
		product.Description,
		product.PriceCents,
		product.Category,
		product.Image,
		product.Rating,
		product.Reviews,
		product.Featured,
		product.DownloadURL,
		product.Features,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert title=%q error=%v", product.Title, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted id=%s title=%q", out.ID, out.Title)
	return &out, nil
}

// sortOrder maps a sort name to its key column and direction. Unknown sorts
// fall back to featured-first, matching the storefront default.
func sortOrder(sort string) (key string, desc bool) {
	switch sort {
	case SortPriceLow:
		return "price_cents", false
	case SortPriceHigh:
		return "price_cents", true
	case SortRating:
		return "rating", true
	default:
		return "featured", true
	}
}

// Cursors encode the sort value and id of the last row of a page, so the
// next page resumes strictly after it regardless of inserts elsewhere.
func encodeCursor(last domain.Product, sort string) string {
	var val string
	switch sort {
	case SortPriceLow, SortPriceHigh:
		val = strconv.FormatInt(last.PriceCents, 10)
	case SortRating:
		val = strconv.FormatFloat(last.Rating, 'f', -1, 64)
	default:
		val = strconv.FormatBool(last.Featured)
	}
	return base64.RawURLEncoding.EncodeToString([]byte(val + "|" + last.ID))
}

func decodeCursor(cursor, sort string) (sortArg interface{}, lastID string, err error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, "", fmt.Errorf("invalid cursor: %w", err)
	}
	val, id, ok := strings.Cut(string(raw), "|")
	if !ok || id == "" {
		return nil, "", errors.New("invalid cursor")
	}
	switch sort {
	case SortPriceLow, SortPriceHigh:
		cents, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", err)
		}
		return cents, id, nil
	case SortRating:
		rating, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", err)
		}
		return rating, id, nil
	default:
		featured, err := strconv.ParseBool(val)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", err)
		}
		return featured, id, nil
	}
}
