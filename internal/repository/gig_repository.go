package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/models"
)

var ErrNotFound = errors.New("record not found")

// GigFilter narrows the public catalogue.
type GigFilter struct {
	Query    string
	Category string
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	Sort     string // latest | price_low | price_high
	Page     int
	Limit    int
}

// Normalize clamps paging to sane defaults.
func (f GigFilter) Normalize() GigFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	return f
}

func (f GigFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type GigRepository interface {
	Create(ctx context.Context, gig *models.Gig) error
	Update(ctx context.Context, gig *models.Gig) error
	FindByID(ctx context.Context, id uint) (*models.Gig, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.Gig, error)
	ListPublished(ctx context.Context, f GigFilter) ([]models.Gig, int64, error)
	ListAll(ctx context.Context, status models.GigStatus) ([]models.Gig, error)
	SetStatus(ctx context.Context, id uint, status models.GigStatus, note string) error
	Delete(ctx context.Context, id uint, owner uuid.UUID) error
	Categories(ctx context.Context) ([]string, error)
}

type gormGigRepository struct {
	db *gorm.DB
}

func NewGigRepository(db *gorm.DB) GigRepository {
	return &gormGigRepository{db: db}
}

func (r *gormGigRepository) Create(ctx context.Context, gig *models.Gig) error {
	return r.db.WithContext(ctx).Create(gig).Error
}

func (r *gormGigRepository) Update(ctx context.Context, gig *models.Gig) error {
	res := r.db.WithContext(ctx).
		Model(gig).
		Select("*").
		Omit("id", "created_at").
		Updates(gig)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormGigRepository) FindByID(ctx context.Context, id uint) (*models.Gig, error) {
	var gig models.Gig
	err := r.db.WithContext(ctx).First(&gig, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &gig, nil
}

func (r *gormGigRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.Gig, error) {
	var gigs []models.Gig
	err := r.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("created_at DESC").
		Find(&gigs).Error
	return gigs, err
}

func (r *gormGigRepository) ListPublished(ctx context.Context, f GigFilter) ([]models.Gig, int64, error) {
	f = f.Normalize()

	q := r.db.WithContext(ctx).
		Model(&models.Gig{}).
		Where("status = ?", models.GigStatusPublished)

	if f.Query != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Query)+"%")
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinPrice.IsPositive() {
		q = q.Where("base_price >= ?", f.MinPrice)
	}
	if f.MaxPrice.IsPositive() {
		q = q.Where("base_price <= ?", f.MaxPrice)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.Sort {
	case "price_low":
		q = q.Order("base_price ASC")
	case "price_high":
		q = q.Order("base_price DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var gigs []models.Gig
	if err := q.Limit(f.Limit).Offset(f.Offset()).Find(&gigs).Error; err != nil {
		return nil, 0, err
	}
	return gigs, total, nil
}

// ListAll returns every gig, or only those in status when it is set.
func (r *gormGigRepository) ListAll(ctx context.Context, status models.GigStatus) ([]models.Gig, error) {
	q := r.db.WithContext(ctx).Order("updated_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var gigs []models.Gig
	err := q.Find(&gigs).Error
	return gigs, err
}

func (r *gormGigRepository) SetStatus(ctx context.Context, id uint, status models.GigStatus, note string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Gig{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "review_note": note})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormGigRepository) Delete(ctx context.Context, id uint, owner uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		Delete(&models.Gig{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormGigRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.Gig{}).
		Where("status = ?", models.GigStatusPublished).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).
		Error
	return categories, err
}
