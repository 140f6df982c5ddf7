package catalogstore

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"assist-server/services/assistant-api/internal/domain/catalog"
	"assist-server/services/assistant-api/internal/utils/platformerrors"
)

// ServiceRecord is the catalog row as stored in Postgres. Translations are
// kept as a JSON column keyed by locale.
type ServiceRecord struct {
	ID           int64           `gorm:"primaryKey"`
	Slug         string          `gorm:"uniqueIndex;not null"`
	Translations datatypes.JSON  `gorm:"type:jsonb;not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency     string          `gorm:"size:3;not null"`
	Active       bool            `gorm:"index;not null"`
}

// TableName keeps the table name stable regardless of naming strategy.
func (ServiceRecord) TableName() string {
	return "catalog_services"
}

// PostgresCatalog reads the service catalog from Postgres. The catalog is
// owned by another service; this adapter is strictly read-only.
type PostgresCatalog struct {
	db *gorm.DB
}

// NewPostgresCatalog creates the Postgres-backed catalog adapter.
func NewPostgresCatalog(db *gorm.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

// ListActive returns one page of active entries ordered by slug.
func (c *PostgresCatalog) ListActive(ctx context.Context, page, limit int) (catalog.Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	var total int64
	if err := c.db.WithContext(ctx).
		Model(&ServiceRecord{}).
		Where("active = ?", true).
		Count(&total).Error; err != nil {
		return catalog.Page{}, platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to count catalog entries")
	}

	var records []ServiceRecord
	if err := c.db.WithContext(ctx).
		Where("active = ?", true).
		Order("slug ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error; err != nil {
		return catalog.Page{}, platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to list catalog entries")
	}

	items := make([]catalog.Entry, 0, len(records))
	for _, record := range records {
		entry, err := record.toEntry()
		if err != nil {
			return catalog.Page{}, platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "malformed catalog record")
		}
		items = append(items, entry)
	}

	return catalog.Page{
		Items: items,
		Meta: catalog.PageMeta{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	}, nil
}

func (r ServiceRecord) toEntry() (catalog.Entry, error) {
	var translations map[string]catalog.Translation
	if err := json.Unmarshal(r.Translations, &translations); err != nil {
		return catalog.Entry{}, err
	}
	return catalog.Entry{
		Slug:         r.Slug,
		Translations: translations,
		Price:        r.Price,
		Currency:     r.Currency,
		Active:       r.Active,
	}, nil
}
