package catalogstore

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"resty.dev/v3"

	"assist-server/services/assistant-api/internal/config"
	"assist-server/services/assistant-api/internal/domain/catalog"
	"assist-server/services/assistant-api/internal/utils/platformerrors"
)

const httpCatalogTimeout = 10 * time.Second

// New selects the catalog source named in configuration.
func New(cfg *config.Config, log zerolog.Logger) (catalog.Catalog, error) {
	switch cfg.CatalogSource {
	case config.CatalogStatic:
		return NewStaticCatalog(nil), nil
	case config.CatalogHTTP:
		client := resty.New().SetTimeout(httpCatalogTimeout)
		return NewHTTPCatalog(client, cfg.CatalogBaseURL, cfg.CatalogServiceKey, log), nil
	case config.CatalogPostgres:
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, platformerrors.AsError(context.Background(), platformerrors.LayerInfrastructure,
				err, "failed to connect to catalog database")
		}
		return NewPostgresCatalog(db), nil
	default:
		return nil, platformerrors.NewError(context.Background(), platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeConfiguration,
			fmt.Sprintf("unknown catalog source %q", cfg.CatalogSource), nil, "")
	}
}
