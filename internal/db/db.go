package db

import (
	"context"

	"github.com/mnuddindev/routinely/pkg/logger"
	"github.com/mnuddindev/routinely/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type DBOptions func(*gorm.DB) error

// Postgres returns the production dialector for dsn.
func Postgres(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

// NewDB opens a connection through dialector, applies opts and migrates models.
// Driver errors are translated so unique violations surface as gorm.ErrDuplicatedKey.
func NewDB(ctx context.Context, dialector gorm.Dialector, models []interface{}, opts ...DBOptions) (*gorm.DB, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "DB initialization canceled")
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, utils.NewError(utils.ErrInternalServerError.Code, "Failed to connect to Database", err.Error())
	}

	for _, opt := range opts {
		if err := opt(db); err != nil {
			return nil, utils.NewError(utils.ErrInternalServerError.Code, "Failed to apply DB Options", err.Error())
		}
	}

	select {
	case <-ctx.Done():
		return nil, utils.WrapError(ctx.Err(), utils.ErrInternalServerError.Code, "db migration canceled")
	default:
	}

	if len(models) > 0 {
		if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
			return nil, utils.NewError(utils.ErrInternalServerError.Code, "Failed to Migrate models", err.Error())
		}
	}

	return db, nil
}

// CloseDB closes the pool behind db.
func CloseDB(db *gorm.DB, log *logger.Logger) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Error(context.Background()).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to get DB handle for closing")
		return utils.NewError(utils.ErrInternalServerError.Code, "Failed to close database", err.Error())
	}

	if err := sqlDB.Close(); err != nil {
		log.Error(context.Background()).WithMeta(utils.Map{"error": err.Error()}).Logs("Database close failed")
		return utils.NewError(utils.ErrInternalServerError.Code, "Failed to close database", err.Error())
	}
	log.Info(context.Background()).Logs("Database connection closed successfully")
	return nil
}
