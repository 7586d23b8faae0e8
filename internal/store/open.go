package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"shorturl-platform/internal/config"
	"shorturl-platform/pkg/database"
)

// Open 按配置选择介质并创建存储
func Open(cfg *config.Config) (*Store, error) {
	const op = "store.Open"

	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Store.Driver {
	case config.DriverFile:
		medium, err := NewFileMedium(cfg.Store.DataDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return New(medium), nil
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Store.SQLitePath), 0o755); err != nil {
			return nil, unavailable(op, err)
		}
		db, err = database.InitSQLite(cfg.Store.SQLitePath)
	case config.DriverMySQL:
		db, err = database.InitMySQL(database.MySQLOptions{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
			Charset:  cfg.Database.Charset,
		})
	default:
		return nil, fmt.Errorf("%s: 未知的存储驱动 %q", op, cfg.Store.Driver)
	}
	if err != nil {
		return nil, unavailable(op, err)
	}

	medium, err := NewGormMedium(db)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return New(medium), nil
}
