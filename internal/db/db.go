package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/folio/internal/content"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options 描述数据库连接参数。
type Options struct {
	Driver string
	// Path 为 sqlite 文件路径，为空时回退到 folio.db。
	Path string
	// DSN 为 postgres 连接串。
	DSN    string
	Silent bool
}

// Open 建立数据库连接并执行自动迁移。
func Open(opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	// 唯一索引冲突统一翻译为 gorm.ErrDuplicatedKey。
	cfg := &gorm.Config{TranslateError: true}
	if opts.Silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	gdb, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driverName(opts.Driver), err)
	}

	if err := AutoMigrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return gdb, nil
}

// AutoMigrate 为所有核心模型建表。
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&User{},
		&BlogCategory{},
		&GalleryCategory{},
		&BlogPost{},
		&GalleryItem{},
	)
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CategoryTable returns the category table of a content family.
func CategoryTable(family content.Family) string {
	if family == content.FamilyGallery {
		return GalleryCategory{}.TableName()
	}
	return BlogCategory{}.TableName()
}

// ContentTable returns the table holding records that reference a family's categories.
func ContentTable(family content.Family) string {
	if family == content.FamilyGallery {
		return GalleryItem{}.TableName()
	}
	return BlogPost{}.TableName()
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch driverName(opts.Driver) {
	case DriverSQLite:
		path := strings.TrimSpace(opts.Path)
		if path == "" {
			path = "folio.db"
		}
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		return sqlite.Open(path), nil
	case DriverPostgres:
		dsn := strings.TrimSpace(opts.DSN)
		if dsn == "" {
			return nil, errors.New("postgres driver requires DATABASE_URL")
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

func driverName(driver string) string {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		return DriverSQLite
	}
	return driver
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") || path == ":memory:" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
