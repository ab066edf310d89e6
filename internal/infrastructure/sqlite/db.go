// Package sqlite implementa los puertos de persistencia del catálogo sobre
// gorm + SQLite puro Go. Se usa para ejecuciones locales (DB_DRIVER=sqlite) y
// en las pruebas de contrato del almacenamiento.
package sqlite

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MemoryPath base de datos en memoria (una por conexión abierta con Open).
const MemoryPath = "file::memory:"

// Open abre la base de datos, activa las foreign keys y aplica AutoMigrate.
// El pool se limita a una conexión: SQLite serializa escrituras y una base en memoria
// solo existe dentro de su conexión.
func Open(path string, debug bool) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if debug {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(sqlite.Open(withForeignKeys(path)), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Migrate crea o actualiza las tablas categories, suppliers y products.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&categoryRow{}, &supplierRow{}, &productRow{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return backfillSearch(db)
}

// backfillSearch completa search_* en filas creadas antes de que existieran esas columnas.
// name nunca está vacío, así que search_name = '' identifica las filas pendientes.
func backfillSearch(db *gorm.DB) error {
	var rows []productRow
	err := db.Model(&productRow{}).Where("search_name = ? AND name <> ?", "", "").
		FindInBatches(&rows, 500, func(_ *gorm.DB, _ int) error {
			for i := range rows {
				rows[i].fillSearch()
				err := db.Model(&productRow{}).Where("id = ?", rows[i].ID).Updates(map[string]any{
					"search_name":        rows[i].SearchName,
					"search_sku":         rows[i].SearchSKU,
					"search_description": rows[i].SearchDescription,
				}).Error
				if err != nil {
					return err
				}
			}
			return nil
		}).Error
	if err != nil {
		return fmt.Errorf("backfill search columns: %w", err)
	}
	return nil
}

// Close cierra la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func withForeignKeys(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}
