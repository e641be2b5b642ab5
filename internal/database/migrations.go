package database

import (
	"fmt"

	"github.com/mkoga/todo-api/internal/logger"
	"github.com/mkoga/todo-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds indexes covering the list filters and ordering.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		{&models.Todo{}, "todos", "idx_todos_user_id", "user_id"},
		{&models.Todo{}, "todos", "idx_todos_completed", "completed"},
		{&models.Todo{}, "todos", "idx_todos_created_at", "created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		logger.Info("created index", "index", idx.name, "table", idx.table)
	}

	return nil
}
