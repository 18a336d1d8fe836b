package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes the board queries rely on
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   any
		table   string
		name    string
		columns string
	}{
		// Columns are always listed per board in position order
		{&Column{}, "columns", "idx_columns_board_position", "board_id, position"},

		// Tasks are listed per column, newest first
		{&Task{}, "tasks", "idx_tasks_column_created", "column_id, created_at"},

		{&BoardMember{}, "board_members", "idx_board_members_user", "user_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
