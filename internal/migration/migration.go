package migration

import (
	"fmt"

	"gorm.io/gorm"

	"interno-chat/internal/model"
)

type columnAddition struct {
	model  any
	table  string
	column string
	after  string
	index  string
}

var conversationColumns = []columnAddition{
	{
		model:  &model.Message{},
		table:  "messages",
		column: "conversation_id",
		after:  "sql_dialect",
		index:  "idx_messages_conversation_id",
	},
	{
		model:  &model.FavoriteQuestion{},
		table:  "favorite_questions",
		column: "conversation_id",
		after:  "last_used_at",
		index:  "idx_favorite_questions_conversation_id",
	},
}

// Models lists every table owned by the service, in creation order.
func Models() []any {
	return []any{
		&model.User{},
		&model.Chat{},
		&model.Message{},
		&model.FavoriteQuestion{},
		&model.MessageRating{},
	}
}

// Apply brings an existing or empty database up to the current schema.
// Legacy tables get their conversation_id column first so that AutoMigrate
// never appends it at the end of the table.
func Apply(db *gorm.DB) ([]string, error) {
	applied, err := AddConversationID(db)
	if err != nil {
		return applied, err
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return applied, fmt.Errorf("auto migrate tables failed: %w", err)
	}
	return applied, nil
}

// AddConversationID adds the nullable conversation_id column and its index to
// messages and favorite_questions. Tables that do not exist yet are skipped,
// and a column or index that is already present is left alone, so running it
// twice is a no-op. Existing rows keep NULL.
func AddConversationID(db *gorm.DB) ([]string, error) {
	migrator := db.Migrator()
	var applied []string

	for _, c := range conversationColumns {
		if !migrator.HasTable(c.table) {
			continue
		}

		if !migrator.HasColumn(c.model, c.column) {
			if err := addColumn(db, c); err != nil {
				return applied, err
			}
			applied = append(applied, fmt.Sprintf("add column %s.%s", c.table, c.column))
		}

		if !migrator.HasIndex(c.model, c.index) {
			if err := migrator.CreateIndex(c.model, c.index); err != nil {
				return applied, fmt.Errorf("create index %s failed: %w", c.index, err)
			}
			applied = append(applied, fmt.Sprintf("create index %s", c.index))
		}
	}
	return applied, nil
}

func addColumn(db *gorm.DB, c columnAddition) error {
	migrator := db.Migrator()

	// MySQL can place the column; the generic migrator always appends.
	if db.Dialector.Name() == "mysql" && migrator.HasColumn(c.model, c.after) {
		stmt := fmt.Sprintf("ALTER TABLE `%s` ADD COLUMN `%s` VARCHAR(36) NULL AFTER `%s`", c.table, c.column, c.after)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add column %s.%s failed: %w", c.table, c.column, err)
		}
		return nil
	}

	if err := migrator.AddColumn(c.model, c.column); err != nil {
		return fmt.Errorf("add column %s.%s failed: %w", c.table, c.column, err)
	}
	return nil
}
