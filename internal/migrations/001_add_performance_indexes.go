package migrations

import (
	"gorm.io/gorm"
)

// Migration001AddPerformanceIndexes adds composite indexes for hot-path
// queries that the single-column tag indexes do not cover:
// 1. Conversation history paging (conversation_id, created_at)
// 2. Unread notification counting (user_id, is_read)
// 3. Follower list lookups (followee_id)
//
// All indexes are idempotent (IF NOT EXISTS) for safe re-runs.
func Migration001AddPerformanceIndexes() Migration {
	return Migration{
		ID:   "001_add_performance_indexes",
		Name: "Add performance indexes for hot-path queries",
		Up: func(db *gorm.DB) error {
			// Optimizes: WHERE conversation_id = ? ORDER BY created_at
			idx1 := `
				CREATE INDEX IF NOT EXISTS idx_messages_conversation_created
				ON messages (conversation_id, created_at)
			`
			if err := db.Exec(idx1).Error; err != nil {
				return err
			}

			// Optimizes: WHERE user_id = ? AND is_read = false
			idx2 := `
				CREATE INDEX IF NOT EXISTS idx_notifications_user_unread
				ON notifications (user_id, is_read)
			`
			if err := db.Exec(idx2).Error; err != nil {
				return err
			}

			// Optimizes: WHERE followee_id = ? (follower lists)
			idx3 := `
				CREATE INDEX IF NOT EXISTS idx_user_follows_followee
				ON user_follows (followee_id)
			`
			return db.Exec(idx3).Error
		},
		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP INDEX IF EXISTS idx_user_follows_followee`).Error; err != nil {
				return err
			}
			if err := db.Exec(`DROP INDEX IF EXISTS idx_notifications_user_unread`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP INDEX IF EXISTS idx_messages_conversation_created`).Error
		},
	}
}
