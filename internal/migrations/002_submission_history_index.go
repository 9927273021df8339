package migrations

import "gorm.io/gorm"

// Migration002SubmissionHistoryIndex serves per-user history:
// WHERE proof_id = ? AND user_name = ? ORDER BY created_at DESC
func Migration002SubmissionHistoryIndex() Migration {
	return Migration{
		ID:        "002_submission_history_index",
		Name:      "Index submissions by proof, user and time",
		DependsOn: []string{"001_duel_lookup_index"},
		Up: func(db *gorm.DB) error {
			return createIndex(db, "submissions", "idx_submissions_history", "proof_id", "user_name", "created_at")
		},
	}
}
