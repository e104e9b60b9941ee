package services

import (
	"github.com/prismhq/prism/internal/models"
	"github.com/prismhq/prism/pkg/logger"
	"gorm.io/gorm"
)

// UpdateFeedLimit caps how many activity entries a read returns.
const UpdateFeedLimit = 20

// ActivityService appends to and reads a workspace's activity feed. Entries
// are immutable; only a workspace cascade removes them.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record appends one entry outside any transaction. Failures are logged, not
// propagated; a mutation never fails because its feed entry did.
func (s *ActivityService) Record(workspaceID uint, message string) {
	if err := s.RecordIn(s.db, workspaceID, message); err != nil {
		logger.Warn().Err(err).Uint("workspace_id", workspaceID).Msg("failed to record activity")
	}
}

// RecordIn appends one entry using the given handle, so callers can make the
// write part of an enclosing transaction.
func (s *ActivityService) RecordIn(tx *gorm.DB, workspaceID uint, message string) error {
	update := models.Update{
		WorkspaceID: workspaceID,
		Message:     message,
	}
	return tx.Create(&update).Error
}

// List returns the newest entries first, capped at UpdateFeedLimit.
func (s *ActivityService) List(workspaceID uint) ([]models.Update, error) {
	var updates []models.Update
	err := s.db.Where("workspace_id = ?", workspaceID).
		Order("created DESC").
		Limit(UpdateFeedLimit).
		Find(&updates).Error
	if err != nil {
		return nil, err
	}
	return updates, nil
}
