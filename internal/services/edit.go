package services

import (
	"context"
	"errors"
	"time"

	"simple-image-editor/internal/logger"
	"simple-image-editor/internal/models"
)

// EditService applies edit operations to the session and undoes them
type EditService struct {
	session *models.EditSession
	logger  logger.Logger
}

// NewEditService creates a new edit service
func NewEditService(session *models.EditSession, log logger.Logger) *EditService {
	return &EditService{
		session: session,
		logger:  log,
	}
}

// Apply runs op against the current image
func (es *EditService) Apply(ctx context.Context, op models.Operation) (*models.ImageData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	startTime := time.Now()

	result, err := es.session.Apply(op)
	if err != nil {
		return nil, err
	}

	es.logger.Info("EditService", "operation applied", map[string]interface{}{
		"operation":    op.Name(),
		"width":        result.Width,
		"height":       result.Height,
		"history_size": es.session.HistoryLen(),
		"duration_ms":  time.Since(startTime).Milliseconds(),
	})

	return result, nil
}

// Undo restores the previous image. An empty history yields
// models.ErrEmptyHistory with the current image unchanged.
func (es *EditService) Undo(ctx context.Context) (*models.ImageData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	result, err := es.session.Undo()
	if errors.Is(err, models.ErrEmptyHistory) {
		es.logger.Debug("EditService", "nothing to undo", nil)
		return result, err
	}
	if err != nil {
		return nil, err
	}

	es.logger.Info("EditService", "operation undone", map[string]interface{}{
		"width":        result.Width,
		"height":       result.Height,
		"history_size": es.session.HistoryLen(),
	})

	return result, nil
}

// HistoryLen returns the number of undoable edits
func (es *EditService) HistoryLen() int {
	return es.session.HistoryLen()
}
