package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookmarket-backend/internal/domains/contributor/model"
	"bookmarket-backend/internal/shared"
)

// PhotoRemover is satisfied by *storage.MinIOStorage.
type PhotoRemover interface {
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

// DeletePhotosHandler xóa toàn bộ ảnh của contributor sau khi contributor bị xóa
type DeletePhotosHandler struct {
	storage PhotoRemover
}

func NewDeletePhotosHandler(storage PhotoRemover) *DeletePhotosHandler {
	return &DeletePhotosHandler{storage: storage}
}

// ProcessTask xóa folder contributors/<id>/ trên MinIO
func (h *DeletePhotosHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeleteContributorPhotosPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteContributorPhotos payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	prefix := model.PhotoPrefix(payload.ContributorID)
	removed, err := h.storage.DeleteByPrefix(ctx, prefix)
	if err != nil {
		log.Error().
			Err(err).
			Str("contributor_id", payload.ContributorID.String()).
			Msg("Failed to delete contributor photos")
		return fmt.Errorf("delete photos: %w", err)
	}

	log.Info().
		Str("contributor_id", payload.ContributorID.String()).
		Int("objects_removed", removed).
		Msg("Contributor photos deleted")
	return nil
}
