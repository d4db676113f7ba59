package main

import (
	"github.com/hibiken/asynq"

	bookJob "bookmarket-backend/internal/domains/book/job"
	contributorJob "bookmarket-backend/internal/domains/contributor/job"
	"bookmarket-backend/internal/shared"
	"bookmarket-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Storage cleanup
	deleteContributorPhotos *contributorJob.DeletePhotosHandler

	// Maintenance handlers
	reconcileAverageCost *bookJob.ReconcileAverageCostHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		deleteContributorPhotos: contributorJob.NewDeletePhotosHandler(c.Storage),
		reconcileAverageCost:    bookJob.NewReconcileAverageCostHandler(c.AverageCost, c.ContributorRepo),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeDeleteContributorPhotos, h.deleteContributorPhotos.ProcessTask)
	mux.HandleFunc(shared.TypeReconcileAverageCost, h.reconcileAverageCost.ProcessTask)
}
