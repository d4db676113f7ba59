package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarket-backend/internal/shared"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{ID: "1", Type: task.Type()}, nil
}

func TestEnqueue(t *testing.T) {
	rec := &recordingEnqueuer{}
	id := uuid.New()

	err := Enqueue(context.Background(), rec, shared.TypeDeleteContributorPhotos,
		shared.DeleteContributorPhotosPayload{ContributorID: id})
	require.NoError(t, err)
	require.Len(t, rec.tasks, 1)
	assert.Equal(t, shared.TypeDeleteContributorPhotos, rec.tasks[0].Type())

	var p shared.DeleteContributorPhotosPayload
	require.NoError(t, json.Unmarshal(rec.tasks[0].Payload(), &p))
	assert.Equal(t, id, p.ContributorID)
}

func TestEnqueue_Error(t *testing.T) {
	err := Enqueue(context.Background(), &recordingEnqueuer{err: errors.New("redis down")}, "x", struct{}{})
	assert.ErrorContains(t, err, "enqueue x")
}
