package taskqueue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	redisc "github.com/regwatch/core/internal/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) *Service {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewService(redisc.Wrap(rdb))
}

func TestEnqueueAndGet(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	task, err := svc.Enqueue(ctx, "regulation:process", map[string]string{"regulation_id": "abc"}, "", "")
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	assert.Equal(t, TaskPending, task.Status)

	got, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "regulation:process", got.Type)
	assert.JSONEq(t, `{"regulation_id":"abc"}`, string(got.Payload))
}

func TestGetMissingReturnsNil(t *testing.T) {
	svc := setupService(t)

	got, err := svc.GetByID(context.Background(), "no-such-task")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEnqueueDedup(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	first, err := svc.Enqueue(ctx, "regulation:process", nil, "process:abc", "abc")
	require.NoError(t, err)

	second, err := svc.Enqueue(ctx, "regulation:process", nil, "process:abc", "abc")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Terminal status releases the dedup slot.
	require.NoError(t, svc.UpdateStatus(ctx, first.ID, TaskCompleted, nil, ""))
	third, err := svc.Enqueue(ctx, "regulation:process", nil, "process:abc", "abc")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestUpdateStatus(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	task, err := svc.Enqueue(ctx, "regulation:process", nil, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, task.ID, TaskFailed, nil, "extraction failed"))

	got, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, TaskFailed, got.Status)
	assert.Equal(t, "extraction failed", got.Error)

	assert.Error(t, svc.UpdateStatus(ctx, "no-such-task", TaskCompleted, nil, ""))
}

func TestListFiltersAndPaginates(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	a, err := svc.Enqueue(ctx, "regulation:process", nil, "", "")
	require.NoError(t, err)
	_, err = svc.Enqueue(ctx, "monitor:poll", nil, "", "")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(ctx, a.ID, TaskCompleted, nil, ""))

	all, total, err := svc.List(ctx, 1, 10, nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	typ := "monitor:poll"
	byType, total, err := svc.List(ctx, 1, 10, &typ, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byType, 1)
	assert.Equal(t, "monitor:poll", byType[0].Type)

	st := TaskCompleted
	byStatus, _, err := svc.List(ctx, 1, 10, nil, &st)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, a.ID, byStatus[0].ID)

	empty, total, err := svc.List(ctx, 5, 10, nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Empty(t, empty)
}

func TestCancelOnlyPending(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	task, err := svc.Enqueue(ctx, "regulation:process", nil, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, task.ID))
	got, _ := svc.GetByID(ctx, task.ID)
	assert.Equal(t, TaskCancelled, got.Status)

	assert.Error(t, svc.Cancel(ctx, task.ID))
}

func TestDeleteCompleted(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	done, err := svc.Enqueue(ctx, "regulation:process", nil, "", "")
	require.NoError(t, err)
	pending, err := svc.Enqueue(ctx, "regulation:process", nil, "", "")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(ctx, done.ID, TaskCompleted, nil, ""))

	cutoff := time.Now().Add(time.Hour).UnixMilli()
	require.NoError(t, svc.DeleteCompleted(ctx, cutoff))

	got, err := svc.GetByID(ctx, done.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	kept, err := svc.GetByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
