package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/pavilo/pavilo-billing/internal/platform/store"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeBackupSnapshot is the task type for snapshotting the stored
	// collections.
	TaskTypeBackupSnapshot = "backup:snapshot"
)

// BackupPayload scopes a snapshot run. An empty Keys list means all known
// collections.
type BackupPayload struct {
	Keys []string `json:"keys,omitempty"`
}

// NewBackupTask constructs an Asynq task.
func NewBackupTask(payload BackupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeBackupSnapshot, data), nil
}

// BackupJob copies each stored collection to a timestamped backup key.
// Snapshots share the storage backend with the live data; they are a
// point-in-time copy, not an offsite backup.
type BackupJob struct {
	Store  store.Store
	Logger *slog.Logger
	clock  func() time.Time
}

// NewBackupJob initialises the backup handler.
func NewBackupJob(st store.Store, logger *slog.Logger) *BackupJob {
	return &BackupJob{
		Store:  st,
		Logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the snapshot logic.
func (j *BackupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Store == nil {
		return errors.New("backup: handler not configured")
	}
	var payload BackupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	keys := payload.Keys
	if len(keys) == 0 {
		keys = store.Keys
	}

	stamp := j.now().Format(time.RFC3339)
	logger := j.logger().With(slog.String("stamp", stamp))
	logger.Info("starting backup snapshot", slog.Int("keys", len(keys)))

	copied := 0
	for _, key := range keys {
		value, err := j.Store.Load(ctx, key)
		if errors.Is(err, store.ErrAbsent) {
			continue
		}
		if err != nil {
			return fmt.Errorf("backup: load %s: %w", key, err)
		}
		target := fmt.Sprintf("pavilo_backup:%s:%s", key, stamp)
		if err := j.Store.Save(ctx, target, value); err != nil {
			return fmt.Errorf("backup: save %s: %w", target, err)
		}
		copied++
	}

	logger.Info("completed backup snapshot", slog.Int("copied", copied))
	return nil
}

func (j *BackupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTypeBackupSnapshot))
	}
	return slog.Default().With(slog.String("job", TaskTypeBackupSnapshot))
}

func (j *BackupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
