package filewatcher

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/0xcro3dile/robobob/internal/domain/ports"
)

// MonitorSource watches the lookup source at path and warns on every change.
// The lookup store is frozen after startup, so changes only take effect on
// restart. It blocks until ctx is done and then returns nil.
func MonitorSource(ctx context.Context, watcher ports.FileWatcher, path string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	events, err := watcher.Watch(ctx, filepath.Dir(path))
	if err != nil {
		return err
	}
	logger.Info("Watching questions file", zap.String("path", path))

	for ev := range events {
		logger.Warn("Questions file changed on disk; restart to apply",
			zap.String("path", ev.Path),
			zap.Stringer("operation", ev.Operation))
	}
	return nil
}
