package uploadscmd

import (
	"bytes"
	"context"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/snakefangox/knowbase/internal/archive"
	"github.com/snakefangox/knowbase/internal/commands"
	"github.com/snakefangox/knowbase/internal/logging"
	"github.com/snakefangox/knowbase/pkg/interfaces"
)

const importArchiveOperation = "uploads.import_archive"

var _ command.Commander[ImportArchiveCommand] = (*ImportArchiveHandler)(nil)

// ImportArchiveHandler orchestrates archive imports via the shared command
// handler foundation. Entries that fail to decode are skipped and logged;
// one bad file never aborts the batch.
type ImportArchiveHandler struct {
	inner *commands.Handler[ImportArchiveCommand]
}

// NewImportArchiveHandler creates a handler bound to the supplied page service.
func NewImportArchiveHandler(service interfaces.PageService, logger interfaces.Logger, opts ...commands.HandlerOption[ImportArchiveCommand]) *ImportArchiveHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportArchiveCommand) error {
		batchID := uuid.New().String()
		batchLogger := logging.WithFields(baseLogger, map[string]any{
			"batch_id": batchID,
			"filename": msg.Filename,
		})

		reader := bytes.NewReader(msg.Archive)
		entries, skipped, err := archive.ExtractMarkdown(reader, reader.Size())
		if err != nil {
			return err
		}
		for _, s := range skipped {
			batchLogger.Warn("uploads.import_archive.entry_skipped", "path", s.Path, "error", s.Err)
		}

		stored := 0
		for _, entry := range entries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if _, err := service.Assemble(ctx, entry.Path, entry.Source); err != nil {
				return err
			}
			stored++
		}

		batchLogger.Info("uploads.import_archive.completed",
			"stored_count", stored,
			"skipped_count", len(skipped),
		)
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportArchiveCommand]{
		commands.WithLogger[ImportArchiveCommand](baseLogger),
		commands.WithOperation[ImportArchiveCommand](importArchiveOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportArchiveHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *ImportArchiveHandler) Execute(ctx context.Context, msg ImportArchiveCommand) error {
	return h.inner.Execute(ctx, msg)
}
