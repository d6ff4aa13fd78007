// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
// They contain NO framework code, NO external dependencies - just pure business logic.
package usecases

import (
	"context"
	"fmt"

	"github.com/0xcro3dile/robobob/internal/domain/entities"
	"github.com/0xcro3dile/robobob/internal/domain/ports"
)

// IngestUseCase copies lookup entries into a writable answer source.
type IngestUseCase struct {
	writer    ports.EntryWriter
	batchSize int
}

// NewIngestUseCase creates an IngestUseCase with injected dependencies.
func NewIngestUseCase(writer ports.EntryWriter, batchSize int) *IngestUseCase {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &IngestUseCase{
		writer:    writer,
		batchSize: batchSize,
	}
}

// Ingest writes entries in source order, one batch per write, and returns how
// many entries were written. Order is preserved so a later duplicate still
// replaces an earlier one.
func (uc *IngestUseCase) Ingest(ctx context.Context, entries []entities.LookupEntry) (int, error) {
	written := 0
	for _, batch := range uc.batches(entries) {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := uc.writer.Upsert(ctx, batch); err != nil {
			return written, fmt.Errorf("writing entries %d-%d: %w", written, written+len(batch)-1, err)
		}
		written += len(batch)
	}
	return written, nil
}

// batches splits entries into consecutive slices of at most batchSize.
func (uc *IngestUseCase) batches(entries []entities.LookupEntry) [][]entities.LookupEntry {
	var out [][]entities.LookupEntry
	for start := 0; start < len(entries); start += uc.batchSize {
		end := start + uc.batchSize
		if end > len(entries) {
			end = len(entries)
		}
		out = append(out, entries[start:end])
	}
	return out
}
