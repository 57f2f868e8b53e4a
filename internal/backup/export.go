package backup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/logger"
)

// BuildExport snapshots all content sections into a checksummed document.
//
// The checksum covers the canonical JSON of the data block only, never the
// metadata, so recomputing it on import is possible without stripping
// fields first.
func (m *Manager) BuildExport(ctx context.Context) (*domain.ExportDocument, error) {
	snap, err := m.content.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot content: %w", err)
	}

	dataJSON, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode data block: %w", err)
	}

	doc := &domain.ExportDocument{
		Version:    SchemaVersion,
		ExportDate: m.now().UTC(),
		ExportID:   m.newID(),
		Data:       snap,
		Metadata: domain.ExportMetadata{
			TotalItems: snap.TotalItems(),
			DataSize:   len(dataJSON),
			Checksum:   m.hasher.Sum(dataJSON),
			Algorithm:  m.hasher.Name(),
		},
	}
	return doc, nil
}

// Export returns the final export artifact as indented JSON, ready for a
// file download.
func (m *Manager) Export(ctx context.Context) ([]byte, error) {
	doc, err := m.BuildExport(ctx)
	if err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	m.log.Info("content exported",
		logger.String("export_id", doc.ExportID),
		logger.Int("total_items", doc.Metadata.TotalItems),
		logger.Int("data_size", doc.Metadata.DataSize))
	return out, nil
}
