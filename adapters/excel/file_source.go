package excel

import (
	"context"

	"gemdash/adapters/frame"
	"gemdash/domain/diamond"
	"gemdash/internal"
)

// FileSource loads the diamonds table from a CSV or XLSX file on disk
type FileSource struct {
	config FileConfig
	reader *DataReader
}

// NewFileSource creates a file-backed dataset source
func NewFileSource(config FileConfig, logger *internal.Logger) *FileSource {
	return &FileSource{
		config: config,
		reader: NewDataReader(config, logger),
	}
}

func (s *FileSource) Name() string {
	return "file:" + s.config.FilePath
}

func (s *FileSource) Load(ctx context.Context) (*diamond.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	table, err := s.reader.ReadData()
	if err != nil {
		return nil, err
	}
	return frame.Decode(table.Records())
}
