package outcomes

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// TableWriter dumps ranked outcome Records to a Parquet file for downstream
// analytical use. The in-memory Table remains the queried structure; this is
// a one-shot export, not a store.
type TableWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[Record]
	count  int
}

// NewTableWriter creates a Parquet writer at filename.
func NewTableWriter(filename string) (*TableWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[Record](file,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.CreatedBy("hospitalrank", "1.0", ""),
	)

	return &TableWriter{
		file:   file,
		writer: writer,
	}, nil
}

// Write writes a batch of records.
func (w *TableWriter) Write(records []Record) (int, error) {
	n, err := w.writer.Write(records)
	w.count += n
	if err != nil {
		return n, fmt.Errorf("write parquet rows: %w", err)
	}
	return n, nil
}

// Close flushes the final row group and closes the file.
func (w *TableWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}

// Count returns the total number of records written.
func (w *TableWriter) Count() int {
	return w.count
}
