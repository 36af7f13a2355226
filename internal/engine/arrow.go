package engine

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// MatrixRecord converts m to an Arrow record: the key column as utf8 then
// one float64 column per label. The caller releases the record.
func MatrixRecord(mem memory.Allocator, m *Matrix) arrow.Record {
	fields := make([]arrow.Field, 0, m.NumCols()+1)
	fields = append(fields, arrow.Field{Name: m.KeyColumn, Type: arrow.BinaryTypes.String})
	for _, label := range m.Labels {
		fields = append(fields, arrow.Field{Name: label, Type: arrow.PrimitiveTypes.Float64})
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	b.Field(0).(*array.StringBuilder).AppendValues(m.Keys, nil)
	for j, col := range m.Values {
		b.Field(j+1).(*array.Float64Builder).AppendValues(col, nil)
	}
	return b.NewRecord()
}

// WriteMatrixIPC streams m to w in the Arrow IPC stream format.
func WriteMatrixIPC(w io.Writer, m *Matrix) error {
	mem := memory.NewGoAllocator()
	rec := MatrixRecord(mem, m)
	defer rec.Release()

	wr := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err := wr.Write(rec); err != nil {
		wr.Close() // nolint: errcheck
		return fmt.Errorf("write arrow record: %w", err)
	}
	if err := wr.Close(); err != nil {
		return fmt.Errorf("close arrow stream: %w", err)
	}
	return nil
}
