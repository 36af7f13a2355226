package tabular

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// ReadArrow reads an Arrow IPC stream. Every column is rendered with the
// array's string form; nulls become "".
func ReadArrow(r io.Reader) (*Table, error) {
	rdr, err := ipc.NewReader(r, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, fmt.Errorf("open arrow stream: %w", err)
	}
	defer rdr.Release()

	fields := rdr.Schema().Fields()
	t := &Table{Header: make([]string, len(fields))}
	for i, f := range fields {
		t.Header[i] = f.Name
	}

	for rdr.Next() {
		rec := rdr.Record()
		for row := 0; row < int(rec.NumRows()); row++ {
			out := make([]string, rec.NumCols())
			for col := range out {
				arr := rec.Column(col)
				if arr.IsNull(row) {
					continue
				}
				out[col] = arr.ValueStr(row)
			}
			t.Rows = append(t.Rows, out)
		}
	}
	if err := rdr.Err(); err != nil {
		return nil, fmt.Errorf("read arrow stream: %w", err)
	}
	return t, nil
}
