package tidy

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/ecomstat/ecomclean/internal/model"
)

// Schema is the Arrow schema of the tidy table. No wall-clock metadata is
// attached so repeated runs produce identical files.
func Schema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "industry", Type: arrow.BinaryTypes.String},
		{Name: "year", Type: arrow.PrimitiveTypes.Int64},
		{Name: "ecommerce_value", Type: arrow.PrimitiveTypes.Float64},
		{Name: "total_value", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: "ecommerce_share_pct", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	}, nil)
}

// WriteArrow writes recs as a single record batch in Arrow IPC file format.
func WriteArrow(w io.Writer, recs []model.TidyRecord) error {
	pool := memory.NewGoAllocator()
	schema := Schema()

	b := array.NewRecordBuilder(pool, schema)
	defer b.Release()

	industry := b.Field(colIndustry).(*array.StringBuilder)
	year := b.Field(colYear).(*array.Int64Builder)
	ecom := b.Field(colEcommerce).(*array.Float64Builder)
	total := b.Field(colTotal).(*array.Float64Builder)
	share := b.Field(colShare).(*array.Float64Builder)

	for _, r := range recs {
		industry.Append(r.Industry)
		year.Append(int64(r.Year))
		ecom.Append(r.EcommerceValue)
		appendOptionalFloat64(total, r.TotalValue)
		appendOptionalFloat64(share, r.EcommerceSharePct)
	}

	rec := b.NewRecord()
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		return fmt.Errorf("creating arrow writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return fmt.Errorf("writing arrow batch: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("closing arrow writer: %w", err)
	}
	return nil
}

func appendOptionalFloat64(b *array.Float64Builder, v *float64) {
	if v != nil {
		b.Append(*v)
	} else {
		b.AppendNull()
	}
}

// ArrowSource is what ReadArrow needs from its input; *os.File and
// *bytes.Reader both qualify.
type ArrowSource interface {
	io.Reader
	io.ReaderAt
	io.Seeker
}

// ReadArrow reads every batch of an Arrow IPC file. Like ReadRecords it
// locates columns by name and tolerates absent optional columns.
func ReadArrow(src ArrowSource) ([]model.TidyRecord, error) {
	fr, err := ipc.NewFileReader(src, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, fmt.Errorf("opening arrow file: %w", err)
	}
	defer fr.Close()

	names := make([]string, 0, len(fr.Schema().Fields()))
	for _, f := range fr.Schema().Fields() {
		names = append(names, f.Name)
	}
	cols, err := mapColumns(names)
	if err != nil {
		return nil, fmt.Errorf("reading arrow schema: %w", err)
	}

	var recs []model.TidyRecord
	for i := 0; i < fr.NumRecords(); i++ {
		batch, err := fr.Record(i)
		if err != nil {
			return nil, fmt.Errorf("reading batch %d: %w", i, err)
		}
		got, err := decodeBatch(batch, cols)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", i, err)
		}
		recs = append(recs, got...)
	}
	return recs, nil
}

func decodeBatch(batch arrow.Record, cols columnMap) ([]model.TidyRecord, error) {
	industry, ok := batch.Column(cols.industry).(*array.String)
	if !ok {
		return nil, fmt.Errorf("industry column has type %s", batch.Column(cols.industry).DataType())
	}
	year, ok := batch.Column(cols.year).(*array.Int64)
	if !ok {
		return nil, fmt.Errorf("year column has type %s", batch.Column(cols.year).DataType())
	}
	ecom, ok := batch.Column(cols.ecommerce).(*array.Float64)
	if !ok {
		return nil, fmt.Errorf("ecommerce_value column has type %s", batch.Column(cols.ecommerce).DataType())
	}
	total, err := optionalColumn(batch, cols.total)
	if err != nil {
		return nil, err
	}
	share, err := optionalColumn(batch, cols.share)
	if err != nil {
		return nil, err
	}

	n := int(batch.NumRows())
	recs := make([]model.TidyRecord, 0, n)
	for j := 0; j < n; j++ {
		recs = append(recs, model.TidyRecord{
			Industry:          industry.Value(j),
			Year:              int(year.Value(j)),
			EcommerceValue:    ecom.Value(j),
			TotalValue:        optionalValue(total, j),
			EcommerceSharePct: optionalValue(share, j),
		})
	}
	return recs, nil
}

func optionalColumn(batch arrow.Record, col int) (*array.Float64, error) {
	if col < 0 {
		return nil, nil
	}
	arr, ok := batch.Column(col).(*array.Float64)
	if !ok {
		return nil, fmt.Errorf("column %s has type %s", batch.ColumnName(col), batch.Column(col).DataType())
	}
	return arr, nil
}

func optionalValue(arr *array.Float64, j int) *float64 {
	if arr == nil || arr.IsNull(j) {
		return nil
	}
	v := arr.Value(j)
	return &v
}
