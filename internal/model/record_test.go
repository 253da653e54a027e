package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTidyRecordShare(t *testing.T) {
	tests := []struct {
		name      string
		ecom      float64
		total     *float64
		wantShare *float64
	}{
		{"positive total", 25, Float(200), Float(12.5)},
		{"no total", 25, nil, nil},
		{"zero total", 25, Float(0), nil},
		{"negative total", 25, Float(-10), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewTidyRecord("Food", 2014, tt.ecom, tt.total)
			if tt.total == nil {
				assert.Nil(t, rec.TotalValue)
			} else {
				require.NotNil(t, rec.TotalValue)
				assert.Equal(t, *tt.total, *rec.TotalValue)
			}
			if tt.wantShare == nil {
				assert.Nil(t, rec.EcommerceSharePct)
				return
			}
			require.NotNil(t, rec.EcommerceSharePct)
			assert.InDelta(t, *tt.wantShare, *rec.EcommerceSharePct, 1e-9)
		})
	}
}

func TestNewTidyRecordCopiesTotal(t *testing.T) {
	total := 100.0
	rec := NewTidyRecord("Food", 2014, 10, &total)
	total = 5
	assert.Equal(t, 100.0, *rec.TotalValue)
}

func TestHeaderLabelString(t *testing.T) {
	assert.Equal(t, "total(2014)", TotalColumn(2, 2014).String())
	assert.Equal(t, "e-commerce(2015)", EcommerceColumn(5, 2015).String())
	assert.Equal(t, "ignored", Ignored(0, 0).String())
}

func TestColumnPairSides(t *testing.T) {
	p := ColumnPair{Year: 2014, TotalCol: NoColumn, EcomCol: 3}
	assert.False(t, p.HasTotal())
	assert.True(t, p.HasEcommerce())
}

func TestNewTidyRecordOverflowingShare(t *testing.T) {
	rec := NewTidyRecord("Beverage", 2015, 5, Float(1e-320))
	require.NotNil(t, rec.TotalValue)
	assert.Equal(t, 1e-320, *rec.TotalValue)
	assert.Nil(t, rec.EcommerceSharePct)
}
