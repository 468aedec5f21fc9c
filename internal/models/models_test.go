package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestMoneyColumnsShareOneType(t *testing.T) {
	cache := &sync.Map{}
	for _, tc := range []struct {
		model  any
		column string
	}{
		{&Product{}, "price"},
		{&Order{}, "total_amount"},
	} {
		s, err := schema.Parse(tc.model, cache, schema.NamingStrategy{})
		require.NoError(t, err)
		f := s.LookUpField(tc.column)
		require.NotNil(t, f, tc.column)
		assert.Equal(t, schema.DataType("numeric(10,2)"), f.DataType, tc.column)
	}
}
