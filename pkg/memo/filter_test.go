package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Apply(t *testing.T) {
	memos := []Memo{
		{ID: 3, Content: "Call mom"},
		{ID: 2, Content: "buy oat milk"},
		{ID: 1, Content: "milk the cow"},
	}

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []int64
	}{
		{name: "zero filter", filter: Filter{}, wantIDs: []int64{3, 2, 1}},
		{name: "glob contains", filter: Filter{Match: "*milk*"}, wantIDs: []int64{2, 1}},
		{name: "glob prefix", filter: Filter{Match: "milk*"}, wantIDs: []int64{1}},
		{name: "glob case insensitive", filter: Filter{Match: "CALL *"}, wantIDs: []int64{3}},
		{name: "glob alternatives", filter: Filter{Match: "{call,buy}*"}, wantIDs: []int64{3, 2}},
		{name: "query", filter: Filter{Query: "MOM"}, wantIDs: []int64{3}},
		{name: "glob and query", filter: Filter{Match: "*milk*", Query: "oat"}, wantIDs: []int64{2}},
		{name: "no match", filter: Filter{Query: "dentist"}, wantIDs: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.filter.Apply(memos)
			require.NoError(t, err)

			ids := make([]int64, 0, len(got))
			for _, m := range got {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilter_InvalidPattern(t *testing.T) {
	_, err := Filter{Match: "[unclosed"}.Apply([]Memo{{ID: 1, Content: "x"}})
	assert.Error(t, err)
}
