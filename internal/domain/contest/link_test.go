package contest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	links := map[int64]Link{
		1: {ID: 1, Master: true},
		2: {ID: 2, SlaveOf: 1},
		3: {ID: 3, SlaveOf: 2},
		4: {ID: 4, SlaveOf: 40},
		5: {ID: 5, SlaveOf: 6},
		6: {ID: 6, SlaveOf: 5},
		7: {ID: 7},
	}
	lookup := func(id int64) (Link, bool, error) {
		link, ok := links[id]
		return link, ok, nil
	}

	tests := []struct {
		name    string
		groupID int64
		want    int64
		wantErr error
	}{
		{name: "Should resolve a master to itself", groupID: 1, want: 1},
		{name: "Should resolve a slave to its master", groupID: 2, want: 1},
		{name: "Should follow a chain of slaves", groupID: 3, want: 1},
		{name: "Should treat an unlinked group as its own master", groupID: 7, want: 7},
		{name: "Should reject a missing target", groupID: 4, wantErr: ErrConfigInconsistent},
		{name: "Should reject a cycle", groupID: 5, wantErr: ErrConfigInconsistent},
		{name: "Should reject an unknown group", groupID: 99, wantErr: ErrConfigInconsistent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.groupID, lookup)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_LookupError(t *testing.T) {
	_, err := Resolve(1, func(int64) (Link, bool, error) {
		return Link{}, false, assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
}
