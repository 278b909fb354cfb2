package webui

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/internal/domain"
)

func TestParseFilterState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values url.Values
		want   FilterState
	}{
		{
			name:   "empty",
			values: url.Values{},
			want:   FilterState{},
		},
		{
			name:   "query_only",
			values: url.Values{"q": {"milk"}},
			want:   FilterState{Query: "milk"},
		},
		{
			name:   "completed_checkbox",
			values: url.Values{"completed": {"on"}},
			want:   FilterState{Completed: true},
		},
		{
			name:   "all_controls",
			values: url.Values{"q": {"mil"}, "completed": {"on"}, "pending": {"on"}},
			want:   FilterState{Query: "mil", Completed: true, Pending: true},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ParseFilterState(tc.values))
		})
	}
}

func TestFilterState_EncodeRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("zero_value_encodes_empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, FilterState{}.Encode().Encode())
	})

	t.Run("round_trip", func(t *testing.T) {
		t.Parallel()

		original := FilterState{Query: "milk", Pending: true}
		assert.Equal(t, original, ParseFilterState(original.Encode()))
	})
}

func TestFilterState_ListFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		state      FilterState
		wantName   string
		wantStatus *bool
	}{
		{
			name:       "no_toggles_means_no_status_filter",
			state:      FilterState{Query: "mil"},
			wantName:   "mil",
			wantStatus: nil,
		},
		{
			name:       "both_toggles_means_no_status_filter",
			state:      FilterState{Completed: true, Pending: true},
			wantStatus: nil,
		},
		{
			name:       "completed_only",
			state:      FilterState{Completed: true},
			wantStatus: boolPtr(true),
		},
		{
			name:       "pending_only",
			state:      FilterState{Pending: true},
			wantStatus: boolPtr(false),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			filter := tc.state.ListFilter()
			assert.Equal(t, tc.wantName, filter.Name)
			if tc.wantStatus == nil {
				assert.Nil(t, filter.Status)
			} else {
				require.NotNil(t, filter.Status)
				assert.Equal(t, *tc.wantStatus, *filter.Status)
			}
		})
	}
}

func TestCountTasks(t *testing.T) {
	t.Parallel()

	t.Run("empty_list", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Counts{}, CountTasks(nil))
	})

	t.Run("mixed_statuses", func(t *testing.T) {
		t.Parallel()

		counts := CountTasks([]domain.Task{
			{ID: 1, Name: "Buy milk", Status: false},
			{ID: 2, Name: "Write report", Status: true},
			{ID: 3, Name: "Walk dog", Status: true},
		})
		assert.Equal(t, Counts{Total: 3, Completed: 2, Pending: 1}, counts)
	})
}

func boolPtr(v bool) *bool {
	return &v
}
