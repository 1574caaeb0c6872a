package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/colkit/pkg/column"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid limit only",
			cfg:     Config{Limit: 10},
			wantErr: false,
		},
		{
			name:    "valid offset only",
			cfg:     Config{Offset: 5},
			wantErr: false,
		},
		{
			name:    "valid limit and offset",
			cfg:     Config{Limit: 10, Offset: 5},
			wantErr: false,
		},
		{
			name:    "valid tail only",
			cfg:     Config{Tail: 10},
			wantErr: false,
		},
		{
			name:    "tail ignores offset (valid)",
			cfg:     Config{Tail: 10, Offset: 5},
			wantErr: false,
		},
		{
			name:    "limit and tail mutually exclusive",
			cfg:     Config{Limit: 10, Tail: 5},
			wantErr: true,
			errMsg:  "mutually exclusive",
		},
		{
			name:    "negative limit invalid",
			cfg:     Config{Limit: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative offset invalid",
			cfg:     Config{Offset: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative tail invalid",
			cfg:     Config{Tail: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "zero values valid",
			cfg:     Config{Limit: 0, Offset: 0, Tail: 0},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfigIsActive(t *testing.T) {
	assert.False(t, Config{}.IsActive())
	assert.True(t, Config{Limit: 1}.IsActive())
	assert.True(t, Config{Offset: 1}.IsActive())
	assert.True(t, Config{Tail: 1}.IsActive())
}

func TestApply(t *testing.T) {
	records := []column.Record{{"n": 0}, {"n": 1}, {"n": 2}, {"n": 3}, {"n": 4}}

	tests := []struct {
		name string
		cfg  Config
		want []int
	}{
		{name: "inactive", cfg: Config{}, want: []int{0, 1, 2, 3, 4}},
		{name: "limit", cfg: Config{Limit: 2}, want: []int{0, 1}},
		{name: "offset", cfg: Config{Offset: 3}, want: []int{3, 4}},
		{name: "offset and limit", cfg: Config{Offset: 1, Limit: 2}, want: []int{1, 2}},
		{name: "limit past end", cfg: Config{Offset: 4, Limit: 10}, want: []int{4}},
		{name: "offset past end", cfg: Config{Offset: 9}, want: []int{}},
		{name: "tail", cfg: Config{Tail: 2}, want: []int{3, 4}},
		{name: "tail ignores offset", cfg: Config{Tail: 2, Offset: 4}, want: []int{3, 4}},
		{name: "tail longer than list", cfg: Config{Tail: 9}, want: []int{0, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.cfg, records)
			ns := make([]int, 0, len(got))
			for _, r := range got {
				ns = append(ns, r["n"].(int))
			}
			assert.Equal(t, tt.want, ns)
		})
	}
}

func TestWindowEmpty(t *testing.T) {
	start, end := Config{Limit: 3, Offset: 2}.Window(0)
	require.Equal(t, 0, start)
	require.Equal(t, 0, end)
}
