package util

import (
	"os"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		envVars map[string]string
		want    Config
		wantErr string
	}{
		{
			name: "query and path",
			args: []string{"needle", "haystack.txt"},
			want: Config{Query: "needle", Path: "haystack.txt"},
		},
		{
			name: "extra tokens ignored",
			args: []string{"needle", "haystack.txt", "trailing"},
			want: Config{Query: "needle", Path: "haystack.txt"},
		},
		{
			name: "empty tokens still count as supplied",
			args: []string{"", ""},
			want: Config{Query: "", Path: ""},
		},
		{
			name:    "missing path",
			args:    []string{"needle"},
			wantErr: "didn't get a file path",
		},
		{
			name:    "missing query",
			args:    []string{},
			wantErr: "didn't get a query string",
		},
		{
			name:    "IGNORE_CASE presence enables folding",
			args:    []string{"needle", "haystack.txt"},
			envVars: map[string]string{"IGNORE_CASE": ""},
			want:    Config{Query: "needle", Path: "haystack.txt", IgnoreCase: true},
		},
		{
			name:    "LINEGREP_DSN wins over DATABASE_URL",
			args:    []string{"needle", "haystack.txt"},
			envVars: map[string]string{"LINEGREP_DSN": "a.db", "DATABASE_URL": "b.db"},
			want:    Config{Query: "needle", Path: "haystack.txt", DSN: "a.db"},
		},
		{
			name:    "DATABASE_URL fallback",
			args:    []string{"needle", "haystack.txt"},
			envVars: map[string]string{"DATABASE_URL": "b.db"},
			want:    Config{Query: "needle", Path: "haystack.txt", DSN: "b.db"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear any host values first; t.Setenv registers the restore.
			for _, k := range []string{"IGNORE_CASE", "LINEGREP_DSN", "DATABASE_URL", "LINEGREP_THEME"} {
				t.Setenv(k, "")
				os.Unsetenv(k)
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			cfg, err := FromArgs(slices.Values(tt.args))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestFromEnvTheme(t *testing.T) {
	t.Setenv("LINEGREP_THEME", "dracula")
	assert.Equal(t, "dracula", FromEnv().Theme)
}
