package flagx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-a", "http://localhost:8080"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "flag with equals",
			args:    []string{"-config=alt.json", "-a", "http://localhost:8080"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag without value at end is kept as-is",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-c", "-t", "5s"},
			allowed: []string{"-c", "-t"},
			want:    []string{"-c", "-t", "5s"},
		},
		{
			name:    "repeated flag preserved in order",
			args:    []string{"-a", "http://one", "-a", "http://two"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://one", "-a", "http://two"},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestJSONConfigPath(t *testing.T) {
	t.Run("short -c with value", func(t *testing.T) {
		assert.Equal(t, "/path/short.json", JSONConfigPath([]string{"-c", "/path/short.json"}))
	})

	t.Run("long -config with equals", func(t *testing.T) {
		assert.Equal(t, "/path/long.json", JSONConfigPath([]string{"-config=/path/long.json"}))
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		assert.Empty(t, JSONConfigPath([]string{"-a", "http://x", "-t", "5s"}))
	})

	t.Run("last wins", func(t *testing.T) {
		assert.Equal(t, "/path/2.json", JSONConfigPath([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
	})
}
