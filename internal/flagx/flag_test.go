package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-b", "http://localhost:8000/api", "-x", "1"},
			allowedFlags: []string{"-b"},
			want:         []string{"-b", "http://localhost:8000/api"},
		},
		{
			name:         "equals form",
			args:         []string{"-t=45", "-x", "1"},
			allowedFlags: []string{"-t"},
			want:         []string{"-t=45"},
		},
		{
			name:         "order preserved",
			args:         []string{"-l=debug", "-b", "http://h/api", "-q"},
			allowedFlags: []string{"-b", "-l"},
			want:         []string{"-l=debug", "-b", "http://h/api"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-b"},
			want:         []string{},
		},
		{
			name:         "trailing flag without value",
			args:         []string{"-b"},
			allowedFlags: []string{"-b"},
			want:         []string{"-b"},
		},
		{
			name:         "next flag is not consumed as value",
			args:         []string{"-b", "-t", "10"},
			allowedFlags: []string{"-b"},
			want:         []string{"-b"},
		},
		{
			name:         "empty input",
			args:         nil,
			allowedFlags: []string{"-b"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFile(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "short", args: []string{"-c", "client.json"}, want: "client.json"},
		{name: "long", args: []string{"-config", "client.json", "-b", "x"}, want: "client.json"},
		{name: "equals", args: []string{"-config=other.json"}, want: "other.json"},
		{name: "absent", args: []string{"-b", "http://h/api"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFile(tt.args))
		})
	}
}
