package flagx

import (
	"os"
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
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "https://api.local"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"-config=alt.json", "-a", "https://api.local"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-t"},
			allowedFlags: []string{"-t"},
			want:         []string{"-t"},
		},
		{
			name:         "flag followed by another flag",
			args:         []string{"-c", "-d", "member.db"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "multiple allowed flags keep order",
			args:         []string{"-a", "https://api.local", "-d", "member.db", "-l", "debug"},
			allowedFlags: []string{"-d", "-a"},
			want:         []string{"-a", "https://api.local", "-d", "member.db"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"member"}, args...)
}

func TestConfigFileFlag(t *testing.T) {
	withArgs(t, "-a", "https://api.local", "-c", "member.json")
	assert.Equal(t, "member.json", ConfigFileFlag())

	withArgs(t, "-config=other.json")
	assert.Equal(t, "other.json", ConfigFileFlag())

	withArgs(t, "-a", "https://api.local")
	assert.Equal(t, "", ConfigFileFlag())
}

func TestEnvFileFlag(t *testing.T) {
	withArgs(t, "-env", "staging.env", "-c", "member.json")
	assert.Equal(t, "staging.env", EnvFileFlag())

	withArgs(t)
	assert.Equal(t, "", EnvFileFlag())
}
