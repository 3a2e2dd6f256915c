package flagx

import (
	"os"
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
			name:    "separate values",
			args:    []string{"-a", ":8080", "-x", "skip", "-d", "shop.db"},
			allowed: []string{"-a", "-d"},
			want:    []string{"-a", ":8080", "-d", "shop.db"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-a=:9090", "-z=1"},
			allowed: []string{"--config", "-a"},
			want:    []string{"--config=conf.json", "-a=:9090"},
		},
		{
			name:    "flag without value followed by flag",
			args:    []string{"-v", "-a", ":1"},
			allowed: []string{"-v", "-a"},
			want:    []string{"-v", "-a", ":1"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "1"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"cmd", "-a", ":1", "-c", "conf.json"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"cmd", "-config=other.json"}
	assert.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"cmd"}
	assert.Equal(t, "", JsonConfigFlags())
}
