package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkills(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "comma and space", input: "react, node", want: "react,node"},
		{name: "spaces only", input: "go  rust\tzig", want: "go,rust,zig"},
		{name: "repeated separators", input: ",,react ,, node,", want: "react,node"},
		{name: "newlines", input: "react\nnode\r\nsql", want: "react,node,sql"},
		{name: "already normalized", input: "react,node", want: "react,node"},
		{name: "empty", input: "", want: ""},
		{name: "separators only", input: " , ,\t", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSkills(tt.input))
		})
	}
}

func TestNormalizeSkills_Idempotent(t *testing.T) {
	inputs := []string{"react, node", " a  b ,c ", "", "x", "one,,two  three"}
	for _, in := range inputs {
		once := NormalizeSkills(in)
		assert.Equal(t, once, NormalizeSkills(once), "input %q", in)
	}
}
