package confirm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	r := NewRecognizer()

	tests := []struct {
		reply string
		want  Decision
	}{
		{"ya", Yes},
		{"Ya", Yes},
		{"YA ", Yes},
		{"  iya", Yes},
		{"yes", Yes},
		{"y", Yes},
		{"oke", Yes},
		{"betul", Yes},
		{"setuju", Yes},

		{"tidak", No},
		{"TIDAK", No},
		{"no", No},
		{"n", No},
		{"nggak", No},
		{"enggak", No},
		{"salah", No},
		{"tidak setuju", No},

		{"", Unknown},
		{"mungkin", Unknown},
		{"yaa", Unknown},
		{"ya tidak", Unknown},
		{"50000", Unknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Classify(tt.reply), "reply %q", tt.reply)
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "yes", Yes.String())
	assert.Equal(t, "no", No.String())
	assert.Equal(t, "unknown", Unknown.String())
}
