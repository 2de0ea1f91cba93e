package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnindent(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "common indent", in: "\n\t\ta = 1\n\t\tb {\n\t\t  c = 2\n\t\t}\n\t", want: "a = 1\nb {\n  c = 2\n}"},
		{name: "no indent", in: "a\nb", want: "a\nb"},
		{name: "blank", in: "\n\n", want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, unindent(tc.in))
		})
	}
}
