package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveNameFromEmail(t *testing.T) {
	tests := []struct {
		email, first, last string
	}{
		{"asha.k.rao@example.in", "Asha", "Rao"},
		{"VIKRAM@example.in", "Vikram", ""},
		{"udaan_foundation@ngo.org", "Udaan", "Foundation"},
		{"@nolocal.in", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			first, last := DeriveNameFromEmail(tt.email)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Priya Sharma", DisplayName("p@x.in", " Priya ", "Sharma"))
	assert.Equal(t, "Priya", DisplayName("p@x.in", "Priya", ""))
	assert.Equal(t, "Rahul Verma", DisplayName("rahul.verma@x.in", "", ""))
	assert.Equal(t, "User", DisplayName("", "", ""))
}
