package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		wantErr string
	}{
		{name: "none set", sources: []bool{false, false}, wantErr: "none"},
		{name: "one set", sources: []bool{false, true}},
		{name: "two set", sources: []bool{true, true}, wantErr: "many"},
		{name: "no sources", sources: nil, wantErr: "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource("none", "many", tt.sources...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
