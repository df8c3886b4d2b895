package utils

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{
			name:    "valid lowercase address",
			address: "0x86a5b482ea2f9d157a88e2494269fc9a885fa0b1",
			wantErr: false,
		},
		{
			name:    "valid checksummed address",
			address: "0x86A5B482eA2f9d157a88E2494269FC9A885Fa0b1",
			wantErr: false,
		},
		{
			name:    "empty address",
			address: "",
			wantErr: true,
		},
		{
			name:    "missing 0x prefix",
			address: "86a5b482ea2f9d157a88e2494269fc9a885fa0b1",
			wantErr: true,
		},
		{
			name:    "too short",
			address: "0x86a5b482",
			wantErr: true,
		},
		{
			name:    "too long",
			address: "0x" + strings.Repeat("a", 41),
			wantErr: true,
		},
		{
			name:    "invalid hex characters",
			address: "0x86a5b482ea2f9d157a88e2494269fc9a885fa0zz",
			wantErr: true,
		},
		{
			name:    "only prefix",
			address: "0x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.address)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	lower := "0x86a5b482ea2f9d157a88e2494269fc9a885fa0b1"
	want := common.HexToAddress(lower).Hex()

	assert.Equal(t, want, NormalizeAddress(lower))
	assert.Equal(t, want, NormalizeAddress(want))

	// Invalid input passes through unchanged rather than fabricating an address.
	assert.Equal(t, "not-an-address", NormalizeAddress("not-an-address"))
}
