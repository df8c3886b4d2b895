package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// EVM address: 0x followed by exactly 40 hex characters
	addressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
)

// ValidateAddress validates an EVM account address format
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}

	if !strings.HasPrefix(address, "0x") {
		return fmt.Errorf("address must start with 0x")
	}

	if !addressRegex.MatchString(address) {
		return fmt.Errorf("invalid address format")
	}

	return nil
}

// NormalizeAddress normalizes an address to its checksummed form
func NormalizeAddress(address string) string {
	if !common.IsHexAddress(address) {
		return address
	}
	return common.HexToAddress(address).Hex()
}
