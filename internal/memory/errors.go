package memory

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmapped is returned when an address is not backed by the loaded image.
	ErrUnmapped = errors.New("address not in memory image")
	// ErrBankRequired is returned when a switchable region is read without a bank.
	ErrBankRequired = errors.New("bank not specified for address")
)

// AddressError describes a failed read of a single address.
type AddressError struct {
	Address uint16
	Region  Region
	Err     error // ErrUnmapped or ErrBankRequired
}

func (e *AddressError) Error() string {
	if errors.Is(e.Err, ErrBankRequired) {
		kind := "SRAM"
		if e.Region == ROMX {
			kind = "ROM"
		}
		return fmt.Sprintf("%s %s: $%04X", kind, e.Err, e.Address)
	}
	return fmt.Sprintf("%s: $%04X", e.Err, e.Address)
}

func (e *AddressError) Unwrap() error {
	return e.Err
}

func unmapped(addr uint16, region Region) error {
	return &AddressError{Address: addr, Region: region, Err: ErrUnmapped}
}

func bankRequired(addr uint16, region Region) error {
	return &AddressError{Address: addr, Region: region, Err: ErrBankRequired}
}
