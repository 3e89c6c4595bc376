// Package symbols provides banked symbol tables as written by the rgbds linker.
package symbols

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/FutureFractal/g1utils/internal/memory"
	"github.com/retroenv/retrogolib/set"
)

// Symbol is a named banked address.
type Symbol struct {
	Name    string
	Pointer memory.Pointer
}

// Manager provides symbol tracking with bank support.
// Addresses outside of switchable regions are stored in bank 0.
type Manager struct {
	banks map[memory.Bank]*Bank
	names map[string]memory.Pointer
}

// Bank represents a memory bank containing symbols.
type Bank struct {
	items     map[uint16]string
	addresses set.Set[uint16]
	sorted    []uint16 // cached sorted addresses, nil after changes
}

// Get returns the symbol name at the given address in this bank.
func (b *Bank) Get(address uint16) (string, bool) {
	name, ok := b.items[address]
	return name, ok
}

// Set sets the symbol name at the given address in this bank.
// The first name set for an address is kept.
func (b *Bank) Set(address uint16, name string) {
	if b.addresses.Contains(address) {
		return
	}
	b.items[address] = name
	b.addresses.Add(address)
	b.sorted = nil
}

// Addresses returns the addresses of all symbols of the bank in ascending order.
func (b *Bank) Addresses() []uint16 {
	if b.sorted == nil {
		b.sorted = set.Sorted(b.addresses)
	}
	return b.sorted
}

// New creates a new symbol manager.
func New() *Manager {
	return &Manager{
		banks: make(map[memory.Bank]*Bank),
		names: make(map[string]memory.Pointer),
	}
}

// Load reads symbols in the rgbds .sym format, one "bank:address name"
// entry per line. Lines starting with ; are comments.
func Load(r io.Reader) (*Manager, error) {
	m := New()
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == ';' {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: missing symbol name", line)
		}
		if !strings.Contains(fields[0], ":") {
			return nil, fmt.Errorf("line %d: missing bank in '%s'", line, fields[0])
		}
		ptr, err := memory.ParsePointer(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		m.Set(ptr, fields[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading symbols: %w", err)
	}
	return m, nil
}

// LoadFile reads a symbol file.
func LoadFile(fileName string) (*Manager, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening symbol file '%s': %w", fileName, err)
	}
	defer func() { _ = f.Close() }()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading symbol file '%s': %w", fileName, err)
	}
	return m, nil
}

// bankKey returns the bank a pointer is stored under.
func bankKey(ptr memory.Pointer) memory.Bank {
	if memory.RegionOf(ptr.Address).Banked() && ptr.Bank.Valid() {
		return ptr.Bank
	}
	return 0
}

// Set adds a symbol. Names and addresses that are already known keep their
// first definition.
func (m *Manager) Set(ptr memory.Pointer, name string) {
	key := bankKey(ptr)
	bank, ok := m.banks[key]
	if !ok {
		bank = &Bank{
			items:     make(map[uint16]string),
			addresses: set.New[uint16](),
		}
		m.banks[key] = bank
	}
	bank.Set(ptr.Address, name)

	if _, ok := m.names[name]; !ok {
		if !memory.RegionOf(ptr.Address).Banked() {
			ptr.Bank = memory.NoBank
		}
		m.names[name] = ptr
	}
}

// Get returns the symbol name at the pointer.
func (m *Manager) Get(ptr memory.Pointer) (string, bool) {
	if m == nil {
		return "", false
	}
	bank, ok := m.banks[bankKey(ptr)]
	if !ok {
		return "", false
	}
	return bank.Get(ptr.Address)
}

// Resolve returns the pointer of a symbol name. Pointers to addresses outside
// of switchable regions have no bank.
func (m *Manager) Resolve(name string) (memory.Pointer, bool) {
	if m == nil {
		return memory.Pointer{}, false
	}
	ptr, ok := m.names[name]
	return ptr, ok
}

// Next returns the first symbol following the pointer in the same bank.
func (m *Manager) Next(ptr memory.Pointer) (Symbol, bool) {
	if m == nil {
		return Symbol{}, false
	}
	bank, ok := m.banks[bankKey(ptr)]
	if !ok {
		return Symbol{}, false
	}

	addresses := bank.Addresses()
	i, found := slices.BinarySearch(addresses, ptr.Address)
	if found {
		i++
	}
	if i >= len(addresses) {
		return Symbol{}, false
	}

	address := addresses[i]
	name, _ := bank.Get(address)
	return Symbol{Name: name, Pointer: memory.Pointer{Bank: ptr.Bank, Address: address}}, true
}

// Len returns the number of symbol names.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}
