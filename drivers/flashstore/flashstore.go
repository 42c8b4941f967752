//go:build tinygo

// Package flashstore persists single bytes in the first erase block of
// the MCU's onboard flash data area. Erased flash reads 0xFF, which the
// callers treat as "never written".
package flashstore

import "machine"

type Store struct {
	block  []byte // shadow copy of the erase block
	loaded bool
}

func New() *Store { return &Store{} }

func (s *Store) load() {
	if s.loaded {
		return
	}
	s.block = make([]byte, machine.Flash.EraseBlockSize())
	if _, err := machine.Flash.ReadAt(s.block, 0); err != nil {
		println("Error: flashstore: read:", err.Error())
	}
	s.loaded = true
}

func (s *Store) ReadByte(addr uint8) byte {
	s.load()
	return s.block[addr]
}

// WriteByteIfChanged rewrites the erase block only when the byte actually
// differs. Flash endurance is finite and the value changes rarely.
func (s *Store) WriteByteIfChanged(addr uint8, b byte) {
	s.load()
	if s.block[addr] == b {
		return
	}
	s.block[addr] = b
	if err := machine.Flash.EraseBlocks(0, 1); err != nil {
		println("Error: flashstore: erase:", err.Error())
		return
	}
	if _, err := machine.Flash.WriteAt(s.block, 0); err != nil {
		println("Error: flashstore: write:", err.Error())
	}
}
