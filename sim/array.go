package sim

import (
	"fmt"

	"github.com/moffa90/go-flashctrl/flashctrl"
)

// Array is a deterministic in-memory flash array implementing the
// flashctrl.Array contract. It powers up fully erased, keeps all state
// inspectable, and supports fault injection, so software layered above
// the controller can be unit-tested without real hardware.
//
// Array models the functional contract only: writes store their words
// directly and no program/erase timing or endurance behavior is
// simulated.
type Array struct {
	data [flashctrl.DataBytes / flashctrl.WordBytes]uint32
	info [flashctrl.BankCount][flashctrl.InfoPagesPerBank][flashctrl.PageWords]uint32

	probeErr error
	readErr  error
	writeErr error
	eraseErr error

	// Reads, Writes and Erases count array operations that passed the
	// controller's gating, including internal erase-verify read-backs.
	Reads  int
	Writes int
	Erases int
}

// compile-time check against the driver contract
var _ flashctrl.Array = (*Array)(nil)

// New returns a fully erased array.
func New() *Array {
	a := &Array{}
	a.eraseAll()
	return a
}

func (a *Array) eraseAll() {
	for i := range a.data {
		a.data[i] = flashctrl.ErasedWord
	}
	for bank := range a.info {
		for page := range a.info[bank] {
			for i := range a.info[bank][page] {
				a.info[bank][page][i] = flashctrl.ErasedWord
			}
		}
	}
}

// Probe reports the injected probe fault, if any.
func (a *Array) Probe() error {
	return a.probeErr
}

func (a *Array) ReadData(addr uint32, words []uint32) error {
	if a.readErr != nil {
		return a.readErr
	}
	if err := checkDataBounds(addr, len(words)); err != nil {
		return err
	}
	a.Reads++
	copy(words, a.data[addr/flashctrl.WordBytes:])
	return nil
}

func (a *Array) WriteData(addr uint32, words []uint32) error {
	if a.writeErr != nil {
		return a.writeErr
	}
	if err := checkDataBounds(addr, len(words)); err != nil {
		return err
	}
	a.Writes++
	copy(a.data[addr/flashctrl.WordBytes:], words)
	return nil
}

func (a *Array) EraseDataPage(addr uint32) error {
	if a.eraseErr != nil {
		return a.eraseErr
	}
	if addr%flashctrl.PageBytes != 0 || addr >= flashctrl.DataBytes {
		return fmt.Errorf("sim: erase address 0x%08X is not a valid page base", addr)
	}
	a.Erases++
	base := addr / flashctrl.WordBytes
	for i := uint32(0); i < flashctrl.PageWords; i++ {
		a.data[base+i] = flashctrl.ErasedWord
	}
	return nil
}

func (a *Array) EraseDataBank(bank uint32) error {
	if a.eraseErr != nil {
		return a.eraseErr
	}
	if bank >= flashctrl.BankCount {
		return fmt.Errorf("sim: bank %d does not exist", bank)
	}
	a.Erases++
	base := bank * flashctrl.BankBytes / flashctrl.WordBytes
	for i := uint32(0); i < flashctrl.BankBytes/flashctrl.WordBytes; i++ {
		a.data[base+i] = flashctrl.ErasedWord
	}
	return nil
}

func (a *Array) ReadInfo(bank, page, offset uint32, words []uint32) error {
	if a.readErr != nil {
		return a.readErr
	}
	if err := checkInfoBounds(bank, page, offset, len(words)); err != nil {
		return err
	}
	a.Reads++
	copy(words, a.info[bank][page][offset/flashctrl.WordBytes:])
	return nil
}

func (a *Array) WriteInfo(bank, page, offset uint32, words []uint32) error {
	if a.writeErr != nil {
		return a.writeErr
	}
	if err := checkInfoBounds(bank, page, offset, len(words)); err != nil {
		return err
	}
	a.Writes++
	copy(a.info[bank][page][offset/flashctrl.WordBytes:], words)
	return nil
}

func (a *Array) EraseInfoPage(bank, page uint32) error {
	if a.eraseErr != nil {
		return a.eraseErr
	}
	if err := checkInfoBounds(bank, page, 0, 0); err != nil {
		return err
	}
	a.Erases++
	for i := range a.info[bank][page] {
		a.info[bank][page][i] = flashctrl.ErasedWord
	}
	return nil
}

func (a *Array) EraseInfoBank(bank uint32) error {
	if a.eraseErr != nil {
		return a.eraseErr
	}
	if bank >= flashctrl.BankCount {
		return fmt.Errorf("sim: bank %d does not exist", bank)
	}
	a.Erases++
	for page := range a.info[bank] {
		for i := range a.info[bank][page] {
			a.info[bank][page][i] = flashctrl.ErasedWord
		}
	}
	return nil
}

// SetProbeError injects a fault into Probe. Pass nil to clear.
func (a *Array) SetProbeError(err error) {
	a.probeErr = err
}

// SetReadError injects a fault into all reads. Pass nil to clear.
func (a *Array) SetReadError(err error) {
	a.readErr = err
}

// SetWriteError injects a fault into all writes. Pass nil to clear.
func (a *Array) SetWriteError(err error) {
	a.writeErr = err
}

// SetEraseError injects a fault into all erases. Pass nil to clear.
func (a *Array) SetEraseError(err error) {
	a.eraseErr = err
}

// DataWord returns the stored word at the given byte address, bypassing
// the fault injection hooks. Panics on an invalid address.
func (a *Array) DataWord(addr uint32) uint32 {
	return a.data[addr/flashctrl.WordBytes]
}

// Corrupt overwrites the word at the given data byte address directly,
// bypassing erase semantics. Useful for forcing erase-verify mismatches.
func (a *Array) Corrupt(addr uint32, value uint32) {
	a.data[addr/flashctrl.WordBytes] = value
}

// CorruptInfo overwrites a word inside an info page directly.
func (a *Array) CorruptInfo(bank, page, offset uint32, value uint32) {
	a.info[bank][page][offset/flashctrl.WordBytes] = value
}

// InfoWord returns the stored word at the given offset of an info page,
// bypassing the fault injection hooks.
func (a *Array) InfoWord(bank, page, offset uint32) uint32 {
	return a.info[bank][page][offset/flashctrl.WordBytes]
}

func checkDataBounds(addr uint32, words int) error {
	if addr%flashctrl.WordBytes != 0 {
		return fmt.Errorf("sim: address 0x%08X is not word aligned", addr)
	}
	if uint64(addr)+uint64(words)*flashctrl.WordBytes > flashctrl.DataBytes {
		return fmt.Errorf("sim: %d words at 0x%08X exceed the data partition", words, addr)
	}
	return nil
}

func checkInfoBounds(bank, page, offset uint32, words int) error {
	if bank >= flashctrl.BankCount || page >= flashctrl.InfoPagesPerBank {
		return fmt.Errorf("sim: info page bank %d page %d does not exist", bank, page)
	}
	if offset%flashctrl.WordBytes != 0 {
		return fmt.Errorf("sim: offset 0x%08X is not word aligned", offset)
	}
	if uint64(offset)+uint64(words)*flashctrl.WordBytes > flashctrl.PageBytes {
		return fmt.Errorf("sim: %d words at offset 0x%08X exceed the info page", words, offset)
	}
	return nil
}
