package flashctrl

// Flash geometry constants. These describe the controller's view of the
// array: a bulk data partition of uniform pages split across banks, plus a
// small per-bank info partition of fixed-purpose pages.
const (
	// WordBytes is the size of one flash word in bytes.
	// Reads and writes operate at word granularity.
	WordBytes = 4

	// PageWords is the number of words in one flash page.
	PageWords = 512

	// PageBytes is the size of one flash page in bytes.
	PageBytes = PageWords * WordBytes

	// BankPages is the number of data pages in each bank.
	BankPages = 256

	// BankCount is the number of flash banks.
	BankCount = 2

	// BankBytes is the size of one bank's data partition in bytes.
	BankBytes = BankPages * PageBytes

	// DataBytes is the total size of the data partition in bytes.
	DataBytes = BankCount * BankBytes

	// InfoPagesPerBank is the number of info pages in each bank's
	// info partition.
	InfoPagesPerBank = 10

	// RegionCount is the number of configurable data regions.
	RegionCount = 8

	// ErasedWord is the value every word holds after a successful erase.
	ErasedWord = 0xFFFFFFFF

	// ExecEnable is the magic value that enables instruction fetch from
	// flash when passed to ExecSet. Any other value disables fetch.
	ExecEnable = 0xA26A38F7
)

// Perms is the capability set granted to a data region or info page.
// A capability that is false causes the corresponding operation to be
// denied before the array is touched.
type Perms struct {
	// Read allows read operations
	Read bool

	// Write allows write (program) operations
	Write bool

	// Erase allows page erase operations
	Erase bool
}

// grants reports whether the capability set includes c.
func (p Perms) grants(c capability) bool {
	switch c {
	case capRead:
		return p.Read
	case capWrite:
		return p.Write
	case capErase:
		return p.Erase
	}
	return false
}

// Cfg holds the physical configuration flags for a data region or info
// page. The controller records these and forwards them to the array; it
// does not model their electrical effect.
type Cfg struct {
	// Scrambling enables address/data scrambling
	Scrambling bool

	// ECC enables error correction
	ECC bool

	// HighEndurance enables high-endurance mode
	HighEndurance bool
}

// EraseType selects the scope of an erase operation.
type EraseType int

const (
	// EraseTypePage erases the single page containing the target address.
	EraseTypePage EraseType = iota

	// EraseTypeBank erases the entire bank containing the target address.
	EraseTypeBank
)

// String returns a human-readable name for the erase type.
func (t EraseType) String() string {
	switch t {
	case EraseTypePage:
		return "page"
	case EraseTypeBank:
		return "bank"
	default:
		return "invalid"
	}
}

// capability identifies the permission bit an operation requires.
type capability int

const (
	capRead capability = iota
	capWrite
	capErase
)

// String returns the capability name as it appears in error messages.
func (c capability) String() string {
	switch c {
	case capRead:
		return "read"
	case capWrite:
		return "write"
	case capErase:
		return "erase"
	}
	return "unknown"
}

// StatusWord is the live controller status bitfield returned by StatusGet.
// Unlike ErrorCode it is computed fresh on every read and is never latched.
type StatusWord uint32

const (
	// StatusBusy is set while an operation is in flight. All operations
	// complete synchronously, so callers polling between operations
	// observe it clear; it exists for array backends with a live
	// status line.
	StatusBusy StatusWord = 1 << iota

	// StatusInitDone is set once Init has completed successfully.
	StatusInitDone

	// StatusError is set while the latched error code is non-zero.
	StatusError
)

// ErrorCode is the latched fault accumulator. Each failed operation ORs
// its category bit into the accumulator; ErrorCodeGet returns the
// accumulated value and clears it.
type ErrorCode uint32

const (
	// ErrCodeAccessDenied accumulates operations denied by a missing
	// capability bit.
	ErrCodeAccessDenied ErrorCode = 1 << iota

	// ErrCodeInvalidArgument accumulates out-of-range addresses, offsets
	// and word counts.
	ErrCodeInvalidArgument

	// ErrCodeHardwareFault accumulates faults reported by the array.
	ErrCodeHardwareFault

	// ErrCodeEraseVerifyFailed accumulates post-erase verification
	// mismatches.
	ErrCodeEraseVerifyFailed

	// ErrCodeAlreadyLocked accumulates mutation attempts on locked state.
	ErrCodeAlreadyLocked
)

// RegionIndex identifies one of the configurable data regions.
type RegionIndex int

// InfoPage identifies a fixed info partition page by bank and page number.
// Info pages are not dynamically created; the valid set is determined by
// the flash geometry.
type InfoPage struct {
	Bank uint32
	Page uint32
}

// Valid reports whether the page id falls inside the info partition.
func (p InfoPage) Valid() bool {
	return p.Bank < BankCount && p.Page < InfoPagesPerBank
}

// Well-known info pages. The creator set holds manufacturing and secret
// data provisioned before ownership transfer and is frozen in one shot by
// CreatorInfoPagesLockdown.
var (
	InfoPageFactoryID           = InfoPage{Bank: 0, Page: 0}
	InfoPageCreatorSecret       = InfoPage{Bank: 0, Page: 1}
	InfoPageOwnerSecret         = InfoPage{Bank: 0, Page: 2}
	InfoPageWaferAuthSecret     = InfoPage{Bank: 0, Page: 3}
	InfoPageAttestationKeySeeds = InfoPage{Bank: 0, Page: 4}
	InfoPageBootData0           = InfoPage{Bank: 1, Page: 0}
	InfoPageBootData1           = InfoPage{Bank: 1, Page: 1}
	InfoPageOwnerSlot0          = InfoPage{Bank: 1, Page: 2}
	InfoPageOwnerSlot1          = InfoPage{Bank: 1, Page: 3}
)

// DefaultCreatorPages returns the info pages frozen by
// CreatorInfoPagesLockdown unless overridden with WithCreatorPages.
func DefaultCreatorPages() []InfoPage {
	return []InfoPage{
		InfoPageFactoryID,
		InfoPageCreatorSecret,
		InfoPageOwnerSecret,
		InfoPageWaferAuthSecret,
		InfoPageAttestationKeySeeds,
	}
}

// Array is the register-level flash array driver the controller mediates
// access to. Every method maps to a raw array operation with no permission
// checking of its own; the controller performs all gating before calling
// in. Errors returned here surface to callers as HardwareError.
//
// Two implementations ship with this module: the deterministic in-memory
// array in package sim, and the serial-attached hardware bridge in package
// bridge. A memory-mapped driver for on-chip hardware satisfies the same
// contract.
type Array interface {
	// Probe checks that the array is present and responsive.
	// Called once from Init.
	Probe() error

	// ReadData reads len(words) words starting at byte address addr in
	// the data partition.
	ReadData(addr uint32, words []uint32) error

	// WriteData programs len(words) words starting at byte address addr
	// in the data partition.
	WriteData(addr uint32, words []uint32) error

	// EraseDataPage erases the data page beginning at byte address addr.
	// addr is always page-aligned.
	EraseDataPage(addr uint32) error

	// EraseDataBank erases the entire data partition of the given bank.
	EraseDataBank(bank uint32) error

	// ReadInfo reads len(words) words from an info page starting at the
	// given byte offset.
	ReadInfo(bank, page, offset uint32, words []uint32) error

	// WriteInfo programs len(words) words to an info page starting at
	// the given byte offset.
	WriteInfo(bank, page, offset uint32, words []uint32) error

	// EraseInfoPage erases a single info page.
	EraseInfoPage(bank, page uint32) error

	// EraseInfoBank erases the entire info partition of the given bank.
	EraseInfoBank(bank uint32) error
}
