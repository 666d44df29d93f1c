package flashctrl

import "fmt"

// FlashCtrl is the stable operation surface consumed by boot firmware.
// Callers should depend on this interface rather than on a concrete
// implementation: a Controller over a hardware-backed Array is the real
// thing, and a Controller over a sim.Array is the deterministic test
// double with the same observable behavior.
type FlashCtrl interface {
	Init()
	StatusGet() StatusWord
	ErrorCodeGet() ErrorCode

	DataRead(addr uint32, words []uint32) error
	DataWrite(addr uint32, words []uint32) error
	DataErase(addr uint32, eraseType EraseType) error
	DataEraseVerify(addr uint32, eraseType EraseType) error

	InfoRead(page InfoPage, offset uint32, words []uint32) error
	InfoWrite(page InfoPage, offset uint32, words []uint32) error
	InfoErase(page InfoPage, eraseType EraseType) error

	DataDefaultPermsSet(perms Perms)
	DataDefaultPermsGet() Perms
	DataDefaultCfgSet(cfg Cfg)
	DataDefaultCfgGet() Cfg
	InfoPermsSet(page InfoPage, perms Perms) error
	InfoPermsGet(page InfoPage) Perms
	InfoCfgSet(page InfoPage, cfg Cfg) error
	InfoCfgGet(page InfoPage) Cfg

	DataRegionProtect(region RegionIndex, pageOffset, numPages uint32, perms Perms, cfg Cfg, lock bool) error
	BankErasePermsSet(enable bool) error
	ExecSet(execVal uint32)
	CreatorInfoPagesLockdown()
}

// Controller mediates every read, write and erase of the flash array
// through the region/page permission model. Each operation validates the
// target range, consults the permission store, and only then touches the
// array; denied operations never reach hardware and never modify caller
// buffers.
//
// Controller models an early-boot, single-context environment: all
// operations complete synchronously and no internal locking is performed.
// It is not safe for concurrent use.
type Controller struct {
	array  Array
	config Config
	store  *store

	initDone bool
	faults   ErrorCode
	execVal  uint32
}

// compile-time check that Controller implements the full surface
var _ FlashCtrl = (*Controller)(nil)

// New creates a Controller over the given array backend.
//
// Example:
//
//	ctrl := flashctrl.New(sim.New(),
//	    flashctrl.WithLogger(myLogger),
//	    flashctrl.WithVerifyAfterErase(true),
//	)
func New(array Array, opts ...Option) *Controller {
	if array == nil {
		panic("array cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Controller{
		array:  array,
		config: cfg,
		store:  newStore(cfg.CreatorPages),
	}
}

// Init probes the array and marks the controller initialized. A probe
// fault is latched as a hardware fault and leaves the init-done status
// bit clear.
func (c *Controller) Init() {
	if err := c.array.Probe(); err != nil {
		c.fail(&HardwareError{Op: "init", Err: err})
		c.logError("array probe failed", "err", err)
		return
	}
	c.initDone = true
	c.logInfo("flash controller initialized")
}

// StatusGet returns the live status word. Reading it has no side effects.
func (c *Controller) StatusGet() StatusWord {
	var status StatusWord
	if c.initDone {
		status |= StatusInitDone
	}
	if c.faults != 0 {
		status |= StatusError
	}
	return status
}

// ErrorCodeGet returns the accumulated fault bitfield and clears it. Two
// consecutive calls with no intervening fault return the accumulation,
// then zero.
func (c *Controller) ErrorCodeGet() ErrorCode {
	code := c.faults
	c.faults = 0
	return code
}

// DataRead reads len(words) words from the data partition starting at
// byte address addr. A zero word count is a trivial success. The
// destination slice is not written unless every range and permission
// check passes.
func (c *Controller) DataRead(addr uint32, words []uint32) error {
	if len(words) == 0 {
		return nil
	}
	if err := checkDataSpan("data read", addr, len(words)); err != nil {
		return c.fail(err)
	}
	if err := c.checkDataPerms("data read", capRead, addr, len(words)); err != nil {
		return c.fail(err)
	}
	if err := c.array.ReadData(addr, words); err != nil {
		return c.fail(&HardwareError{Op: "data read", Err: err})
	}
	return nil
}

// DataWrite programs len(words) words to the data partition starting at
// byte address addr. A zero word count is a trivial success. The write
// runs to completion synchronously; there is no partial or resumable
// write.
func (c *Controller) DataWrite(addr uint32, words []uint32) error {
	if len(words) == 0 {
		return nil
	}
	if err := checkDataSpan("data write", addr, len(words)); err != nil {
		return c.fail(err)
	}
	if err := c.checkDataPerms("data write", capWrite, addr, len(words)); err != nil {
		return c.fail(err)
	}
	if err := c.array.WriteData(addr, words); err != nil {
		return c.fail(&HardwareError{Op: "data write", Err: err})
	}
	c.logDebug("data write", "addr", fmt.Sprintf("0x%08X", addr), "words", len(words))
	return nil
}

// DataErase erases the page or bank containing addr. Page erase requires
// the erase capability on the owning region; bank erase requires the
// global bank-erase enable bit. When verify-after-erase is enabled the
// erased span is read back and compared against the erased value.
func (c *Controller) DataErase(addr uint32, eraseType EraseType) error {
	if addr >= DataBytes {
		return c.fail(&RangeError{Op: "data erase", Addr: addr, Limit: DataBytes})
	}

	switch eraseType {
	case EraseTypePage:
		page := addr / PageBytes
		perms, _, locked := c.store.dataPageState(page)
		if locked || !perms.grants(capErase) {
			return c.fail(&AccessError{Op: "data erase", Need: capErase.String()})
		}
		if err := c.array.EraseDataPage(addr - addr%PageBytes); err != nil {
			return c.fail(&HardwareError{Op: "data erase", Err: err})
		}
	case EraseTypeBank:
		if !c.store.bankEraseEnabled {
			return c.fail(&AccessError{Op: "data erase", Need: "bank erase"})
		}
		if err := c.array.EraseDataBank(addr / BankBytes); err != nil {
			return c.fail(&HardwareError{Op: "data erase", Err: err})
		}
	default:
		return c.fail(&RangeError{Op: "data erase", Addr: addr, Limit: DataBytes})
	}

	c.logDebug("data erase", "addr", fmt.Sprintf("0x%08X", addr), "type", eraseType.String())

	if c.config.VerifyAfterErase {
		return c.verifyDataErased("data erase", addr, eraseType)
	}
	return nil
}

// InfoRead reads len(words) words from an info page starting at the given
// byte offset. A zero word count is a trivial success.
func (c *Controller) InfoRead(page InfoPage, offset uint32, words []uint32) error {
	if len(words) == 0 {
		return nil
	}
	if err := checkInfoSpan("info read", page, offset, len(words)); err != nil {
		return c.fail(err)
	}
	if !c.store.infoState(page).perms.grants(capRead) {
		return c.fail(&AccessError{Op: "info read", Need: capRead.String()})
	}
	if err := c.array.ReadInfo(page.Bank, page.Page, offset, words); err != nil {
		return c.fail(&HardwareError{Op: "info read", Err: err})
	}
	return nil
}

// InfoWrite programs len(words) words to an info page starting at the
// given byte offset. A zero word count is a trivial success.
func (c *Controller) InfoWrite(page InfoPage, offset uint32, words []uint32) error {
	if len(words) == 0 {
		return nil
	}
	if err := checkInfoSpan("info write", page, offset, len(words)); err != nil {
		return c.fail(err)
	}
	if !c.store.infoState(page).perms.grants(capWrite) {
		return c.fail(&AccessError{Op: "info write", Need: capWrite.String()})
	}
	if err := c.array.WriteInfo(page.Bank, page.Page, offset, words); err != nil {
		return c.fail(&HardwareError{Op: "info write", Err: err})
	}
	c.logDebug("info write", "bank", page.Bank, "page", page.Page, "offset", offset, "words", len(words))
	return nil
}

// InfoErase erases a single info page, or the entire info partition of
// the page's bank when eraseType is EraseTypeBank. Bank scope requires
// the global bank-erase enable bit.
func (c *Controller) InfoErase(page InfoPage, eraseType EraseType) error {
	if !page.Valid() {
		return c.fail(&RangeError{Op: "info erase", Addr: page.Page, Limit: InfoPagesPerBank})
	}

	switch eraseType {
	case EraseTypePage:
		if !c.store.infoState(page).perms.grants(capErase) {
			return c.fail(&AccessError{Op: "info erase", Need: capErase.String()})
		}
		if err := c.array.EraseInfoPage(page.Bank, page.Page); err != nil {
			return c.fail(&HardwareError{Op: "info erase", Err: err})
		}
	case EraseTypeBank:
		if !c.store.bankEraseEnabled {
			return c.fail(&AccessError{Op: "info erase", Need: "bank erase"})
		}
		if err := c.array.EraseInfoBank(page.Bank); err != nil {
			return c.fail(&HardwareError{Op: "info erase", Err: err})
		}
	default:
		return c.fail(&RangeError{Op: "info erase", Addr: page.Page, Limit: InfoPagesPerBank})
	}

	c.logDebug("info erase", "bank", page.Bank, "page", page.Page, "type", eraseType.String())

	if c.config.VerifyAfterErase {
		return c.verifyInfoErased("info erase", page, eraseType)
	}
	return nil
}

// DataDefaultPermsSet sets the process-wide default capability set applied
// to data pages not claimed by any declared region.
func (c *Controller) DataDefaultPermsSet(perms Perms) {
	c.store.defaultPerms = perms
}

// DataDefaultPermsGet returns the process-wide default capability set.
func (c *Controller) DataDefaultPermsGet() Perms {
	return c.store.defaultPerms
}

// DataDefaultCfgSet sets the process-wide default configuration applied to
// data pages not claimed by any declared region.
func (c *Controller) DataDefaultCfgSet(cfg Cfg) {
	c.store.defaultCfg = cfg
}

// DataDefaultCfgGet returns the process-wide default configuration.
func (c *Controller) DataDefaultCfgGet() Cfg {
	return c.store.defaultCfg
}

// InfoPermsSet sets the capability set of a single info page. Fails with
// LockedError once the page has been locked down.
func (c *Controller) InfoPermsSet(page InfoPage, perms Perms) error {
	if err := c.store.setInfoPerms(page, perms); err != nil {
		return c.fail(err)
	}
	return nil
}

// InfoPermsGet returns the capability set of an info page. Unconfigured
// and invalid pages report no capabilities.
func (c *Controller) InfoPermsGet(page InfoPage) Perms {
	return c.store.infoState(page).perms
}

// InfoCfgSet sets the configuration of a single info page. Fails with
// LockedError once the page has been locked down.
func (c *Controller) InfoCfgSet(page InfoPage, cfg Cfg) error {
	if err := c.store.setInfoCfg(page, cfg); err != nil {
		return c.fail(err)
	}
	return nil
}

// InfoCfgGet returns the configuration of an info page.
func (c *Controller) InfoCfgGet(page InfoPage) Cfg {
	return c.store.infoState(page).cfg
}

// DataRegionProtect declares a data region: page range, capabilities,
// configuration and optionally the terminal lock. Locking is per session:
// once a region is locked its stored state never changes again until
// power cycle, and further write or erase access to its pages is denied.
// Protecting an already-locked region fails with LockedError.
func (c *Controller) DataRegionProtect(region RegionIndex, pageOffset, numPages uint32, perms Perms, cfg Cfg, lock bool) error {
	if err := c.store.protect(region, pageOffset, numPages, perms, cfg, lock); err != nil {
		return c.fail(err)
	}
	c.logInfo("data region protected",
		"region", int(region),
		"page_offset", pageOffset,
		"num_pages", numPages,
		"locked", lock,
	)
	return nil
}

// BankErasePermsSet sets the global bank-erase enable bit. The bit gates
// every bank-scope erase and is settable only until creator lockdown,
// after which it is forced off and further calls fail with LockedError.
func (c *Controller) BankErasePermsSet(enable bool) error {
	if err := c.store.setBankEraseEnabled(enable); err != nil {
		return c.fail(err)
	}
	return nil
}

// ExecSet sets the execute-permission value, independent of the
// read/write/erase capabilities. Instruction fetch from flash is enabled
// only while the value equals ExecEnable.
func (c *Controller) ExecSet(execVal uint32) {
	c.execVal = execVal
	c.logDebug("exec set", "enabled", execVal == ExecEnable)
}

// Exec returns the last value passed to ExecSet.
func (c *Controller) Exec() uint32 {
	return c.execVal
}

// CreatorInfoPagesLockdown irreversibly locks all creator info pages for
// the remainder of the boot session: their capabilities are cleared and
// further permission or configuration changes fail with LockedError. The
// bank-erase enable bit is forced off at the same time.
//
// Lockdown is idempotent: a second call is a no-op success and changes no
// further state.
func (c *Controller) CreatorInfoPagesLockdown() {
	if c.store.lockdownCreator() {
		c.logInfo("creator info pages locked down", "pages", len(c.config.CreatorPages))
	}
}

// fail latches the outcome's category bit into the fault accumulator and
// returns the outcome unchanged.
func (c *Controller) fail(err error) error {
	c.faults |= errorCodeBit(err)
	return err
}

// checkDataSpan validates a word-aligned byte address and word count
// against the data partition bounds.
func checkDataSpan(op string, addr uint32, words int) error {
	if addr%WordBytes != 0 || uint64(addr)+uint64(words)*WordBytes > DataBytes {
		return &RangeError{Op: op, Addr: addr, Words: words, Limit: DataBytes}
	}
	return nil
}

// checkInfoSpan validates a word-aligned offset and word count against a
// single info page.
func checkInfoSpan(op string, page InfoPage, offset uint32, words int) error {
	if !page.Valid() {
		return &RangeError{Op: op, Addr: page.Page, Words: words, Limit: InfoPagesPerBank}
	}
	if offset%WordBytes != 0 || uint64(offset)+uint64(words)*WordBytes > PageBytes {
		return &RangeError{Op: op, Addr: offset, Words: words, Limit: PageBytes}
	}
	return nil
}

// checkDataPerms verifies that every page touched by the span grants the
// required capability. Locked regions additionally refuse write and erase
// access regardless of their stored capabilities; reads keep following
// the stored read permission.
func (c *Controller) checkDataPerms(op string, need capability, addr uint32, words int) error {
	first := addr / PageBytes
	last := (addr + uint32(words)*WordBytes - 1) / PageBytes
	for page := first; page <= last; page++ {
		perms, _, locked := c.store.dataPageState(page)
		if locked && need != capRead {
			return &AccessError{Op: op, Need: need.String()}
		}
		if !perms.grants(need) {
			return &AccessError{Op: op, Need: need.String()}
		}
	}
	return nil
}

// logDebug logs a debug message if a logger is configured.
func (c *Controller) logDebug(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (c *Controller) logInfo(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (c *Controller) logError(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Error(msg, keysAndValues...)
	}
}
