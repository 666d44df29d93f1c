package flashctrl

import "fmt"

// regionConfig holds one data region's declaration.
type regionConfig struct {
	configured bool
	pageOffset uint32
	numPages   uint32
	perms      Perms
	cfg        Cfg
	locked     bool
}

// contains reports whether the region's declared page range covers the
// given absolute data page index.
func (r *regionConfig) contains(page uint32) bool {
	return r.configured && page >= r.pageOffset && page < r.pageOffset+r.numPages
}

// infoConfig holds one info page's permission and configuration state.
// The zero value grants nothing: info pages are inaccessible until
// explicitly configured.
type infoConfig struct {
	perms  Perms
	cfg    Cfg
	locked bool
}

// store owns all permission, configuration and lock state for one boot
// session. The controller consults it before every array access and never
// caches its answers; locked entries refuse mutation until power cycle.
type store struct {
	defaultPerms Perms
	defaultCfg   Cfg

	regions [RegionCount]regionConfig
	info    map[InfoPage]infoConfig

	bankEraseEnabled bool
	lockdownDone     bool
	creatorPages     []InfoPage
}

func newStore(creatorPages []InfoPage) *store {
	return &store{
		info:         make(map[InfoPage]infoConfig),
		creatorPages: creatorPages,
	}
}

// protect declares a data region: page range, capabilities, configuration
// and optionally the terminal lock. Redeclaring an unlocked region is
// allowed and replaces its state; redeclaring a locked region is rejected
// with LockedError and leaves the stored state untouched.
func (s *store) protect(region RegionIndex, pageOffset, numPages uint32, perms Perms, cfg Cfg, lock bool) error {
	if region < 0 || int(region) >= RegionCount {
		return &RangeError{Op: "region protect", Addr: uint32(region), Limit: RegionCount}
	}
	if numPages == 0 || pageOffset > BankCount*BankPages || numPages > BankCount*BankPages-pageOffset {
		return &RangeError{Op: "region protect", Addr: pageOffset, Words: int(numPages), Limit: BankCount * BankPages}
	}

	r := &s.regions[region]
	if r.locked {
		return &LockedError{What: fmt.Sprintf("data region %d", region)}
	}

	*r = regionConfig{
		configured: true,
		pageOffset: pageOffset,
		numPages:   numPages,
		perms:      perms,
		cfg:        cfg,
		locked:     lock,
	}
	return nil
}

// dataPageState resolves an absolute data page index to the permission
// state that governs it: the lowest-index declared region containing the
// page, or the process-wide defaults when no region claims it.
func (s *store) dataPageState(page uint32) (perms Perms, cfg Cfg, locked bool) {
	for i := range s.regions {
		if r := &s.regions[i]; r.contains(page) {
			return r.perms, r.cfg, r.locked
		}
	}
	return s.defaultPerms, s.defaultCfg, false
}

// infoState returns the permission state of an info page. Unconfigured
// pages report the zero state, which grants nothing.
func (s *store) infoState(p InfoPage) infoConfig {
	return s.info[p]
}

func (s *store) setInfoPerms(p InfoPage, perms Perms) error {
	if !p.Valid() {
		return &RangeError{Op: "info perms set", Addr: p.Page, Limit: InfoPagesPerBank}
	}
	st := s.info[p]
	if st.locked {
		return &LockedError{What: infoPageName(p)}
	}
	st.perms = perms
	s.info[p] = st
	return nil
}

func (s *store) setInfoCfg(p InfoPage, cfg Cfg) error {
	if !p.Valid() {
		return &RangeError{Op: "info cfg set", Addr: p.Page, Limit: InfoPagesPerBank}
	}
	st := s.info[p]
	if st.locked {
		return &LockedError{What: infoPageName(p)}
	}
	st.cfg = cfg
	s.info[p] = st
	return nil
}

// setBankEraseEnabled flips the global bank-erase enable bit. The bit is
// settable only before lockdown; lockdown forces it off permanently.
func (s *store) setBankEraseEnabled(enable bool) error {
	if s.lockdownDone {
		return &LockedError{What: "bank erase enable"}
	}
	s.bankEraseEnabled = enable
	return nil
}

// lockdownCreator freezes every creator info page in one irreversible
// step: capabilities and configuration are cleared and the pages refuse
// all further permission or configuration changes. The bank-erase enable
// bit is forced off and locked at the same time.
//
// Returns true on the first invocation; subsequent calls are no-ops.
func (s *store) lockdownCreator() bool {
	if s.lockdownDone {
		return false
	}
	s.lockdownDone = true
	s.bankEraseEnabled = false
	for _, p := range s.creatorPages {
		s.info[p] = infoConfig{locked: true}
	}
	return true
}

func infoPageName(p InfoPage) string {
	return fmt.Sprintf("info page bank %d page %d", p.Bank, p.Page)
}
