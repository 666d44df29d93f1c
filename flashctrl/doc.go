// Package flashctrl provides a permission-gated flash controller
// abstraction for secure-boot firmware environments.
//
// # Overview
//
// The controller mediates all reads, writes and erases of an on-chip
// flash array (a bulk data partition plus fixed-purpose info pages)
// behind a region/page permission model:
//   - Declaring data regions with capabilities, configuration and an
//     optional irreversible lock
//   - Gating every operation on the owning region or page before the
//     array is touched
//   - Verifying post-erase content against the erased value
//   - Aggregating a live status word and a latched fault accumulator
//   - Freezing security-critical creator info pages in one irreversible
//     lockdown step
//
// # Basic Usage
//
// Create a controller over an array backend and grant access before
// operating:
//
//	ctrl := flashctrl.New(sim.New())
//	ctrl.Init()
//
//	ctrl.DataDefaultPermsSet(flashctrl.Perms{Read: true, Write: true, Erase: true})
//
//	data := []uint32{0xDEADBEEF, 0xCAFEF00D}
//	if err := ctrl.DataWrite(0x100, data); err != nil {
//	    log.Fatal(err)
//	}
//
// # Regions and Locking
//
// Data regions carve the bulk array into independently permissioned page
// ranges. A region protected with lock=true is frozen for the remainder
// of the boot session and refuses further writes and erases:
//
//	err := ctrl.DataRegionProtect(0, 0, 4,
//	    flashctrl.Perms{Read: true},
//	    flashctrl.Cfg{ECC: true},
//	    true, // lock
//	)
//
// Creator info pages are frozen collectively and irreversibly:
//
//	ctrl.CreatorInfoPagesLockdown()
//
// # Error Handling
//
// Every operation returns its outcome synchronously as one of a closed
// set of typed errors (AccessError, RangeError, HardwareError,
// VerifyError, LockedError), with Is* predicates for classification. In
// addition each failure ORs a category bit into the latched accumulator,
// which ErrorCodeGet returns and clears:
//
//	if err := ctrl.DataRead(addr, buf); flashctrl.IsAccessDenied(err) {
//	    // capability not granted; buf is untouched
//	}
//	code := ctrl.ErrorCodeGet() // accumulated categories, then cleared
//
// # Concurrency
//
// The controller models an early-boot, single-context environment with no
// scheduler: operations are synchronous, there is no internal locking,
// and non-interruptibility during a call is the caller's responsibility.
package flashctrl
