// Package sim provides a deterministic in-memory flash array for testing
// software layered above the flash controller without real hardware.
//
// # Overview
//
// sim.Array implements the flashctrl.Array driver contract with fully
// inspectable state and fault injection:
//
//	array := sim.New()
//	ctrl := flashctrl.New(array)
//	ctrl.Init()
//
//	array.SetWriteError(errors.New("prog fault"))
//	err := ctrl.DataWrite(0, []uint32{1}) // surfaces as HardwareError
//
// The array powers up fully erased (every word reads
// flashctrl.ErasedWord). Backdoor accessors (DataWord, Corrupt,
// CorruptInfo) bypass the driver contract for test setup and assertions.
package sim
