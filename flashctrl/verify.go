package flashctrl

// DataEraseVerify reads back the page or bank containing addr and
// confirms every word holds the erased value. It is a controller-internal
// read-back, not a host read, so it is range-checked but not gated on the
// read capability. A mismatch reports VerifyError; the erase itself
// cannot be undone.
func (c *Controller) DataEraseVerify(addr uint32, eraseType EraseType) error {
	if addr >= DataBytes {
		return c.fail(&RangeError{Op: "data erase verify", Addr: addr, Limit: DataBytes})
	}
	if eraseType != EraseTypePage && eraseType != EraseTypeBank {
		return c.fail(&RangeError{Op: "data erase verify", Addr: addr, Limit: DataBytes})
	}
	return c.verifyDataErased("data erase verify", addr, eraseType)
}

// verifyDataErased reads the erased data span back one page at a time and
// compares every word against ErasedWord. The first mismatching word is
// reported.
func (c *Controller) verifyDataErased(op string, addr uint32, eraseType EraseType) error {
	start := addr - addr%PageBytes
	pages := uint32(1)
	if eraseType == EraseTypeBank {
		start = addr - addr%BankBytes
		pages = BankPages
	}

	buf := make([]uint32, PageWords)
	for p := uint32(0); p < pages; p++ {
		base := start + p*PageBytes
		if err := c.array.ReadData(base, buf); err != nil {
			return c.fail(&HardwareError{Op: op, Err: err})
		}
		if mismatch, word := firstNonErased(buf); mismatch >= 0 {
			return c.fail(&VerifyError{Addr: base + uint32(mismatch)*WordBytes, Got: word})
		}
	}
	return nil
}

// verifyInfoErased reads back a single info page, or every info page of
// the bank for a bank-scope erase, and compares against ErasedWord.
func (c *Controller) verifyInfoErased(op string, page InfoPage, eraseType EraseType) error {
	first, last := page.Page, page.Page
	if eraseType == EraseTypeBank {
		first, last = 0, InfoPagesPerBank-1
	}

	buf := make([]uint32, PageWords)
	for p := first; p <= last; p++ {
		if err := c.array.ReadInfo(page.Bank, p, 0, buf); err != nil {
			return c.fail(&HardwareError{Op: op, Err: err})
		}
		if mismatch, word := firstNonErased(buf); mismatch >= 0 {
			return c.fail(&VerifyError{Addr: uint32(mismatch) * WordBytes, Got: word})
		}
	}
	return nil
}

// firstNonErased returns the index and value of the first word not equal
// to ErasedWord, or -1 when the whole buffer is erased.
func firstNonErased(words []uint32) (int, uint32) {
	for i, w := range words {
		if w != ErasedWord {
			return i, w
		}
	}
	return -1, 0
}
