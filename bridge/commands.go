package bridge

import (
	"encoding/binary"
	"fmt"
)

// appendFrame assembles a complete command frame around the given opcode
// and payload.
//
// Frame structure:
//
//	[SOP][OP][LEN_L][LEN_H][PAYLOAD...][CRC_L][CRC_H][EOP]
func appendFrame(op byte, payload []byte) []byte {
	frame := make([]byte, 0, MinFrameSize+len(payload))

	frame = append(frame, StartOfPacket)
	frame = append(frame, op)
	frame = binary.LittleEndian.AppendUint16(frame, uint16(len(payload)))
	frame = append(frame, payload...)

	// CRC covers OP, LEN and PAYLOAD, excluding SOP
	frame = binary.LittleEndian.AppendUint16(frame, calculateCRC16(frame[1:]))
	frame = append(frame, EndOfPacket)

	return frame
}

// BuildPingCmd constructs a Ping command frame.
func BuildPingCmd() []byte {
	return appendFrame(OpPing, nil)
}

// BuildDataReadCmd constructs a Data Read command frame.
//
// Payload structure:
//
//	[ADDR(4)][COUNT(2)]
func BuildDataReadCmd(addr uint32, count int) ([]byte, error) {
	if count <= 0 || count > MaxDataWords {
		return nil, fmt.Errorf("word count must be 1-%d, got %d", MaxDataWords, count)
	}

	payload := make([]byte, 0, DataReadPayloadSize)
	payload = binary.LittleEndian.AppendUint32(payload, addr)
	payload = binary.LittleEndian.AppendUint16(payload, uint16(count))

	return appendFrame(OpDataRead, payload), nil
}

// BuildDataWriteCmd constructs a Data Write command frame.
//
// Payload structure:
//
//	[ADDR(4)][WORDS(4*n)]
func BuildDataWriteCmd(addr uint32, words []uint32) ([]byte, error) {
	if len(words) == 0 || len(words) > MaxDataWords {
		return nil, fmt.Errorf("word count must be 1-%d, got %d", MaxDataWords, len(words))
	}

	payload := make([]byte, 0, DataWriteHeaderSize+len(words)*4)
	payload = binary.LittleEndian.AppendUint32(payload, addr)
	for _, w := range words {
		payload = binary.LittleEndian.AppendUint32(payload, w)
	}

	return appendFrame(OpDataWrite, payload), nil
}

// BuildDataErasePageCmd constructs a Data Erase Page command frame.
//
// Payload structure:
//
//	[ADDR(4)]
func BuildDataErasePageCmd(addr uint32) []byte {
	payload := binary.LittleEndian.AppendUint32(make([]byte, 0, DataErasePagePayloadSize), addr)
	return appendFrame(OpDataErasePage, payload)
}

// BuildDataEraseBankCmd constructs a Data Erase Bank command frame.
//
// Payload structure:
//
//	[BANK(1)]
func BuildDataEraseBankCmd(bank uint32) ([]byte, error) {
	if bank > 0xFF {
		return nil, fmt.Errorf("bank %d does not fit the wire format", bank)
	}
	return appendFrame(OpDataEraseBank, []byte{byte(bank)}), nil
}

// BuildInfoReadCmd constructs an Info Read command frame.
//
// Payload structure:
//
//	[BANK(1)][PAGE(1)][OFFSET(2)][COUNT(2)]
func BuildInfoReadCmd(bank, page, offset uint32, count int) ([]byte, error) {
	if count <= 0 || count > MaxDataWords {
		return nil, fmt.Errorf("word count must be 1-%d, got %d", MaxDataWords, count)
	}
	if bank > 0xFF || page > 0xFF || offset > 0xFFFF {
		return nil, fmt.Errorf("info page bank %d page %d offset %d does not fit the wire format", bank, page, offset)
	}

	payload := make([]byte, 0, InfoReadPayloadSize)
	payload = append(payload, byte(bank), byte(page))
	payload = binary.LittleEndian.AppendUint16(payload, uint16(offset))
	payload = binary.LittleEndian.AppendUint16(payload, uint16(count))

	return appendFrame(OpInfoRead, payload), nil
}

// BuildInfoWriteCmd constructs an Info Write command frame.
//
// Payload structure:
//
//	[BANK(1)][PAGE(1)][OFFSET(2)][WORDS(4*n)]
func BuildInfoWriteCmd(bank, page, offset uint32, words []uint32) ([]byte, error) {
	if len(words) == 0 || len(words) > MaxDataWords {
		return nil, fmt.Errorf("word count must be 1-%d, got %d", MaxDataWords, len(words))
	}
	if bank > 0xFF || page > 0xFF || offset > 0xFFFF {
		return nil, fmt.Errorf("info page bank %d page %d offset %d does not fit the wire format", bank, page, offset)
	}

	payload := make([]byte, 0, InfoWriteHeaderSize+len(words)*4)
	payload = append(payload, byte(bank), byte(page))
	payload = binary.LittleEndian.AppendUint16(payload, uint16(offset))
	for _, w := range words {
		payload = binary.LittleEndian.AppendUint32(payload, w)
	}

	return appendFrame(OpInfoWrite, payload), nil
}

// BuildInfoErasePageCmd constructs an Info Erase Page command frame.
//
// Payload structure:
//
//	[BANK(1)][PAGE(1)]
func BuildInfoErasePageCmd(bank, page uint32) ([]byte, error) {
	if bank > 0xFF || page > 0xFF {
		return nil, fmt.Errorf("info page bank %d page %d does not fit the wire format", bank, page)
	}
	return appendFrame(OpInfoErasePage, []byte{byte(bank), byte(page)}), nil
}

// BuildInfoEraseBankCmd constructs an Info Erase Bank command frame.
//
// Payload structure:
//
//	[BANK(1)]
func BuildInfoEraseBankCmd(bank uint32) ([]byte, error) {
	if bank > 0xFF {
		return nil, fmt.Errorf("bank %d does not fit the wire format", bank)
	}
	return appendFrame(OpInfoEraseBank, []byte{byte(bank)}), nil
}
