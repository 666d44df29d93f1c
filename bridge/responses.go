package bridge

import (
	"encoding/binary"
	"fmt"
)

// ParseResponse extracts the status code and data payload from a response
// frame. Validates frame structure, length and CRC.
//
// Response frame structure:
//
//	[SOP][STATUS][LEN_L][LEN_H][DATA...][CRC_L][CRC_H][EOP]
func ParseResponse(frame []byte) (statusCode byte, data []byte, err error) {
	if len(frame) < MinFrameSize {
		return 0, nil, fmt.Errorf("frame too short: got %d bytes, minimum is %d", len(frame), MinFrameSize)
	}

	if frame[0] != StartOfPacket {
		return 0, nil, fmt.Errorf("invalid start of packet: got 0x%02X, expected 0x%02X", frame[0], StartOfPacket)
	}

	if frame[len(frame)-1] != EndOfPacket {
		return 0, nil, fmt.Errorf("invalid end of packet: got 0x%02X, expected 0x%02X", frame[len(frame)-1], EndOfPacket)
	}

	statusCode = frame[1]
	dataLen := binary.LittleEndian.Uint16(frame[2:4])

	expectedLen := int(MinFrameSize + dataLen)
	if len(frame) != expectedLen {
		return 0, nil, fmt.Errorf("frame length mismatch: got %d bytes, expected %d (MinFrameSize=%d + dataLen=%d)",
			len(frame), expectedLen, MinFrameSize, dataLen)
	}

	crcExpected := binary.LittleEndian.Uint16(frame[len(frame)-3 : len(frame)-1])
	crcActual := calculateCRC16(frame[1 : len(frame)-3])
	if crcExpected != crcActual {
		return 0, nil, fmt.Errorf("CRC mismatch: got 0x%04X, expected 0x%04X", crcActual, crcExpected)
	}

	if dataLen > 0 {
		data = frame[4 : 4+dataLen]
	}

	return statusCode, data, nil
}

// ParseReadResponse decodes the word payload of a Data Read or Info Read
// response into the destination slice. The payload must hold exactly
// len(words) little-endian words.
func ParseReadResponse(data []byte, words []uint32) error {
	if len(data) != len(words)*4 {
		return fmt.Errorf("invalid data length for read response: got %d bytes, expected %d", len(data), len(words)*4)
	}
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return nil
}
