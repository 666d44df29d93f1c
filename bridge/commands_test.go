package bridge

import (
	"encoding/binary"
	"testing"
)

// checkFrame validates the envelope shared by every command frame and
// returns its payload.
func checkFrame(t *testing.T, frame []byte, op byte) []byte {
	t.Helper()

	if len(frame) < MinFrameSize {
		t.Fatalf("frame too short: %d bytes", len(frame))
	}
	if frame[0] != StartOfPacket {
		t.Errorf("frame[0] = 0x%02X, want SOP", frame[0])
	}
	if frame[1] != op {
		t.Errorf("opcode = 0x%02X, want 0x%02X", frame[1], op)
	}
	if frame[len(frame)-1] != EndOfPacket {
		t.Errorf("last byte = 0x%02X, want EOP", frame[len(frame)-1])
	}

	dataLen := binary.LittleEndian.Uint16(frame[2:4])
	if int(dataLen) != len(frame)-MinFrameSize {
		t.Errorf("LEN = %d, want %d", dataLen, len(frame)-MinFrameSize)
	}

	crcExpected := binary.LittleEndian.Uint16(frame[len(frame)-3 : len(frame)-1])
	if crcActual := calculateCRC16(frame[1 : len(frame)-3]); crcActual != crcExpected {
		t.Errorf("CRC = 0x%04X, frame carries 0x%04X", crcActual, crcExpected)
	}

	return frame[4 : 4+dataLen]
}

func TestBuildPingCmd(t *testing.T) {
	frame := BuildPingCmd()
	payload := checkFrame(t, frame, OpPing)
	if len(payload) != 0 {
		t.Errorf("ping payload = %d bytes, want none", len(payload))
	}
}

func TestBuildDataReadCmd(t *testing.T) {
	frame, err := BuildDataReadCmd(0x00012340, 16)
	if err != nil {
		t.Fatalf("BuildDataReadCmd() = %v", err)
	}

	payload := checkFrame(t, frame, OpDataRead)
	if len(payload) != DataReadPayloadSize {
		t.Fatalf("payload = %d bytes, want %d", len(payload), DataReadPayloadSize)
	}
	if addr := binary.LittleEndian.Uint32(payload[0:4]); addr != 0x00012340 {
		t.Errorf("addr = 0x%08X, want 0x00012340", addr)
	}
	if count := binary.LittleEndian.Uint16(payload[4:6]); count != 16 {
		t.Errorf("count = %d, want 16", count)
	}
}

func TestBuildDataReadCmdValidation(t *testing.T) {
	if _, err := BuildDataReadCmd(0, 0); err == nil {
		t.Error("zero count should fail")
	}
	if _, err := BuildDataReadCmd(0, MaxDataWords+1); err == nil {
		t.Error("oversized count should fail")
	}
}

func TestBuildDataWriteCmd(t *testing.T) {
	words := []uint32{0x11223344, 0xAABBCCDD}
	frame, err := BuildDataWriteCmd(0x800, words)
	if err != nil {
		t.Fatalf("BuildDataWriteCmd() = %v", err)
	}

	payload := checkFrame(t, frame, OpDataWrite)
	if len(payload) != DataWriteHeaderSize+len(words)*4 {
		t.Fatalf("payload = %d bytes", len(payload))
	}
	if addr := binary.LittleEndian.Uint32(payload[0:4]); addr != 0x800 {
		t.Errorf("addr = 0x%08X, want 0x800", addr)
	}
	if w := binary.LittleEndian.Uint32(payload[4:8]); w != words[0] {
		t.Errorf("word 0 = 0x%08X, want 0x%08X", w, words[0])
	}
	if w := binary.LittleEndian.Uint32(payload[8:12]); w != words[1] {
		t.Errorf("word 1 = 0x%08X, want 0x%08X", w, words[1])
	}
}

func TestBuildDataWriteCmdValidation(t *testing.T) {
	if _, err := BuildDataWriteCmd(0, nil); err == nil {
		t.Error("empty write should fail")
	}
	if _, err := BuildDataWriteCmd(0, make([]uint32, MaxDataWords+1)); err == nil {
		t.Error("oversized write should fail")
	}
}

func TestBuildEraseCmds(t *testing.T) {
	frame := BuildDataErasePageCmd(0x1000)
	payload := checkFrame(t, frame, OpDataErasePage)
	if addr := binary.LittleEndian.Uint32(payload); addr != 0x1000 {
		t.Errorf("addr = 0x%08X, want 0x1000", addr)
	}

	frame, err := BuildDataEraseBankCmd(1)
	if err != nil {
		t.Fatalf("BuildDataEraseBankCmd() = %v", err)
	}
	payload = checkFrame(t, frame, OpDataEraseBank)
	if len(payload) != BankPayloadSize || payload[0] != 1 {
		t.Errorf("bank payload = %v, want [1]", payload)
	}

	if _, err := BuildDataEraseBankCmd(0x100); err == nil {
		t.Error("bank above wire format limit should fail")
	}
}

func TestBuildInfoCmds(t *testing.T) {
	frame, err := BuildInfoReadCmd(1, 4, 0x20, 8)
	if err != nil {
		t.Fatalf("BuildInfoReadCmd() = %v", err)
	}
	payload := checkFrame(t, frame, OpInfoRead)
	if payload[0] != 1 || payload[1] != 4 {
		t.Errorf("bank/page = %d/%d, want 1/4", payload[0], payload[1])
	}
	if offset := binary.LittleEndian.Uint16(payload[2:4]); offset != 0x20 {
		t.Errorf("offset = 0x%X, want 0x20", offset)
	}
	if count := binary.LittleEndian.Uint16(payload[4:6]); count != 8 {
		t.Errorf("count = %d, want 8", count)
	}

	words := []uint32{0xCAFE}
	frame, err = BuildInfoWriteCmd(0, 2, 0x40, words)
	if err != nil {
		t.Fatalf("BuildInfoWriteCmd() = %v", err)
	}
	payload = checkFrame(t, frame, OpInfoWrite)
	if len(payload) != InfoWriteHeaderSize+4 {
		t.Fatalf("payload = %d bytes", len(payload))
	}
	if w := binary.LittleEndian.Uint32(payload[4:8]); w != 0xCAFE {
		t.Errorf("word = 0x%08X, want 0xCAFE", w)
	}

	frame, err = BuildInfoErasePageCmd(1, 9)
	if err != nil {
		t.Fatalf("BuildInfoErasePageCmd() = %v", err)
	}
	payload = checkFrame(t, frame, OpInfoErasePage)
	if payload[0] != 1 || payload[1] != 9 {
		t.Errorf("bank/page = %d/%d, want 1/9", payload[0], payload[1])
	}

	frame, err = BuildInfoEraseBankCmd(0)
	if err != nil {
		t.Fatalf("BuildInfoEraseBankCmd() = %v", err)
	}
	checkFrame(t, frame, OpInfoEraseBank)
}

func TestBuildInfoCmdValidation(t *testing.T) {
	if _, err := BuildInfoReadCmd(0x100, 0, 0, 1); err == nil {
		t.Error("bank above wire format limit should fail")
	}
	if _, err := BuildInfoWriteCmd(0, 0, 0x10000, []uint32{1}); err == nil {
		t.Error("offset above wire format limit should fail")
	}
	if _, err := BuildInfoWriteCmd(0, 0, 0, nil); err == nil {
		t.Error("empty info write should fail")
	}
}
