// Package bridge implements the wire protocol for a serial-attached
// flash bridge MCU and exposes the attached array through the
// flashctrl.Array driver contract.
//
// # Protocol Overview
//
// The bridge protocol uses a packet-based communication structure:
//
//	Command:  [SOP][OP][LEN_L][LEN_H][PAYLOAD...][CRC_L][CRC_H][EOP]
//	Response: [SOP][STATUS][LEN_L][LEN_H][DATA...][CRC_L][CRC_H][EOP]
//
// Where:
//   - SOP = Start of Packet (0x01)
//   - EOP = End of Packet (0x17)
//   - LEN = 16-bit payload length (little-endian)
//   - CRC = CRC-16-CCITT over OP/STATUS, LEN and payload (little-endian)
//
// # Usage
//
// Open a serial port and hand the bridge to a controller:
//
//	array, err := bridge.Open("/dev/ttyUSB0", 115200)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer array.Close()
//
//	ctrl := flashctrl.New(array)
//	ctrl.Init()
//
// For tests, any io.ReadWriter works:
//
//	array := bridge.New(fakeDevice)
//
// # Command Builders and Response Parsers
//
// The Build* functions create command frames and ParseResponse validates
// and splits response frames:
//
//	frame, err := bridge.BuildDataReadCmd(addr, count)
//	statusCode, data, err := bridge.ParseResponse(response)
//
// Status codes other than StatusSuccess surface as StatusError. The
// controller wraps any bridge error as a HardwareError, so permission
// semantics above the array are unchanged in hardware-in-the-loop runs.
package bridge
