package bridge

// BridgeProtocolVersion is the bridge MCU wire protocol version
// implemented by this package.
const BridgeProtocolVersion = "1.0"

// Frame structure constants.
const (
	// StartOfPacket is the frame start marker (0x01)
	StartOfPacket = 0x01

	// EndOfPacket is the frame end marker (0x17)
	EndOfPacket = 0x17

	// MinFrameSize is the minimum frame size in bytes:
	// SOP(1) + OP/STATUS(1) + LEN(2) + CRC(2) + EOP(1)
	MinFrameSize = 7
)

// Opcodes understood by the bridge MCU.
const (
	// OpPing checks that the bridge and its attached array are alive
	OpPing = 0x20

	// OpDataRead reads words from the data partition
	OpDataRead = 0x21

	// OpDataWrite programs words into the data partition
	OpDataWrite = 0x22

	// OpDataErasePage erases a single data page
	OpDataErasePage = 0x23

	// OpDataEraseBank erases a whole data bank
	OpDataEraseBank = 0x24

	// OpInfoRead reads words from an info page
	OpInfoRead = 0x25

	// OpInfoWrite programs words into an info page
	OpInfoWrite = 0x26

	// OpInfoErasePage erases a single info page
	OpInfoErasePage = 0x27

	// OpInfoEraseBank erases a bank's whole info partition
	OpInfoEraseBank = 0x28
)

// Status codes returned by the bridge MCU.
const (
	// StatusSuccess indicates the operation completed on the array
	StatusSuccess = 0x00

	// ErrCRC indicates the bridge received a frame with a bad CRC
	ErrCRC = 0x01

	// ErrOp indicates the opcode is not recognized
	ErrOp = 0x02

	// ErrLength indicates the payload length does not match the opcode
	ErrLength = 0x03

	// ErrAddr indicates an address outside the attached array
	ErrAddr = 0x04

	// ErrFault indicates the array reported a fault during the operation
	ErrFault = 0x05

	// ErrBusy indicates the bridge is still completing a previous
	// operation
	ErrBusy = 0x06
)

// MaxDataWords is the largest word count per read or write frame. Longer
// spans are split into multiple frames by the Bridge.
const MaxDataWords = 64

// Request payload sizes per opcode (fixed part, excluding write data).
const (
	// DataReadPayloadSize is ADDR(4) + COUNT(2)
	DataReadPayloadSize = 6

	// DataWriteHeaderSize is ADDR(4) preceding the word data
	DataWriteHeaderSize = 4

	// DataErasePagePayloadSize is ADDR(4)
	DataErasePagePayloadSize = 4

	// BankPayloadSize is BANK(1)
	BankPayloadSize = 1

	// InfoReadPayloadSize is BANK(1) + PAGE(1) + OFFSET(2) + COUNT(2)
	InfoReadPayloadSize = 6

	// InfoWriteHeaderSize is BANK(1) + PAGE(1) + OFFSET(2) preceding the
	// word data
	InfoWriteHeaderSize = 4

	// InfoErasePagePayloadSize is BANK(1) + PAGE(1)
	InfoErasePagePayloadSize = 2
)

// DefaultResponseBufferSize is the default buffer size for reading
// responses. Large enough for a full MaxDataWords read response.
const DefaultResponseBufferSize = 512
