package bridge

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"

	"github.com/moffa90/go-flashctrl/flashctrl"
)

// Bridge drives a flash array that sits behind a serial-attached bridge
// MCU, for exercising an external flash chip in hardware-in-the-loop
// setups. It implements the flashctrl.Array driver contract, so a
// Controller built over it applies the same permission model to the
// external chip as to on-chip flash.
//
// Bridge performs no permission checking of its own; it is the raw array
// leg below the controller.
type Bridge struct {
	device io.ReadWriter
	port   serial.Port
	config Config
}

// compile-time check against the driver contract
var _ flashctrl.Array = (*Bridge)(nil)

// Config holds the bridge configuration.
type Config struct {
	// ChunkWords is the maximum word count per wire frame
	ChunkWords int

	// ReadTimeout bounds how long a response is awaited
	ReadTimeout time.Duration
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		ChunkWords:  MaxDataWords,
		ReadTimeout: 2 * time.Second,
	}
}

// Option is a functional option for configuring the Bridge.
type Option func(*Config)

// WithChunkWords caps the word count per wire frame. Values outside
// 1..MaxDataWords are ignored.
func WithChunkWords(words int) Option {
	return func(c *Config) {
		if words > 0 && words <= MaxDataWords {
			c.ChunkWords = words
		}
	}
}

// WithReadTimeout sets the response timeout applied when opening a serial
// port with Open.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ReadTimeout = timeout
		}
	}
}

// New creates a Bridge over the given device. The device must implement
// io.ReadWriter for communication with the bridge MCU.
//
// Example:
//
//	port := myserial.Open("ttyUSB0")
//	array := bridge.New(port)
//	ctrl := flashctrl.New(array)
func New(device io.ReadWriter, opts ...Option) *Bridge {
	if device == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Bridge{
		device: device,
		config: cfg,
	}
}

// Open opens the named serial port and returns a Bridge bound to it.
// Close releases the port.
//
// Example:
//
//	array, err := bridge.Open("/dev/ttyUSB0", 115200)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer array.Close()
func Open(portName string, baudRate int, opts ...Option) (*Bridge, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", portName, err)
	}

	b := New(port, opts...)
	b.port = port

	if err := port.SetReadTimeout(b.config.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("reset input buffer: %w", err)
	}

	return b, nil
}

// Close releases the underlying serial port, if the Bridge owns one.
func (b *Bridge) Close() error {
	if b.port != nil {
		return b.port.Close()
	}
	return nil
}

// Probe pings the bridge MCU.
func (b *Bridge) Probe() error {
	_, err := b.roundTrip("ping", BuildPingCmd())
	return err
}

func (b *Bridge) ReadData(addr uint32, words []uint32) error {
	for len(words) > 0 {
		n := min(len(words), b.config.ChunkWords)

		cmd, err := BuildDataReadCmd(addr, n)
		if err != nil {
			return err
		}
		data, err := b.roundTrip("data read", cmd)
		if err != nil {
			return err
		}
		if err := ParseReadResponse(data, words[:n]); err != nil {
			return err
		}

		words = words[n:]
		addr += uint32(n) * flashctrl.WordBytes
	}
	return nil
}

func (b *Bridge) WriteData(addr uint32, words []uint32) error {
	for len(words) > 0 {
		n := min(len(words), b.config.ChunkWords)

		cmd, err := BuildDataWriteCmd(addr, words[:n])
		if err != nil {
			return err
		}
		if _, err := b.roundTrip("data write", cmd); err != nil {
			return err
		}

		words = words[n:]
		addr += uint32(n) * flashctrl.WordBytes
	}
	return nil
}

func (b *Bridge) EraseDataPage(addr uint32) error {
	_, err := b.roundTrip("data erase page", BuildDataErasePageCmd(addr))
	return err
}

func (b *Bridge) EraseDataBank(bank uint32) error {
	cmd, err := BuildDataEraseBankCmd(bank)
	if err != nil {
		return err
	}
	_, err = b.roundTrip("data erase bank", cmd)
	return err
}

func (b *Bridge) ReadInfo(bank, page, offset uint32, words []uint32) error {
	for len(words) > 0 {
		n := min(len(words), b.config.ChunkWords)

		cmd, err := BuildInfoReadCmd(bank, page, offset, n)
		if err != nil {
			return err
		}
		data, err := b.roundTrip("info read", cmd)
		if err != nil {
			return err
		}
		if err := ParseReadResponse(data, words[:n]); err != nil {
			return err
		}

		words = words[n:]
		offset += uint32(n) * flashctrl.WordBytes
	}
	return nil
}

func (b *Bridge) WriteInfo(bank, page, offset uint32, words []uint32) error {
	for len(words) > 0 {
		n := min(len(words), b.config.ChunkWords)

		cmd, err := BuildInfoWriteCmd(bank, page, offset, words[:n])
		if err != nil {
			return err
		}
		if _, err := b.roundTrip("info write", cmd); err != nil {
			return err
		}

		words = words[n:]
		offset += uint32(n) * flashctrl.WordBytes
	}
	return nil
}

func (b *Bridge) EraseInfoPage(bank, page uint32) error {
	cmd, err := BuildInfoErasePageCmd(bank, page)
	if err != nil {
		return err
	}
	_, err = b.roundTrip("info erase page", cmd)
	return err
}

func (b *Bridge) EraseInfoBank(bank uint32) error {
	cmd, err := BuildInfoEraseBankCmd(bank)
	if err != nil {
		return err
	}
	_, err = b.roundTrip("info erase bank", cmd)
	return err
}

// roundTrip sends a command frame and waits for the matching response.
// A non-success status is returned as StatusError.
func (b *Bridge) roundTrip(operation string, cmd []byte) ([]byte, error) {
	if _, err := b.device.Write(cmd); err != nil {
		return nil, fmt.Errorf("write command: %w", err)
	}

	frame, err := b.readFrame()
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	statusCode, data, err := ParseResponse(frame)
	if err != nil {
		return nil, err
	}
	if statusCode != StatusSuccess {
		return nil, &StatusError{Operation: operation, StatusCode: statusCode}
	}

	return data, nil
}

// readFrame accumulates reads until a complete frame is buffered. Serial
// reads may return partial frames; a zero-byte read means the port's read
// timeout expired.
func (b *Bridge) readFrame() ([]byte, error) {
	buf := make([]byte, 0, DefaultResponseBufferSize)
	tmp := make([]byte, DefaultResponseBufferSize)

	for {
		n, err := b.device.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("timeout with %d bytes buffered", len(buf))
		}

		if len(buf) < 4 {
			continue
		}
		frameSize := MinFrameSize + int(binary.LittleEndian.Uint16(buf[2:4]))
		if len(buf) >= frameSize {
			return buf[:frameSize], nil
		}
	}
}
