package bridge

import "testing"

func TestCalculateCRC16(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint16
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0xFFFF, // initial value, nothing folded in
		},
		{
			name:     "single byte",
			data:     []byte("A"),
			expected: 0xB915,
		},
		{
			name:     "check string",
			data:     []byte("123456789"),
			expected: 0x29B1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calculateCRC16(tt.data)
			if result != tt.expected {
				t.Errorf("calculateCRC16() = 0x%04X, want 0x%04X", result, tt.expected)
			}
		})
	}
}

func TestCRC16DetectsBitFlips(t *testing.T) {
	original := []byte{0x21, 0x06, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x04, 0x00}
	crc := calculateCRC16(original)

	for i := range original {
		flipped := make([]byte, len(original))
		copy(flipped, original)
		flipped[i] ^= 0x01
		if calculateCRC16(flipped) == crc {
			t.Errorf("bit flip at byte %d not detected", i)
		}
	}
}
