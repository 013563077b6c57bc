package protocol

import "testing"

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want byte
	}{
		{"empty", []byte{}, 0x00},
		{"nil", nil, 0x00},
		{"single byte", []byte{0x42}, 0x42},
		{"simple sum", []byte{0x01, 0x02, 0x03}, 0x06},
		{"wraps modulo 256", []byte{0xFF, 0x02}, 0x01},
		{"wraps to zero", []byte{0x80, 0x80}, 0x00},
		{"all registers zero", make([]byte, 25), 0x00},
		{"reference frame", []byte{0x01, 0x00, 0x98, 0x96, 0x80}, 0xAF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum(% X) = 0x%02X, want 0x%02X", tt.data, got, tt.want)
			}
		})
	}
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte{0x00, 0x98, 0x96, 0x80}

	if !VerifyChecksum(data, Checksum(data)) {
		t.Error("VerifyChecksum rejected its own checksum")
	}
	if VerifyChecksum(data, Checksum(data)+1) {
		t.Error("VerifyChecksum accepted a wrong checksum")
	}
}

// Corrupting any single byte must be caught, as long as the corruption
// changes the modulo-256 sum (adding 256 to one byte cannot, but single-bit
// flips always do).
func TestVerifyChecksumDetectsBitFlips(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC}
	sum := Checksum(data)

	for i := range data {
		for bit := 0; bit < 8; bit++ {
			corrupted := make([]byte, len(data))
			copy(corrupted, data)
			corrupted[i] ^= 1 << bit

			if VerifyChecksum(corrupted, sum) {
				t.Errorf("flip of byte %d bit %d not detected", i, bit)
			}
		}
	}
}

func BenchmarkChecksum(b *testing.B) {
	data := make([]byte, RegistersSize)
	for i := range data {
		data[i] = byte(i * 7)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Checksum(data)
	}
}
