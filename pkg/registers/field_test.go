package registers

import "testing"

func TestFieldGet(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		word  uint32
		want  uint32
	}{
		{"low bits", Field{Shift: 0, Width: 3}, 0x0000002D, 0x5},
		{"mid field", Field{Shift: 3, Width: 12}, 0x00007FF8, 0xFFF},
		{"high bit ignored", Field{Shift: 15, Width: 16}, 0xFFFFFFFF, 0xFFFF},
		{"single bit set", Field{Shift: 27, Width: 1}, 1 << 27, 1},
		{"single bit clear", Field{Shift: 27, Width: 1}, ^uint32(1 << 27), 0},
		{"zero word", Field{Shift: 14, Width: 10}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.Get(tt.word); got != tt.want {
				t.Errorf("Get(0x%08X) = 0x%X, want 0x%X", tt.word, got, tt.want)
			}
		})
	}
}

func TestFieldInsert(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		word  uint32
		value uint32
		want  uint32
	}{
		{"into zero word", Field{Shift: 3, Width: 12}, 0, 0xFFF, 0x00007FF8},
		{"clears old value", Field{Shift: 3, Width: 12}, 0x00007FF8, 0x001, 0x00000008},
		{"preserves neighbors", Field{Shift: 3, Width: 12}, 0xFFFFFFFF, 0, 0xFFFF8007},
		{"truncates oversized value", Field{Shift: 0, Width: 3}, 0, 0xFF, 0x7},
		{"truncates at field top", Field{Shift: 15, Width: 16}, 0, 0x12345, 0x2345 << 15},
		{"two bit pattern", Field{Shift: 29, Width: 2}, 0, 0x3, 0x60000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.Insert(tt.word, tt.value); got != tt.want {
				t.Errorf("Insert(0x%08X, 0x%X) = 0x%08X, want 0x%08X", tt.word, tt.value, got, tt.want)
			}
		})
	}
}

// Inserting then extracting any value must return the value masked to the
// field width, and must never disturb bits outside the field.
func TestFieldRoundTrip(t *testing.T) {
	words := []uint32{0x00000000, 0xFFFFFFFF, 0xA5A5A5A5}

	for width := uint(1); width <= 16; width++ {
		for shift := uint(0); shift+width <= 32; shift += 7 {
			f := Field{Shift: shift, Width: width}
			for _, word := range words {
				for _, v := range []uint32{0, 1, 0xFFFFFFFF, 0x12345678} {
					got := f.Insert(word, v)
					want := v & (uint32(1)<<width - 1)
					if extracted := f.Get(got); extracted != want {
						t.Fatalf("Field{%d,%d}: Get(Insert(0x%08X, 0x%X)) = 0x%X, want 0x%X",
							shift, width, word, v, extracted, want)
					}
					if outside := got &^ f.Mask(); outside != word&^f.Mask() {
						t.Fatalf("Field{%d,%d}: Insert disturbed outside bits: 0x%08X -> 0x%08X",
							shift, width, word, got)
					}
				}
			}
		}
	}
}

func TestFieldIsSet(t *testing.T) {
	f := Field{Shift: 29, Width: 2}

	if f.IsSet(0) {
		t.Error("IsSet(0) = true, want false")
	}
	for _, word := range []uint32{1 << 29, 1 << 30, 3 << 29} {
		if !f.IsSet(word) {
			t.Errorf("IsSet(0x%08X) = false, want true", word)
		}
	}
	if f.IsSet(^uint32(3 << 29)) {
		t.Error("IsSet with only outside bits = true, want false")
	}
}

func TestFieldMask(t *testing.T) {
	tests := []struct {
		field Field
		want  uint32
	}{
		{Field{Shift: 0, Width: 3}, 0x00000007},
		{Field{Shift: 3, Width: 12}, 0x00007FF8},
		{Field{Shift: 15, Width: 16}, 0x7FFF8000},
		{Field{Shift: 14, Width: 10}, 0x00FFC000},
		{Field{Shift: 29, Width: 2}, 0x60000000},
	}

	for _, tt := range tests {
		if got := tt.field.Mask(); got != tt.want {
			t.Errorf("Field{%d,%d}.Mask() = 0x%08X, want 0x%08X",
				tt.field.Shift, tt.field.Width, got, tt.want)
		}
	}
}
