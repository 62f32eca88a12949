package bits

// Vector is a growable bit vector with exact width tracking. Index 0 is the
// most significant bit.
type Vector struct {
	bits []byte
}

func NewVector(n int) *Vector {
	return &Vector{bits: make([]byte, n)}
}

func (v *Vector) Len() int {
	return len(v.bits)
}

func (v *Vector) Bit(i int) byte {
	return v.bits[i]
}

// ShiftLeft appends n zero bits, multiplying the value by 2^n.
func (v *Vector) ShiftLeft(n int) *Vector {
	if n > 0 {
		v.bits = append(v.bits, make([]byte, n)...)
	}
	return v
}

// ShiftRight drops the n least significant bits.
func (v *Vector) ShiftRight(n int) *Vector {
	if n >= len(v.bits) {
		v.bits = v.bits[:0]
	} else if n > 0 {
		v.bits = v.bits[:len(v.bits)-n]
	}
	return v
}

// Xor xors o into v with o's most significant bit aligned at offset.
// Bits of o that fall outside v are ignored.
func (v *Vector) Xor(o *Vector, offset int) *Vector {
	for i := 0; i < len(o.bits) && offset+i < len(v.bits); i++ {
		if offset+i >= 0 {
			v.bits[offset+i] ^= o.bits[i]
		}
	}
	return v
}

// Leading returns the index of the first set bit at or after from, or -1.
func (v *Vector) Leading(from int) int {
	for i := from; i < len(v.bits); i++ {
		if v.bits[i] == 1 {
			return i
		}
	}
	return -1
}

// TrimLeft drops leading zero bits.
func (v *Vector) TrimLeft() *Vector {
	idx := v.Leading(0)
	if idx == -1 {
		v.bits = v.bits[:0]
	} else {
		v.bits = v.bits[idx:]
	}
	return v
}

// Tail returns the n least significant bits, left-padded with zeros when the
// vector is shorter than n.
func (v *Vector) Tail(n int) String {
	buf := make([]byte, n)
	for i := range buf {
		src := len(v.bits) - n + i
		if src >= 0 {
			buf[i] = Zero + v.bits[src]
		} else {
			buf[i] = Zero
		}
	}
	return String(buf)
}

func (v *Vector) IsZero() bool {
	return v.Leading(0) == -1
}

func (v *Vector) Clone() *Vector {
	c := NewVector(len(v.bits))
	copy(c.bits, v.bits)
	return c
}

func (v *Vector) Bits() String {
	buf := make([]byte, len(v.bits))
	for i := range v.bits {
		buf[i] = Zero + v.bits[i]
	}
	return String(buf)
}
