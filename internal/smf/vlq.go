package smf

import "math"

const (
	msbMask      = 1 << 7
	sevenBitMask = 0x7F
)

/*
ReadVarint decodes the variable-length quantity starting at data[start]. Each
byte contributes its low seven bits, most significant group first, and every
byte except the last has the high bit set. It returns the decoded value and the
number of bytes consumed.

There is no limit on the number of bytes read, but a quantity that would not
fit in an int, or that runs past the end of data, fails with ErrMalformedVarint.
*/
func ReadVarint(data []byte, start int) (int, int, error) {
	value := 0
	for i := start; i < len(data); i++ {
		if value > math.MaxInt>>7 {
			break
		}
		value = value<<7 | int(data[i]&sevenBitMask)
		if data[i]&msbMask == 0 {
			return value, i - start + 1, nil
		}
	}
	return 0, 0, &ParseError{Offset: start, Err: ErrMalformedVarint}
}
