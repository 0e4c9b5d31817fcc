package css

import (
	"encoding/binary"
	"math"
)

// OPV is a computed property's storage cell: an opcode saying how to decode
// value, the encoded payload itself, and a flag byte for the CSS-wide
// keywords (inherit/initial/unset/revert) and origin markers that would
// otherwise need their own struct fields. Modeled on the packed "computed
// value" cells in original_source/libcss/src/select/computed.c, which also
// stores style values as a tagged opcode plus a byte payload rather than as
// parsed, typed structs.
type OPV struct {
	opcode uint16
	value  []byte
	flags  uint8
}

const (
	opvInherited uint8 = 1 << iota
	opvInitial
	opvUnset
	opvRevert
)

const (
	opcodeKeyword uint16 = iota
	opcodeLength
	opcodeColor
	opcodePercentage
	opcodeNumber
)

func putUint32String(buf *[]byte, s string) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s)))
	*buf = append(*buf, lenBuf[:]...)
	*buf = append(*buf, s...)
}

func takeUint32String(b []byte, pos *int) string {
	if *pos+4 > len(b) {
		return ""
	}
	n := int(binary.BigEndian.Uint32(b[*pos:]))
	*pos += 4
	if *pos+n > len(b) {
		return ""
	}
	s := string(b[*pos : *pos+n])
	*pos += n
	return s
}

func encodeFloat64(buf *[]byte, f float64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(f))
	*buf = append(*buf, b[:]...)
}

func takeFloat64(b []byte, pos *int) float64 {
	if *pos+8 > len(b) {
		return 0
	}
	f := math.Float64frombits(binary.BigEndian.Uint64(b[*pos:]))
	*pos += 8
	return f
}

// encodeOPV packs a ComputedValue into its bytecode cell.
func encodeOPV(cv *ComputedValue) *OPV {
	if cv == nil {
		return nil
	}

	o := &OPV{}
	if cv.IsInherit {
		o.flags |= opvInherited
	}
	if cv.IsInitial {
		o.flags |= opvInitial
	}
	if cv.IsUnset {
		o.flags |= opvUnset
	}
	if cv.IsRevert {
		o.flags |= opvRevert
	}

	var buf []byte
	switch cv.Value.Type {
	case LengthValue:
		o.opcode = opcodeLength
		encodeFloat64(&buf, cv.Length)
		putUint32String(&buf, cv.Value.Unit)
		putUint32String(&buf, cv.Value.Raw)
	case ColorValue:
		o.opcode = opcodeColor
		buf = append(buf, cv.Color.R, cv.Color.G, cv.Color.B, cv.Color.A)
		putUint32String(&buf, cv.Value.Raw)
	case PercentageValue:
		o.opcode = opcodePercentage
		encodeFloat64(&buf, cv.Length)
		putUint32String(&buf, cv.Value.Raw)
	case NumberValue:
		o.opcode = opcodeNumber
		encodeFloat64(&buf, cv.Length)
		putUint32String(&buf, cv.Value.Raw)
	default:
		o.opcode = opcodeKeyword
		putUint32String(&buf, cv.Keyword)
		putUint32String(&buf, cv.Value.Raw)
	}
	o.value = buf

	return o
}

// decodeOPV unpacks a bytecode cell back into a ComputedValue, the shape the
// rest of the cascade (inheritance, relative-unit resolution, property
// readers) already operates on.
func decodeOPV(o *OPV) *ComputedValue {
	if o == nil {
		return nil
	}

	cv := &ComputedValue{
		IsInherit: o.flags&opvInherited != 0,
		IsInitial: o.flags&opvInitial != 0,
		IsUnset:   o.flags&opvUnset != 0,
		IsRevert:  o.flags&opvRevert != 0,
	}

	pos := 0
	switch o.opcode {
	case opcodeLength:
		cv.Value.Type = LengthValue
		cv.Length = takeFloat64(o.value, &pos)
		cv.Value.Unit = takeUint32String(o.value, &pos)
		cv.Value.Raw = takeUint32String(o.value, &pos)
		cv.Value.Length = cv.Length
	case opcodeColor:
		cv.Value.Type = ColorValue
		if len(o.value) >= 4 {
			cv.Color = Color{R: o.value[0], G: o.value[1], B: o.value[2], A: o.value[3]}
			pos = 4
		}
		cv.Value.Raw = takeUint32String(o.value, &pos)
		cv.Value.Color = cv.Color
	case opcodePercentage:
		cv.Value.Type = PercentageValue
		cv.Length = takeFloat64(o.value, &pos)
		cv.Value.Raw = takeUint32String(o.value, &pos)
		cv.Value.Length = cv.Length
	case opcodeNumber:
		cv.Value.Type = NumberValue
		cv.Length = takeFloat64(o.value, &pos)
		cv.Value.Raw = takeUint32String(o.value, &pos)
		cv.Value.Length = cv.Length
	default:
		cv.Value.Type = KeywordValue
		cv.Keyword = takeUint32String(o.value, &pos)
		cv.Value.Raw = takeUint32String(o.value, &pos)
		cv.Value.Keyword = cv.Keyword
	}

	return cv
}
