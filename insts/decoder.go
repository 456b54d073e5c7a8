package insts

// Field positions within the 16-bit instruction word.
const (
	opcodeShift = 11
	regAShift   = 8
	regBShift   = 5

	regMask  = 0x7
	immMask  = 0xFF
	wordMask = 0xFFFF
)

// Decoder decodes TC16 machine words into instructions.
//
// Decoding is a pure, total function: every 16-bit word decodes to some
// instruction. There is no error path; undefined opcodes are reported as-is
// and execute as no-ops.
type Decoder struct{}

// NewDecoder creates a new TC16 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 16-bit TC16 instruction word.
func (d *Decoder) Decode(word uint16) *Instruction {
	return &Instruction{
		Word: word,
		Op:   Op(word >> opcodeShift),
		RegA: uint8((word >> regAShift) & regMask),
		RegB: uint8((word >> regBShift) & regMask),
		Imm:  uint8(word & immMask),
	}
}
