package sequencer

import (
	"github.com/sarchlab/tc16sim/emu"
	"github.com/sarchlab/tc16sim/insts"
)

// Each stage returns a fresh latch value rather than mutating shared state:
// the ordering invariant is carried by value passing, so a later step can
// only ever see what the earlier step of the same instruction produced.

// FetchStage reads instruction words from the instruction store.
type FetchStage struct {
	store *emu.InstStore
}

// NewFetchStage creates a new fetch stage.
func NewFetchStage(store *emu.InstStore) *FetchStage {
	return &FetchStage{store: store}
}

// Fetch reads the instruction at pc and latches it for decode.
func (s *FetchStage) Fetch(pc uint8) FDRegister {
	return FDRegister{
		Valid: true,
		PC:    pc,
		Word:  s.store.Fetch(pc),
	}
}

// DecodeStage splits the instruction word into fields and performs the
// operand reads: both register operands and the data-memory word at the
// instruction's address field. The address is latched here and not touched
// again until write-back consumes it.
type DecodeStage struct {
	regFile *emu.RegFile
	memory  *emu.Memory
	decoder *insts.Decoder
}

// NewDecodeStage creates a new decode/operand-read stage.
func NewDecodeStage(regFile *emu.RegFile, memory *emu.Memory) *DecodeStage {
	return &DecodeStage{
		regFile: regFile,
		memory:  memory,
		decoder: insts.NewDecoder(),
	}
}

// DecodeRead decodes the fetched word and reads the operands.
func (s *DecodeStage) DecodeRead(fd FDRegister) DXRegister {
	inst := s.decoder.Decode(fd.Word)
	return DXRegister{
		Valid:    fd.Valid,
		PC:       fd.PC,
		Inst:     inst,
		AValue:   s.regFile.Read(inst.RegA),
		BValue:   s.regFile.Read(inst.RegB),
		Addr:     inst.Imm,
		MemValue: s.memory.Read(inst.Imm),
	}
}

// ExecuteStage runs the execution unit over the latched operands.
type ExecuteStage struct {
	unit *emu.ExecUnit
}

// NewExecuteStage creates a new execute stage.
func NewExecuteStage() *ExecuteStage {
	return &ExecuteStage{unit: emu.NewExecUnit()}
}

// Execute computes the write-back commands. The address is copied from the
// DX latch into the XW latch unchanged; execute never recomputes it.
func (s *ExecuteStage) Execute(dx DXRegister, flagEQ bool) XWRegister {
	res := s.unit.Execute(dx.Inst, dx.AValue, dx.BValue, dx.MemValue, dx.PC, flagEQ)
	return XWRegister{
		Valid:    dx.Valid,
		Addr:     dx.Addr,
		RegIndex: dx.Inst.RegA,
		RegValue: res.Value,
		RegWrite: res.RegWrite,
		MemValue: res.MemValue,
		MemWrite: res.MemWrite,
		NextPC:   res.NextPC,
		FlagEQ:   res.FlagEQ,
		Halt:     res.Halt,
	}
}

// WritebackStage commits an instruction's effects to persistent machine
// state. This is the only stage that mutates the register file, data
// memory, comparison flag, or program counter.
type WritebackStage struct {
	regFile *emu.RegFile
	memory  *emu.Memory
}

// NewWritebackStage creates a new write-back stage.
func NewWritebackStage(regFile *emu.RegFile, memory *emu.Memory) *WritebackStage {
	return &WritebackStage{
		regFile: regFile,
		memory:  memory,
	}
}

// Writeback applies the latched commands. Unenabled writes leave the
// register file and memory byte-identical to before.
func (s *WritebackStage) Writeback(xw XWRegister) {
	if !xw.Valid {
		return
	}
	s.regFile.Commit(xw.RegIndex, xw.RegValue, xw.RegWrite)
	s.memory.Write(xw.Addr, xw.MemValue, xw.MemWrite)
	s.regFile.FlagEQ = xw.FlagEQ
	s.regFile.PC = xw.NextPC
}
