package layered

import (
	"fmt"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/utils"
)

const (
	planMagic   uint64 = 0x4e414c5042425845
	planVersion uint32 = 1
)

// Serialize converts a Plan into a byte array for storage or transmission.
// Every integer is a little-endian uint64, except for the uint32 format version
// following the magic.
func (p *Plan) Serialize() []byte {
	o := utils.OutputBuf{}
	o.AppendUint64(planMagic)
	o.AppendUint32(planVersion)
	o.AppendUint64(uint64(p.Parallelism))
	o.AppendUint64(uint64(p.NbLevels))
	o.AppendUint64(uint64(len(p.Batches)))
	for _, batch := range p.Batches {
		o.AppendUint64s(idsToUint64s(batch))
	}
	// prune lists in batch order
	nbPrune := 0
	for i := range p.Batches {
		if len(p.Prune[i]) > 0 {
			nbPrune++
		}
	}
	o.AppendUint64(uint64(nbPrune))
	for i := range p.Batches {
		if ids := p.Prune[i]; len(ids) > 0 {
			o.AppendUint64(uint64(i))
			o.AppendUint64s(idsToUint64s(ids))
		}
	}
	return o.Bytes()
}

func Deserialize(buf []byte) (p *Plan, err error) {
	defer func() {
		if r := recover(); r != nil {
			if r != utils.ErrShortBuffer {
				panic(r)
			}
			p, err = nil, fmt.Errorf("%w: %v", ir.ErrInvalidArgument, utils.ErrShortBuffer)
		}
	}()
	in := utils.NewInputBuf(buf)
	if in.ReadUint64() != planMagic {
		return nil, fmt.Errorf("%w: invalid plan header", ir.ErrInvalidArgument)
	}
	if v := in.ReadUint32(); v != planVersion {
		return nil, fmt.Errorf("%w: unsupported plan version %d", ir.ErrInvalidArgument, v)
	}
	p = &Plan{
		Parallelism: int(in.ReadUint64()),
		NbLevels:    int(in.ReadUint64()),
		Prune:       make(map[int][]ir.NodeID),
	}
	nbBatches := in.ReadUint64()
	if nbBatches > uint64(in.Len()/8) {
		return nil, fmt.Errorf("%w: %v", ir.ErrInvalidArgument, utils.ErrShortBuffer)
	}
	p.Batches = make([][]ir.NodeID, nbBatches)
	for i := range p.Batches {
		p.Batches[i] = uint64sToIDs(in.ReadUint64s())
	}
	nbPrune := in.ReadUint64()
	for j := uint64(0); j < nbPrune; j++ {
		i := in.ReadUint64()
		if i >= nbBatches {
			return nil, fmt.Errorf("%w: prune list for unknown batch %d", ir.ErrInvalidArgument, i)
		}
		p.Prune[int(i)] = uint64sToIDs(in.ReadUint64s())
	}
	if in.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ir.ErrInvalidArgument, in.Len())
	}
	return p, nil
}

func idsToUint64s(ids []ir.NodeID) []uint64 {
	res := make([]uint64, len(ids))
	for i, id := range ids {
		res[i] = uint64(id)
	}
	return res
}

func uint64sToIDs(xs []uint64) []ir.NodeID {
	res := make([]ir.NodeID, len(xs))
	for i, x := range xs {
		res[i] = ir.NodeID(x)
	}
	return res
}
