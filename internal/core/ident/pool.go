package ident

// ID encodes a 32-bit index in the lower bits and a 32-bit generation in the
// upper bits. Generation increments on release so references to salvaged
// items go stale instead of aliasing a newly forged one.
type ID uint64

func New(index uint32, generation uint32) ID {
	return ID(uint64(generation)<<32 | uint64(index))
}

func (id ID) Index() uint32      { return uint32(id) }
func (id ID) Generation() uint32 { return uint32(id >> 32) }
func (id ID) IsZero() bool       { return id == 0 }

// Pool allocates IDs with generational indices and a free list. Index 0 is
// burned at construction so the zero ID never names a live object.
type Pool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewPool() *Pool {
	p := &Pool{
		generations: make([]uint32, 0, 256),
		freeList:    make([]uint32, 0, 64),
	}
	p.Acquire() // reserve index 0
	return p
}

func (p *Pool) Acquire() ID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return New(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return New(idx, p.generations[idx])
}

func (p *Pool) Alive(id ID) bool {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

func (p *Pool) Release(id ID) {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return
	}
	if p.generations[idx] != id.Generation() {
		return // already released (stale reference)
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}
