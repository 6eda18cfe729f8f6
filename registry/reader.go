package registry

import (
	"sync"
	"sync/atomic"

	"github.com/joshuapare/regkit/internal/buf"
	"github.com/joshuapare/regkit/internal/engine"
	"github.com/joshuapare/regkit/pkg/types"
)

// initialBufferSize is the first guess for value and expansion buffers.
const initialBufferSize = 32

// bufferPool hands out scratch buffers for engine calls. outstanding counts
// buffers not yet returned.
type bufferPool struct {
	pool        sync.Pool
	outstanding atomic.Int64
}

func newBufferPool() *bufferPool {
	return &bufferPool{pool: sync.Pool{New: func() any {
		b := make([]byte, 0, initialBufferSize)
		return &b
	}}}
}

// get returns a buffer of length n.
func (p *bufferPool) get(n int) *[]byte {
	b := p.pool.Get().(*[]byte)
	if cap(*b) < n {
		*b = make([]byte, n)
	}
	*b = (*b)[:n]
	p.outstanding.Add(1)
	return b
}

func (p *bufferPool) put(b *[]byte) {
	clear(*b)
	p.pool.Put(b)
	p.outstanding.Add(-1)
}

// readValue fetches value name restricted by flags and hands its bytes to
// decode. The first attempt uses initialBufferSize bytes; when the engine
// answers StatusMoreData the buffer is replaced by one of exactly the
// reported size and the fetch is repeated once. decode must copy anything
// it keeps: the buffer goes back to the pool when readValue returns.
func (k *Key) readValue(name string, flags engine.GetFlags, decode func(kind types.RegType, data []byte) error) error {
	h, err := k.handle()
	if err != nil {
		return err
	}
	r := k.reg

	b := r.bufs.get(initialBufferSize)
	defer func() { r.bufs.put(b) }()

	var kind types.RegType
	size := uint32(len(*b))
	st := r.eng.GetValue(h, name, flags, r.width, &kind, *b, &size)
	if st == types.StatusMoreData {
		r.log.Debug("value buffer too small", "key", k.path, "value", name, "size", size)
		r.bufs.put(b)
		b = r.bufs.get(int(size))
		st = r.eng.GetValue(h, name, flags, r.width, &kind, *b, &size)
	}
	if err := r.translate("RegGetValue", st); err != nil {
		return err
	}
	data, ok := buf.Slice(*b, 0, int(size))
	if !ok {
		return r.translate("RegGetValue", types.StatusInvalidData)
	}
	return decode(kind, data)
}
