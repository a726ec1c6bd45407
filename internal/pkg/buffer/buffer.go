package buffer

import (
	"sync"
)

var pools sync.Map // int -> *sync.Pool

// Get returns a buffer of exactly size bytes. Return it with Put.
func Get(size int) *[]byte {
	return pool(size).Get().(*[]byte)
}

func Put(bufp *[]byte) {
	if bufp == nil || len(*bufp) == 0 {
		return
	}
	pool(len(*bufp)).Put(bufp)
}

func pool(size int) *sync.Pool {
	if p, ok := pools.Load(size); ok {
		return p.(*sync.Pool)
	}
	p, _ := pools.LoadOrStore(size, &sync.Pool{
		New: func() any {
			b := make([]byte, size)
			return &b
		},
	})
	return p.(*sync.Pool)
}
