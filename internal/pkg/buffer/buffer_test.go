package buffer

import "testing"

func TestGet_ReturnsRequestedSize(t *testing.T) {
	for _, size := range []int{64, 1024, 4096} {
		bufp := Get(size)
		if len(*bufp) != size {
			t.Fatalf("Get(%d) returned len %d", size, len(*bufp))
		}
		Put(bufp)
	}
}

func TestPut_KeepsSizesApart(t *testing.T) {
	small := Get(64)
	Put(small)
	big := Get(2048)
	if len(*big) != 2048 {
		t.Fatalf("expected 2048-byte buffer, got %d", len(*big))
	}
	Put(big)
	Put(nil)
}
