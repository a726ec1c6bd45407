package hexdump

import (
	"bytes"
	"strings"
	"testing"
)

func dumpLines(t *testing.T, data []byte, opts Options) []string {
	t.Helper()
	var buf bytes.Buffer
	if err := Dump(&buf, data, opts); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected trailing newline, got %q", out)
	}
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func TestDump_RowCountIsCeilOfLengthOver16(t *testing.T) {
	for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 33, 1024, 1025} {
		lines := dumpLines(t, make([]byte, n), Options{})
		want := (n + 15) / 16
		if got := len(lines) - 1; got != want {
			t.Fatalf("len=%d: expected %d rows, got %d", n, want, got)
		}
		if Rows(n) != want {
			t.Fatalf("Rows(%d) = %d, want %d", n, Rows(n), want)
		}
	}
}

func TestDump_EmptyPrintsOnlyMarker(t *testing.T) {
	lines := dumpLines(t, nil, Options{})
	if len(lines) != 1 || lines[0] != marker {
		t.Fatalf("expected only marker line, got %q", lines)
	}
}

func TestDump_PartialRowExample(t *testing.T) {
	lines := dumpLines(t, []byte{0x41, 0x0a, 0xff}, Options{})
	if len(lines) != 2 {
		t.Fatalf("expected marker + 1 row, got %d lines", len(lines))
	}
	want := "0000 41 0a ff " + strings.Repeat("   ", 13) + "A.." + strings.Repeat(" ", 13)
	if lines[1] != want {
		t.Fatalf("row mismatch\n got: %q\nwant: %q", lines[1], want)
	}
}

func TestDump_FullRowAndOffsets(t *testing.T) {
	data := []byte("0123456789abcdefXYZ")
	lines := dumpLines(t, data, Options{})
	if want := "0000 30 31 32 33 34 35 36 37 38 39 61 62 63 64 65 66 0123456789abcdef"; lines[1] != want {
		t.Fatalf("row 0 mismatch\n got: %q\nwant: %q", lines[1], want)
	}
	if !strings.HasPrefix(lines[2], "0010 58 59 5a ") {
		t.Fatalf("row 1 has wrong prefix: %q", lines[2])
	}
}

func TestDump_PrintableBytesShownVerbatim(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	lines := dumpLines(t, data, Options{Placeholder: '~'})
	for row := 0; row < 16; row++ {
		ascii := lines[row+1][len(lines[row+1])-Width:]
		for col := 0; col < Width; col++ {
			b := byte(row*Width + col)
			want := byte('~')
			if b >= 0x20 && b <= 0x7e {
				want = b
			}
			if ascii[col] != want {
				t.Fatalf("byte 0x%02x rendered as %q, want %q", b, ascii[col], want)
			}
		}
	}
}

func TestDump_ColorWrapsMarkerOffsetAndPlaceholder(t *testing.T) {
	lines := dumpLines(t, []byte{'A', 0x00}, Options{Color: true})
	if lines[0] != colorOn+marker+colorOff {
		t.Fatalf("marker not colored: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], colorOn+"0000"+colorOff+" 41 00 ") {
		t.Fatalf("offset not colored: %q", lines[1])
	}
	if !strings.Contains(lines[1], "A"+colorOn+"."+colorOff) {
		t.Fatalf("placeholder not colored: %q", lines[1])
	}
}

func TestDump_BaseShiftsOffsets(t *testing.T) {
	lines := dumpLines(t, make([]byte, 20), Options{Base: 0x10000})
	if !strings.HasPrefix(lines[1], "10000 ") || !strings.HasPrefix(lines[2], "10010 ") {
		t.Fatalf("unexpected offsets: %q / %q", lines[1], lines[2])
	}
}

func TestOffsetString(t *testing.T) {
	cases := map[int]string{0: "0000", 0x10: "0010", 0x3f0: "03f0", 0xffff: "ffff", 0x12345: "12345"}
	for in, want := range cases {
		if got := offsetString(in); got != want {
			t.Fatalf("offsetString(%#x) = %q, want %q", in, got, want)
		}
	}
}
