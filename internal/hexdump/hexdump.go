package hexdump

import (
	"bufio"
	"io"
)

const (
	// Width is the number of bytes rendered per row.
	Width = 16

	colorOn  = "\x1b[32m"
	colorOff = "\x1b[0m"
	marker   = "---- 00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F"
	hexDigit = "0123456789abcdef"
)

type Options struct {
	// Color wraps the marker line, row offsets and placeholders in ANSI green.
	Color bool
	// Placeholder replaces non-printable bytes in the ASCII column. Zero means '.'.
	Placeholder byte
	// Base is added to every row offset.
	Base int
}

// Rows returns the number of rows Dump renders for n bytes.
func Rows(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + Width - 1) / Width
}

// Printable reports whether b is shown verbatim in the ASCII column (C locale isprint).
func Printable(b byte) bool {
	return b >= 0x20 && b <= 0x7e
}

// Dump renders data as a marker line followed by Rows(len(data)) rows of
// offset, hex cells and ASCII cells.
func Dump(w io.Writer, data []byte, opts Options) error {
	bw := bufio.NewWriter(w)
	d := dumper{w: bw, opts: opts}
	if d.opts.Placeholder == 0 {
		d.opts.Placeholder = '.'
	}

	d.colored(marker)
	bw.WriteByte('\n')
	for row := 0; row < Rows(len(data)); row++ {
		start := row * Width
		end := min(start+Width, len(data))
		d.row(opts.Base+start, data[start:end])
	}
	return bw.Flush()
}

type dumper struct {
	w    *bufio.Writer
	opts Options
}

func (d *dumper) row(offset int, line []byte) {
	d.colored(offsetString(offset))
	d.w.WriteByte(' ')

	for i := 0; i < Width; i++ {
		if i >= len(line) {
			d.w.WriteString("   ")
			continue
		}
		b := line[i]
		d.w.WriteByte(hexDigit[b>>4])
		d.w.WriteByte(hexDigit[b&0x0f])
		d.w.WriteByte(' ')
	}

	for i := 0; i < Width; i++ {
		if i >= len(line) {
			d.w.WriteByte(' ')
			continue
		}
		if b := line[i]; Printable(b) {
			d.w.WriteByte(b)
		} else {
			d.colored(string(d.opts.Placeholder))
		}
	}
	d.w.WriteByte('\n')
}

func (d *dumper) colored(s string) {
	if d.opts.Color {
		d.w.WriteString(colorOn)
	}
	d.w.WriteString(s)
	if d.opts.Color {
		d.w.WriteString(colorOff)
	}
}

// offsetString formats like printf("%04x"): at least four digits, more when needed.
func offsetString(off int) string {
	var buf [16]byte
	i := len(buf)
	for off > 0 || len(buf)-i < 4 {
		i--
		buf[i] = hexDigit[off&0x0f]
		off >>= 4
	}
	return string(buf[i:])
}
