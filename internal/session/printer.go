package session

import (
	"fmt"
	"io"

	"hexprobe/internal/conf"
	"hexprobe/internal/hexdump"
)

// Printer writes the console form of received chunks: a "read N bytes" line,
// the hex dump, then an empty line.
type Printer struct {
	out      io.Writer
	opts     hexdump.Options
	absolute bool
	offset   int
}

func NewPrinter(out io.Writer, o *conf.Output) *Printer {
	return &Printer{
		out: out,
		opts: hexdump.Options{
			Color:       o.Colored(),
			Placeholder: o.Placeholder[0],
		},
		absolute: o.AbsoluteOffsets,
	}
}

func (p *Printer) Chunk(data []byte) error {
	if _, err := fmt.Fprintf(p.out, "read %d bytes of data:\n", len(data)); err != nil {
		return err
	}
	opts := p.opts
	if p.absolute {
		opts.Base = p.offset
	}
	p.offset += len(data)
	if err := hexdump.Dump(p.out, data, opts); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.out)
	return err
}

func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}
