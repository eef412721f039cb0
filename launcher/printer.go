package launcher

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// TERMINAL PRINTER

// TerminalPrinter redraws one line per slot at a fixed frequency
type TerminalPrinter struct {
	outputs       []*SlotOutput
	ctx           context.Context
	printerCtx    context.Context
	printerCancel context.CancelFunc
	frequency     time.Duration
	done          chan struct{}

	writer  *uilive.Writer
	writers []io.Writer
}

func NewTerminalPrinter(ctx context.Context, out io.Writer, outputs []*SlotOutput, frequency time.Duration) *TerminalPrinter {
	printerCtx, cancel := context.WithCancel(ctx)
	size := len(outputs)
	writer := uilive.New()
	writer.Out = out
	writers := make([]io.Writer, 0, size)
	for i := 0; i < size-1; i++ {
		writers = append(writers, writer.Newline())
	}

	return &TerminalPrinter{
		outputs:       outputs,
		ctx:           ctx,
		printerCtx:    printerCtx,
		printerCancel: cancel,
		frequency:     frequency,
		done:          make(chan struct{}),

		writer:  writer,
		writers: writers,
	}
}

func (p *TerminalPrinter) Start() {
	go func() {
		defer close(p.done)
		for {
			select {
			case <-p.printerCtx.Done():
				p.print()
				return
			case <-p.ctx.Done():
				return
			case <-time.After(p.frequency):
				p.print()
			}
		}
	}()
}

// Stop prints a last time and waits for the printer to exit
func (p *TerminalPrinter) Stop() {
	p.printerCancel()
	<-p.done
}

func (p *TerminalPrinter) print() {
	for i, output := range p.outputs {
		s := output.Get()
		if i == 0 {
			fmt.Fprint(p.writer, s+"\n")
		} else {
			fmt.Fprint(p.writers[i-1], s+"\n")
		}
	}
	p.writer.Flush()
}

// SLOT OUTPUT

// SlotOutput is the line shown for one execution slot
type SlotOutput struct {
	mu        sync.Mutex
	name      string
	printable string
}

func NewSlotOutput(name string) *SlotOutput {
	return &SlotOutput{name: name, printable: "idle"}
}

// Set the output string (blocking)
func (s *SlotOutput) Set(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.printable = fmt.Sprintf(format, args...)
}

// Get the output string, prefixed with the slot name (blocking)
func (s *SlotOutput) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name + " | " + s.printable
}
