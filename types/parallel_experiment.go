package types

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// TERMINAL PRINTER

// TerminalPrinter redraws one status line per experiment in place.
type TerminalPrinter struct {
	parallelOutputs []*ParallelOutput
	ctx             context.Context
	printerCtx      context.Context
	printerCancel   context.CancelFunc
	frequency       time.Duration
	done            chan struct{}

	mu      sync.Mutex
	writer  *uilive.Writer
	writers []io.Writer
}

func NewTerminalPrinter(ctx context.Context, parallelOutputs []*ParallelOutput, out io.Writer, frequency time.Duration) *TerminalPrinter {
	if out == nil {
		out = os.Stdout
	}
	printerCtx, cancel := context.WithCancel(ctx)
	writer := uilive.New()
	writer.Out = out
	writers := make([]io.Writer, 0, len(parallelOutputs))
	for i := 1; i < len(parallelOutputs); i++ {
		writers = append(writers, writer.Newline())
	}

	return &TerminalPrinter{
		parallelOutputs: parallelOutputs,
		ctx:             ctx,
		printerCtx:      printerCtx,
		printerCancel:   cancel,
		frequency:       frequency,
		done:            make(chan struct{}),

		writer:  writer,
		writers: writers,
	}
}

func (p *TerminalPrinter) Start() {
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.frequency)
		defer ticker.Stop()
		for {
			select {
			case <-p.printerCtx.Done():
				return
			case <-p.ctx.Done():
				return
			case <-ticker.C:
				p.Flush()
			}
		}
	}()
}

// Stop halts the refresh loop and draws the final state.
func (p *TerminalPrinter) Stop() {
	p.printerCancel()
	<-p.done
	p.Flush()
}

// Flush redraws the status lines now.
func (p *TerminalPrinter) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, output := range p.parallelOutputs {
		if !output.IsRunning() {
			continue
		}
		s := output.Get()
		if i == 0 {
			fmt.Fprint(p.writer, s+"\n")
		} else {
			fmt.Fprint(p.writers[i-1], s+"\n")
		}
	}
	p.writer.Flush()
}

// Println writes a message above the status lines.
func (p *TerminalPrinter) Println(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.writer.Bypass(), msg)
}

// PARALLEL OUTPUT

// used to update and print experiment outputs
type ParallelOutput struct {
	mu        sync.Mutex
	printable string

	Running bool
}

func NewParallelOutput() *ParallelOutput {
	return &ParallelOutput{
		mu:        sync.Mutex{},
		printable: "",

		Running: false,
	}
}

// Set the output string (blocking)
func (p *ParallelOutput) Set(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.printable = s
}

// Try to set the output string (non-blocking)
func (p *ParallelOutput) TrySet(s string) bool {
	success := p.mu.TryLock()
	if success {
		defer p.mu.Unlock()
		p.printable = s
		return true
	}
	return false
}

// Get the output string (blocking)
func (p *ParallelOutput) Get() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.printable
}

func (p *ParallelOutput) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Running
}

func (p *ParallelOutput) SetRunning(running bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Running = running
}
