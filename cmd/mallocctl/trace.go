package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unsafe"

	"github.com/joshuapare/poolalloc/mheap/alloc"
)

// OpKind identifies one trace operation.
type OpKind byte

const (
	OpMalloc  OpKind = 'a'
	OpCalloc  OpKind = 'c'
	OpRealloc OpKind = 'r'
	OpFree    OpKind = 'f'
)

// Op is one line of an allocation trace.
//
// Trace syntax, one operation per line, '#' starts a comment:
//
//	a <id> <size>          malloc
//	c <id> <count> <size>  calloc
//	r <id> <size>          realloc
//	f <id>                 free
type Op struct {
	Kind  OpKind
	ID    int
	Size  int
	Count int
	Line  int
}

var (
	ErrTraceSyntax  = errors.New("trace syntax error")
	ErrUnknownBlock = errors.New("trace references unknown block")
	ErrCorrupted    = errors.New("block contents corrupted")
)

// ParseTrace reads a trace from r.
func ParseTrace(r io.Reader) ([]Op, error) {
	var ops []Op
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		op, err := parseOp(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return ops, nil
}

func parseOp(fields []string) (Op, error) {
	if len(fields[0]) != 1 {
		return Op{}, fmt.Errorf("%w: unknown operation %q", ErrTraceSyntax, fields[0])
	}
	kind := OpKind(fields[0][0])

	want := map[OpKind]int{OpMalloc: 3, OpCalloc: 4, OpRealloc: 3, OpFree: 2}[kind]
	if want == 0 {
		return Op{}, fmt.Errorf("%w: unknown operation %q", ErrTraceSyntax, fields[0])
	}
	if len(fields) != want {
		return Op{}, fmt.Errorf("%w: %q takes %d fields, got %d", ErrTraceSyntax, fields[0], want-1, len(fields)-1)
	}

	nums := make([]int, 0, 3)
	for _, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return Op{}, fmt.Errorf("%w: bad number %q", ErrTraceSyntax, f)
		}
		nums = append(nums, n)
	}

	op := Op{Kind: kind, ID: nums[0]}
	switch kind {
	case OpMalloc, OpRealloc:
		op.Size = nums[1]
	case OpCalloc:
		op.Count = nums[1]
		op.Size = nums[2]
	}
	return op, nil
}

// ReplayResult summarises a replayed trace.
type ReplayResult struct {
	Ops       int         `json:"ops"`
	Mallocs   int         `json:"mallocs"`
	Callocs   int         `json:"callocs"`
	Reallocs  int         `json:"reallocs"`
	Frees     int         `json:"frees"`
	Failures  int         `json:"failures"`
	PeakLive  int64       `json:"peak_live"`
	Leaked    int         `json:"leaked"`
	Stats     alloc.Stats `json:"stats"`
	VerifyErr string      `json:"verify_error,omitempty"`
}

type liveBlock struct {
	p unsafe.Pointer
	n int
}

// Replay runs ops against a, filling every block with a per-id byte
// pattern and checking it on realloc and free. Allocation failures are
// counted, not fatal; a malformed trace or a corrupted block stops the
// replay. Blocks still live at the end are released.
func Replay(a *alloc.Allocator, ops []Op) (*ReplayResult, error) {
	res := &ReplayResult{Ops: len(ops)}
	live := make(map[int]liveBlock)
	var liveBytes int64

	track := func(id int, p unsafe.Pointer, n int) {
		live[id] = liveBlock{p: p, n: n}
		liveBytes += int64(n)
		res.PeakLive = max(res.PeakLive, liveBytes)
	}

	for _, op := range ops {
		switch op.Kind {
		case OpMalloc, OpCalloc:
			if _, ok := live[op.ID]; ok {
				return res, fmt.Errorf("line %d: %w: id %d is already live", op.Line, ErrTraceSyntax, op.ID)
			}
			var p unsafe.Pointer
			var err error
			n := op.Size
			if op.Kind == OpCalloc {
				res.Callocs++
				n = op.Count * op.Size
				p, err = a.Calloc(op.Count, op.Size)
				if err == nil {
					if err := checkPattern(p, n, 0); err != nil {
						return res, fmt.Errorf("line %d: calloc not zeroed: %w", op.Line, err)
					}
				}
			} else {
				res.Mallocs++
				p, err = a.Malloc(n)
			}
			if err != nil {
				res.Failures++
				printVerbose("line %d: %v\n", op.Line, err)
				continue
			}
			fillPattern(p, n, byte(op.ID))
			track(op.ID, p, n)

		case OpRealloc:
			res.Reallocs++
			b, ok := live[op.ID]
			if !ok {
				return res, fmt.Errorf("line %d: %w: id %d", op.Line, ErrUnknownBlock, op.ID)
			}
			if err := checkPattern(b.p, b.n, byte(op.ID)); err != nil {
				return res, fmt.Errorf("line %d: %w", op.Line, err)
			}
			p, err := a.Realloc(b.p, op.Size)
			if err != nil {
				res.Failures++
				printVerbose("line %d: %v\n", op.Line, err)
				continue
			}
			if err := checkPattern(p, min(b.n, op.Size), byte(op.ID)); err != nil {
				return res, fmt.Errorf("line %d: realloc lost data: %w", op.Line, err)
			}
			fillPattern(p, op.Size, byte(op.ID))
			liveBytes -= int64(b.n)
			track(op.ID, p, op.Size)

		case OpFree:
			res.Frees++
			b, ok := live[op.ID]
			if !ok {
				return res, fmt.Errorf("line %d: %w: id %d", op.Line, ErrUnknownBlock, op.ID)
			}
			if err := checkPattern(b.p, b.n, byte(op.ID)); err != nil {
				return res, fmt.Errorf("line %d: %w", op.Line, err)
			}
			if err := a.Free(b.p); err != nil {
				return res, fmt.Errorf("line %d: free id %d: %w", op.Line, op.ID, err)
			}
			delete(live, op.ID)
			liveBytes -= int64(b.n)
		}
	}

	if err := a.Verify(); err != nil {
		res.VerifyErr = err.Error()
	}

	res.Leaked = len(live)
	for _, b := range live {
		if err := a.Free(b.p); err != nil {
			return res, fmt.Errorf("release leaked block: %w", err)
		}
	}
	res.Stats = a.Stats()
	return res, nil
}

func fillPattern(p unsafe.Pointer, n int, v byte) {
	b := alloc.Bytes(p, n)
	for i := range b {
		b[i] = v
	}
}

func checkPattern(p unsafe.Pointer, n int, v byte) error {
	for i, got := range alloc.Bytes(p, n) {
		if got != v {
			return fmt.Errorf("%w: byte %d is 0x%02X, want 0x%02X", ErrCorrupted, i, got, v)
		}
	}
	return nil
}
