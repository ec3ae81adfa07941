package ppm

import (
	"bufio"
	"io"
	"math"
	"strconv"

	"github.com/matzehuels/ppmedit/pkg/errors"
)

// TokenSource yields whitespace-delimited tokens. *bufio.Scanner satisfies it;
// see NewTokenizer.
type TokenSource interface {
	Scan() bool
	Text() string
	Err() error
}

// NewTokenizer returns a scanner that splits r on any whitespace, so header
// fields and channel values may be separated by spaces, tabs or newlines.
func NewTokenizer(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return s
}

// Header holds the validated P3 header fields.
type Header struct {
	Cols     int
	Rows     int
	MaxValue int
}

// Width returns the number of channel slots per row.
func (h Header) Width() int { return h.Cols * Channels }

// Parse reads a complete P3 image from src.
//
// A nil src is a contract violation (NULL_ARGUMENT, "Null file"). Content that
// is not a valid P3 image yields a MALFORMED error and a nil grid; the grid is
// never partially populated. Tokens after the last channel value are ignored.
func Parse(src TokenSource) (Grid, error) {
	if isNilSource(src) {
		return nil, errors.New(errors.ErrCodeNullArgument, msgNullFile)
	}
	p := &parser{src: src}

	h, err := p.header()
	if err != nil {
		return nil, err
	}

	width := h.Width()
	total := h.Rows * width

	// Grow with the input rather than trusting the header for an allocation.
	values := make([]int, 0, min(total, 1<<16))
	for len(values) < total {
		v, err := p.channel(len(values) / width)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	g := make(Grid, h.Rows)
	for i := range g {
		g[i] = values[i*width : (i+1)*width : (i+1)*width]
	}
	return g, nil
}

// ValidateHeader checks only the magic, dimensions and maximum value of the
// image in src, leaving the channel values unread.
func ValidateHeader(src TokenSource) (Header, error) {
	if isNilSource(src) {
		return Header{}, errors.New(errors.ErrCodeNullArgument, msgNullScanner)
	}
	return (&parser{src: src}).header()
}

type parser struct {
	src TokenSource
}

func (p *parser) header() (Header, error) {
	magic, err := p.next("magic number")
	if err != nil {
		return Header{}, err
	}
	if magic != Magic {
		return Header{}, errors.New(errors.ErrCodeMalformed, "expected magic %q, got %q", Magic, magic)
	}

	cols, err := p.positive("width")
	if err != nil {
		return Header{}, err
	}
	rows, err := p.positive("height")
	if err != nil {
		return Header{}, err
	}

	maxVal, err := p.integer("maximum color value")
	if err != nil {
		return Header{}, err
	}
	if maxVal != MaxValue {
		return Header{}, errors.New(errors.ErrCodeMalformed, "maximum color value must be %d, got %d", MaxValue, maxVal)
	}

	if cols > math.MaxInt/Channels/rows {
		return Header{}, errors.New(errors.ErrCodeMalformed, "image dimensions %dx%d too large", cols, rows)
	}

	return Header{Cols: cols, Rows: rows, MaxValue: maxVal}, nil
}

// channel reads one channel value belonging to the given row.
func (p *parser) channel(row int) (int, error) {
	tok, err := p.next("channel value")
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.New(errors.ErrCodeMalformed, "row %d: channel value %q is not an integer", row, tok)
	}
	if v < 0 || v > MaxValue {
		return 0, errors.New(errors.ErrCodeMalformed, "row %d: channel value %d out of range [0, %d]", row, v, MaxValue)
	}
	return v, nil
}

func (p *parser) positive(what string) (int, error) {
	v, err := p.integer(what)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, errors.New(errors.ErrCodeMalformed, "%s must be positive, got %d", what, v)
	}
	return v, nil
}

func (p *parser) integer(what string) (int, error) {
	tok, err := p.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.New(errors.ErrCodeMalformed, "%s %q is not an integer", what, tok)
	}
	return v, nil
}

func (p *parser) next(what string) (string, error) {
	if p.src.Scan() {
		return p.src.Text(), nil
	}
	if err := p.src.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "read %s", what)
	}
	return "", errors.New(errors.ErrCodeMalformed, "missing %s", what)
}

// isNilSource also catches a typed nil *bufio.Scanner stored in the interface.
func isNilSource(src TokenSource) bool {
	if src == nil {
		return true
	}
	s, ok := src.(*bufio.Scanner)
	return ok && s == nil
}

// Outcome classifies the result of a core operation.
type Outcome int

const (
	// OutcomeOK means the operation succeeded.
	OutcomeOK Outcome = iota
	// OutcomeMalformed means the input content is not a valid P3 image.
	OutcomeMalformed
	// OutcomeContractViolation means an argument was absent or mis-shaped.
	OutcomeContractViolation
	// OutcomeIOError means the underlying reader or writer failed.
	OutcomeIOError
)

// String returns a lowercase name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeContractViolation:
		return "contract violation"
	case OutcomeIOError:
		return "io error"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by this package to its Outcome.
// Errors from outside the package classify as OutcomeIOError.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, errors.ErrCodeMalformed):
		return OutcomeMalformed
	case errors.IsContractViolation(err):
		return OutcomeContractViolation
	default:
		return OutcomeIOError
	}
}
