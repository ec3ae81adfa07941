package ppm

import (
	"bufio"
	"io"
	"reflect"
	"strconv"

	"github.com/matzehuels/ppmedit/pkg/errors"
)

// Write renders g to w in canonical P3 form:
//
//	P3
//	<cols> <rows>
//	255
//	<one line per row, values separated by single spaces>
//
// A nil w fails with NULL_ARGUMENT ("Null file") before g is inspected; g is
// then checked with Validate. Nothing is written unless both checks pass.
func Write(w io.Writer, g Grid) error {
	if isNilWriter(w) {
		return errors.New(errors.ErrCodeNullArgument, msgNullFile)
	}
	if err := Validate(g); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(Magic)
	bw.WriteByte('\n')
	bw.WriteString(strconv.Itoa(g.Cols()))
	bw.WriteByte(' ')
	bw.WriteString(strconv.Itoa(g.Rows()))
	bw.WriteByte('\n')
	bw.WriteString(strconv.Itoa(MaxValue))
	bw.WriteByte('\n')

	var buf []byte
	for _, row := range g {
		buf = buf[:0]
		for j, v := range row {
			if j > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendInt(buf, int64(v), 10)
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	// bufio.Writer latches the first error, so checking Flush covers every write above.
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write image")
	}
	return nil
}

// isNilWriter also catches typed nil pointers stored in the interface,
// e.g. a nil *os.File.
func isNilWriter(w io.Writer) bool {
	if w == nil {
		return true
	}
	v := reflect.ValueOf(w)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
