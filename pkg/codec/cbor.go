package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/jdziat/cloud-schedule/pkg/core"
)

// encMode uses Core Deterministic Encoding so the same attributes always
// produce the same bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

// diagMode notates a whole attribute sequence, items separated by commas.
var diagMode cbor.DiagMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}

	diagMode, err = cbor.DiagOptions{CBORSequence: true}.DiagMode()
	if err != nil {
		panic("codec: CBOR diagnostic mode initialization failed: " + err.Error())
	}
}

// Writer appends scalar attributes to a CBOR stream.
type Writer struct {
	enc *cbor.Encoder
}

// NewWriter returns a Writer that encodes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: encMode.NewEncoder(w)}
}

// AppendScalar implements core.ScalarWriter.
func (w *Writer) AppendScalar(v uint32) error {
	if err := w.enc.Encode(v); err != nil {
		return fmt.Errorf("cloudschedule: encode attribute: %w", err)
	}
	return nil
}

// Reader reads scalar attributes from a CBOR stream.
type Reader struct {
	dec *cbor.Decoder
}

// NewReader returns a Reader that decodes from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: decMode.NewDecoder(r)}
}

// ReadScalar implements core.ScalarReader.
func (r *Reader) ReadScalar() (uint32, error) {
	var v uint32
	if err := r.dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: %v", core.ErrTruncatedAttributes, err)
		}
		return 0, fmt.Errorf("cloudschedule: decode attribute: %w", err)
	}
	return v, nil
}

// Marshal runs fn against a fresh Writer and returns the encoded bytes.
func Marshal(fn func(core.ScalarWriter) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(NewWriter(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal runs fn against a Reader over data. fn must consume every item;
// anything left over is reported as ErrTrailingAttributes.
func Unmarshal(data []byte, fn func(core.ScalarReader) error) error {
	src := bytes.NewReader(data)
	r := NewReader(src)
	if err := fn(r); err != nil {
		return err
	}
	if n := r.remaining() + src.Len(); n > 0 {
		return fmt.Errorf("%w: %d bytes", core.ErrTrailingAttributes, n)
	}
	return nil
}

// remaining reports how many bytes the decoder has buffered but not consumed.
func (r *Reader) remaining() int {
	n, _ := io.Copy(io.Discard, r.dec.Buffered())
	return int(n)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of an
// attribute sequence.
func Diagnose(data []byte) (string, error) {
	return diagMode.Diagnose(data)
}
