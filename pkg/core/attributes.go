package core

// ScalarWriter appends one scalar attribute to an outbound sequence.
type ScalarWriter interface {
	AppendScalar(v uint32) error
}

// ScalarReader reads the next scalar attribute from an inbound sequence.
type ScalarReader interface {
	ReadScalar() (uint32, error)
}

// ScalarSlice is an in-memory attribute sequence. Appends grow the slice and
// reads consume it from the front.
type ScalarSlice []uint32

// AppendScalar implements ScalarWriter.
func (s *ScalarSlice) AppendScalar(v uint32) error {
	*s = append(*s, v)
	return nil
}

// ReadScalar implements ScalarReader.
func (s *ScalarSlice) ReadScalar() (uint32, error) {
	if len(*s) == 0 {
		return 0, ErrTruncatedAttributes
	}
	v := (*s)[0]
	*s = (*s)[1:]
	return v, nil
}
