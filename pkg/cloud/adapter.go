package cloud

import "github.com/jdziat/cloud-schedule/pkg/core"

// DescriptorAdapter serializes a descriptor as four scalars in the fixed
// order From, To, Length, Mask.
type DescriptorAdapter struct{}

// Append implements property.Adapter.
func (DescriptorAdapter) Append(d core.Descriptor, w core.ScalarWriter) error {
	for _, v := range [...]uint32{d.From, d.To, d.Length, d.Mask} {
		if err := w.AppendScalar(v); err != nil {
			return err
		}
	}
	return nil
}

// Read implements property.Adapter.
func (DescriptorAdapter) Read(r core.ScalarReader) (core.Descriptor, error) {
	var d core.Descriptor
	for _, field := range [...]*uint32{&d.From, &d.To, &d.Length, &d.Mask} {
		v, err := r.ReadScalar()
		if err != nil {
			return core.Descriptor{}, err
		}
		*field = v
	}
	return d, nil
}
