//go:build !linux

package output

// UinputFactory always fails: uinput exists only on Linux.
func UinputFactory(int) (Pad, error) {
	return nil, ErrUnsupported
}
