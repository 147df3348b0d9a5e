//go:build linux

package output

import (
	"fmt"

	"github.com/bendahl/uinput"
)

const uinputDev = "/dev/uinput"

// Xbox 360 ids so games apply their usual controller layout.
const (
	vendorID  = 0x045E
	productID = 0x028E
)

// UinputFactory creates pads through /dev/uinput.
func UinputFactory(slot int) (Pad, error) {
	name := fmt.Sprintf("Virtual Input Pad %d", slot+1)
	pad, err := uinput.CreateGamepad(uinputDev, []byte(name), vendorID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to create gamepad device: %w", err)
	}
	return pad, nil
}
