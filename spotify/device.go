//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Spotify Connect device selection.
//

package spotify

// SelectDevice picks the device matching name by name or ID. When name is
// empty or matches nothing it falls back to the first active device, then to
// the first device. It returns false only when devices is empty.
func SelectDevice(devices []Device, name string) (Device, bool) {
	if len(devices) == 0 {
		return Device{}, false
	}

	if name != "" {
		for _, device := range devices {
			if device.Name == name || device.ID == name {
				return device, true
			}
		}
	}

	for _, device := range devices {
		if device.Active {
			return device, true
		}
	}

	return devices[0], true
}
