//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Device listing and display functions.
//

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/zap"

	"github.com/cloudmanic/spotify-player/spotify"
)

// DeviceLister lists the Spotify Connect devices and moves playback
// between them.
type DeviceLister interface {
	ListDevices(ctx context.Context) ([]spotify.Device, error)
	TransferPlayback(ctx context.Context, deviceID string, play bool) error
}

// printDevicesTable displays available Spotify devices in a formatted table
// with colors to indicate active status.
func printDevicesTable(w io.Writer, devices []spotify.Device) {
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "🎵 Available Spotify Connect Devices")
	fmt.Fprintln(w)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Name", "Type", "Status", "Device ID"})

	for i, device := range devices {
		status := "Inactive"
		if device.Active {
			status = color.GreenString("● Active")
		}

		t.AppendRow(table.Row{
			i + 1,
			color.New(color.Bold).Sprint(device.Name),
			device.Type,
			status,
			color.HiBlackString(device.ID),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintln(w)
	green.Fprintf(w, "Total devices: %d\n", len(devices))
}

// transferToDevice moves playback to the device matching name, falling back
// to the active device and then the first one. Playback is not started.
func transferToDevice(ctx context.Context, gw DeviceLister, name string, logger *zap.Logger) (spotify.Device, error) {
	devices, err := gw.ListDevices(ctx)
	if err != nil {
		return spotify.Device{}, err
	}

	target, ok := spotify.SelectDevice(devices, name)
	if !ok {
		return spotify.Device{}, fmt.Errorf("no Spotify Connect devices found, make sure a device is active")
	}
	if name != "" && target.Name != name && target.ID != name {
		logger.Warn("device not found, using fallback",
			zap.String("wanted", name),
			zap.String("device", target.Name))
	}
	if target.Active {
		return target, nil
	}

	if err := gw.TransferPlayback(ctx, target.ID, false); err != nil {
		return spotify.Device{}, err
	}
	logger.Info("playback transferred", zap.String("device", target.Name), zap.String("device_id", target.ID))
	return target, nil
}
