package main

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdf/goopenrgb/common"
)

var (
	cmdList = &cobra.Command{
		Use:     `list`,
		Short:   `list all devices with their zones, LEDs and modes`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     listDevices,
	}

	cmdInfo = &cobra.Command{
		Use:     `info <device>`,
		Short:   `show the full record of one device`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     deviceInfo,
	}

	cmdCount = &cobra.Command{
		Use:     `count`,
		Short:   `print the number of devices`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     deviceCount,
	}

	cmdSetColor = &cobra.Command{
		Use:     `setcolor <device> <color>`,
		Short:   `set one color on a whole device, e.g. setcolor 0 '#ff8800'`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     setDeviceColor,
	}

	cmdSetZoneColor = &cobra.Command{
		Use:     `setzonecolor <device> <zone> <color>`,
		Short:   `set one color on a zone of a device`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     setZoneColor,
	}

	cmdSetLEDColor = &cobra.Command{
		Use:     `setledcolor <device> <led> <color>`,
		Short:   `set the color of a single LED`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     setLEDColor,
	}

	cmdResizeZone = &cobra.Command{
		Use:     `resizezone <device> <zone> <size>`,
		Short:   `resize a zone of LEDs, if the device supports it`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     resizeZone,
	}

	cmdMode = &cobra.Command{
		Use:     `mode <device> <mode>`,
		Short:   `change the active mode of a device`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     changeMode,
	}

	cmdProfiles = &cobra.Command{
		Use:     `profiles`,
		Short:   `list the profiles saved on the server`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     listProfiles,
	}

	cmdSaveProfile = &cobra.Command{
		Use:     `saveprofile <name>`,
		Short:   `save the current state of all devices as a profile`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     profileOp(func(name string) common.RequestStatus { return client.SaveProfile(name) }),
	}

	cmdLoadProfile = &cobra.Command{
		Use:     `loadprofile <name>`,
		Short:   `apply a previously saved profile`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     profileOp(func(name string) common.RequestStatus { return client.LoadProfile(name) }),
	}

	cmdDeleteProfile = &cobra.Command{
		Use:     `deleteprofile <name>`,
		Short:   `remove a previously saved profile`,
		PreRun:  setupClient,
		PostRun: closeClient,
		Run:     profileOp(func(name string) common.RequestStatus { return client.DeleteProfile(name) }),
	}
)

func requireArgs(c *cobra.Command, args []string, n int) bool {
	if len(args) != n {
		_ = c.Usage()
		return false
	}
	return true
}

func fetchDevices() common.DeviceList {
	status, devices := client.RequestDeviceList()
	if status != common.RequestSuccess {
		logger.WithField(`status`, status).Fatalln(`Failed requesting device list`)
	}
	return devices
}

// findDevice resolves a device argument that may be either an index or a
// name.
func findDevice(devices common.DeviceList, arg string) *common.Device {
	if idx, err := strconv.ParseUint(arg, 10, 32); err == nil {
		if int(idx) >= len(devices) {
			logger.WithField(`device`, idx).Fatalln(`Device index out of range`)
		}
		return &devices[idx]
	}
	dev := devices.FindByName(arg)
	if dev == nil {
		logger.WithField(`device`, arg).Fatalln(`Device not found`)
	}
	return dev
}

func findZone(dev *common.Device, arg string) *common.Zone {
	if idx, err := strconv.ParseUint(arg, 10, 32); err == nil {
		if int(idx) >= len(dev.Zones) {
			logger.WithField(`zone`, idx).Fatalln(`Zone index out of range`)
		}
		return &dev.Zones[idx]
	}
	zone := dev.FindZone(arg)
	if zone == nil {
		logger.WithField(`zone`, arg).Fatalln(`Zone not found`)
	}
	return zone
}

func findLED(dev *common.Device, arg string) *common.LED {
	if idx, err := strconv.ParseUint(arg, 10, 32); err == nil {
		if int(idx) >= len(dev.LEDs) {
			logger.WithField(`led`, idx).Fatalln(`LED index out of range`)
		}
		return &dev.LEDs[idx]
	}
	led := dev.FindLED(arg)
	if led == nil {
		logger.WithField(`led`, arg).Fatalln(`LED not found`)
	}
	return led
}

func parseColor(arg string) common.Color {
	color, err := common.ColorFromHex(arg)
	if err != nil {
		logger.WithField(`color`, arg).Fatalln(`Colors must be given as hex strings, e.g. '#ff8800'`)
	}
	return color
}

func checkStatus(status common.RequestStatus, what string) {
	if status != common.RequestSuccess {
		logger.WithFields(logrus.Fields{
			`status`: status,
			`error`:  client.LastSystemError(),
		}).Fatalln(what)
	}
}

func listDevices(c *cobra.Command, args []string) {
	devices := fetchDevices()
	for i := range devices {
		dev := &devices[i]
		fmt.Printf("[%d] %s (%s)\n", dev.Idx, dev.Name, dev.Type)
		for j := range dev.Zones {
			zone := &dev.Zones[j]
			fmt.Printf("    zone [%d] %s (%s, %d LEDs)\n", zone.Idx, zone.Name, zone.Type, zone.LEDsCount)
		}
		for j := range dev.Modes {
			marker := ` `
			if uint32(j) == dev.ActiveMode {
				marker = `*`
			}
			fmt.Printf("    mode [%d]%s %s\n", dev.Modes[j].Idx, marker, dev.Modes[j].Name)
		}
	}
}

func deviceInfo(c *cobra.Command, args []string) {
	if !requireArgs(c, args, 1) {
		return
	}
	dev := findDevice(fetchDevices(), args[0])
	fmt.Printf("[%d] %s\n", dev.Idx, dev.Name)
	fmt.Printf("  type:        %s\n", dev.Type)
	fmt.Printf("  vendor:      %s\n", dev.Vendor)
	fmt.Printf("  description: %s\n", dev.Description)
	fmt.Printf("  version:     %s\n", dev.Version)
	fmt.Printf("  serial:      %s\n", dev.Serial)
	fmt.Printf("  location:    %s\n", dev.Location)
	for i := range dev.LEDs {
		fmt.Printf("  led [%d] %s\n", dev.LEDs[i].Idx, dev.LEDs[i].Name)
	}
}

func deviceCount(c *cobra.Command, args []string) {
	status, count := client.RequestDeviceCount()
	checkStatus(status, `Failed requesting device count`)
	fmt.Println(count)
}

func setDeviceColor(c *cobra.Command, args []string) {
	if !requireArgs(c, args, 2) {
		return
	}
	dev := findDevice(fetchDevices(), args[0])
	checkStatus(client.SwitchToCustomMode(dev), `Failed switching to custom mode`)
	checkStatus(client.SetDeviceColor(dev, parseColor(args[1])), `Failed setting device color`)
}

func setZoneColor(c *cobra.Command, args []string) {
	if !requireArgs(c, args, 3) {
		return
	}
	dev := findDevice(fetchDevices(), args[0])
	zone := findZone(dev, args[1])
	checkStatus(client.SwitchToCustomMode(dev), `Failed switching to custom mode`)
	checkStatus(client.SetZoneColor(zone, parseColor(args[2])), `Failed setting zone color`)
}

func setLEDColor(c *cobra.Command, args []string) {
	if !requireArgs(c, args, 3) {
		return
	}
	dev := findDevice(fetchDevices(), args[0])
	led := findLED(dev, args[1])
	checkStatus(client.SwitchToCustomMode(dev), `Failed switching to custom mode`)
	checkStatus(client.SetLEDColor(led, parseColor(args[2])), `Failed setting LED color`)
}

func resizeZone(c *cobra.Command, args []string) {
	if !requireArgs(c, args, 3) {
		return
	}
	dev := findDevice(fetchDevices(), args[0])
	zone := findZone(dev, args[1])
	size, err := strconv.ParseUint(args[2], 10, 32)
	if err != nil {
		logger.WithField(`size`, args[2]).Fatalln(`Zone size must be a number`)
	}
	checkStatus(client.SetZoneSize(zone, uint32(size)), `Failed resizing zone`)
}

func changeMode(c *cobra.Command, args []string) {
	if !requireArgs(c, args, 2) {
		return
	}
	dev := findDevice(fetchDevices(), args[0])
	var mode *common.Mode
	if idx, err := strconv.ParseUint(args[1], 10, 32); err == nil {
		if int(idx) >= len(dev.Modes) {
			logger.WithField(`mode`, idx).Fatalln(`Mode index out of range`)
		}
		mode = &dev.Modes[idx]
	} else if mode = dev.FindMode(args[1]); mode == nil {
		logger.WithField(`mode`, args[1]).Fatalln(`Mode not found`)
	}
	checkStatus(client.ChangeMode(dev, mode), `Failed changing mode`)
}

func listProfiles(c *cobra.Command, args []string) {
	status, profiles := client.RequestProfileList()
	checkStatus(status, `Failed requesting profile list`)
	for _, profile := range profiles {
		fmt.Println(profile)
	}
}

func profileOp(op func(string) common.RequestStatus) func(*cobra.Command, []string) {
	return func(c *cobra.Command, args []string) {
		if !requireArgs(c, args, 1) {
			return
		}
		checkStatus(op(args[0]), `Profile operation failed`)
	}
}
