package goopenrgb_test

import (
	. "github.com/pdf/goopenrgb"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/pdf/goopenrgb/common"
	"github.com/pdf/goopenrgb/mocks"
	"github.com/pdf/goopenrgb/protocol"
)

// expectFrame queues one inbound frame on the mock socket: the header read,
// and the body read if the frame carries a body.
func expectFrame(sock *mocks.Socket, frame []byte) {
	sock.On(`ReceiveExact`, protocol.HeaderSize).Return(frame[:protocol.HeaderSize], common.SockSuccess).Once()
	if len(frame) > protocol.HeaderSize {
		sock.On(`ReceiveExact`, len(frame)-protocol.HeaderSize).Return(frame[protocol.HeaderSize:], common.SockSuccess).Once()
	}
}

// expectConnect scripts a successful connect handshake against a server
// speaking serverVersion.
func expectConnect(sock *mocks.Socket, serverVersion uint32) {
	sock.On(`Connect`, `localhost`, common.DefaultPort).Return(common.SockSuccess).Once()
	sock.On(`SetTimeout`, common.DefaultTimeout).Return(true).Once()
	sock.On(`Send`, protocol.EncodeRequestProtocolVersion(protocol.ImplementedVersion)).Return(common.SockSuccess).Once()
	expectFrame(sock, protocol.EncodeReplyProtocolVersion(serverVersion))
	sock.On(`Send`, protocol.EncodeSetClientName(`test`)).Return(common.SockSuccess).Once()
}

func simpleDevice(idx uint32, name string) *common.Device {
	return &common.Device{
		Idx:      idx,
		Type:     common.DeviceLEDStrip,
		Name:     name,
		Vendor:   `Testing Inc`,
		Location: `/dev/null`,
		Zones: []common.Zone{
			{DeviceIdx: idx, Idx: 0, Name: `Strip`, Type: common.ZoneLinear, LEDsMin: 2, LEDsMax: 2, LEDsCount: 2},
		},
		LEDs: []common.LED{
			{DeviceIdx: idx, Idx: 0, Name: `LED 1`},
			{DeviceIdx: idx, Idx: 1, Name: `LED 2`},
		},
		Colors: []common.Color{{}, {}},
	}
}

var _ = Describe("Client", func() {
	var (
		client *Client
		sock   *mocks.Socket
	)

	BeforeEach(func() {
		sock = new(mocks.Socket)
		client = NewClient(`test`, sock)
	})

	Describe("connecting", func() {
		It("should negotiate the protocol version and announce the client name", func() {
			expectConnect(sock, 4)

			Expect(client.Connect(`localhost`, common.DefaultPort)).To(Equal(common.ConnectSuccess))
			Expect(client.NegotiatedProtocolVersion()).To(Equal(protocol.ImplementedVersion))
			Expect(client.IsDeviceListOutOfDate()).To(BeTrue())
			sock.AssertExpectations(GinkgoT())
		})

		It("should negotiate down to the server's version", func() {
			expectConnect(sock, 1)

			Expect(client.Connect(`localhost`, common.DefaultPort)).To(Equal(common.ConnectSuccess))
			Expect(client.NegotiatedProtocolVersion()).To(Equal(uint32(1)))
		})

		It("should reject a version-less legacy server and close the socket", func() {
			sock.On(`Connect`, `localhost`, common.DefaultPort).Return(common.SockSuccess).Once()
			sock.On(`SetTimeout`, common.DefaultTimeout).Return(true).Once()
			sock.On(`Send`, protocol.EncodeRequestProtocolVersion(protocol.ImplementedVersion)).Return(common.SockSuccess).Once()
			expectFrame(sock, protocol.EncodeReplyProtocolVersion(0))
			sock.On(`Disconnect`).Return(common.SockSuccess).Once()

			Expect(client.Connect(`localhost`, common.DefaultPort)).To(Equal(common.ConnectVersionNotSupported))
			sock.AssertExpectations(GinkgoT())
		})

		It("should report an already connected socket", func() {
			sock.On(`Connect`, `localhost`, common.DefaultPort).Return(common.SockAlreadyConnected).Once()
			Expect(client.Connect(`localhost`, common.DefaultPort)).To(Equal(common.ConnectAlreadyConnected))
		})

		It("should report an unresolvable host", func() {
			sock.On(`Connect`, `no.such.host`, common.DefaultPort).Return(common.SockHostNotResolved).Once()
			Expect(client.Connect(`no.such.host`, common.DefaultPort)).To(Equal(common.ConnectHostNotResolved))
		})

		It("should tear the socket down when the version reply never arrives", func() {
			sock.On(`Connect`, `localhost`, common.DefaultPort).Return(common.SockSuccess).Once()
			sock.On(`SetTimeout`, common.DefaultTimeout).Return(true).Once()
			sock.On(`Send`, protocol.EncodeRequestProtocolVersion(protocol.ImplementedVersion)).Return(common.SockSuccess).Once()
			sock.On(`ReceiveExact`, protocol.HeaderSize).Return(nil, common.SockTimeout).Once()
			sock.On(`Disconnect`).Return(common.SockSuccess).Once()
			sock.On(`Disconnect`).Return(common.SockNotConnected).Once()

			Expect(client.Connect(`localhost`, common.DefaultPort)).To(Equal(common.ConnectRequestVersionFailed))
			sock.AssertExpectations(GinkgoT())
		})
	})

	Describe("disconnecting", func() {
		It("should report whether a live connection was actually torn down", func() {
			sock.On(`Disconnect`).Return(common.SockSuccess).Once()
			sock.On(`Disconnect`).Return(common.SockNotConnected).Once()

			Expect(client.Disconnect()).To(BeTrue())
			Expect(client.Disconnect()).To(BeFalse())
		})
	})

	Describe("when disconnected", func() {
		BeforeEach(func() {
			sock.On(`IsConnected`).Return(false)
		})

		It("should short-circuit every operation without touching the socket", func() {
			dev := simpleDevice(0, `strip`)

			st, devices := client.RequestDeviceList()
			Expect(st).To(Equal(common.RequestNotConnected))
			Expect(devices).To(BeEmpty())

			st, count := client.RequestDeviceCount()
			Expect(st).To(Equal(common.RequestNotConnected))
			Expect(count).To(Equal(uint32(0)))

			st, info := client.RequestDeviceInfo(0)
			Expect(st).To(Equal(common.RequestNotConnected))
			Expect(info).To(BeNil())

			st, profiles := client.RequestProfileList()
			Expect(st).To(Equal(common.RequestNotConnected))
			Expect(profiles).To(BeEmpty())

			Expect(client.SetDeviceColor(dev, common.Red)).To(Equal(common.RequestNotConnected))
			Expect(client.SetZoneColor(&dev.Zones[0], common.Red)).To(Equal(common.RequestNotConnected))
			Expect(client.SetLEDColor(&dev.LEDs[0], common.Red)).To(Equal(common.RequestNotConnected))
			Expect(client.SetZoneSize(&dev.Zones[0], 4)).To(Equal(common.RequestNotConnected))
			Expect(client.SwitchToCustomMode(dev)).To(Equal(common.RequestNotConnected))
			Expect(client.SaveProfile(`day`)).To(Equal(common.RequestNotConnected))
			Expect(client.LoadProfile(`day`)).To(Equal(common.RequestNotConnected))
			Expect(client.DeleteProfile(`day`)).To(Equal(common.RequestNotConnected))

			sock.AssertNotCalled(GinkgoT(), `Send`, mock.Anything)
			sock.AssertNotCalled(GinkgoT(), `ReceiveExact`, mock.Anything)
		})
	})

	Describe("when connected", func() {
		BeforeEach(func() {
			expectConnect(sock, 4)
			Expect(client.Connect(`localhost`, common.DefaultPort)).To(Equal(common.ConnectSuccess))
			sock.On(`IsConnected`).Return(true)
		})

		Describe("requesting the device list", func() {
			It("should download every device record", func() {
				sock.On(`Send`, mock.Anything).Return(common.SockSuccess)
				expectFrame(sock, protocol.EncodeReplyControllerCount(2))
				expectFrame(sock, protocol.EncodeReplyControllerData(simpleDevice(0, `strip one`), 3))
				expectFrame(sock, protocol.EncodeReplyControllerData(simpleDevice(1, `strip two`), 3))

				st, devices := client.RequestDeviceList()
				Expect(st).To(Equal(common.RequestSuccess))
				Expect(devices).To(HaveLen(2))
				Expect(devices[0].Name).To(Equal(`strip one`))
				Expect(devices[1].Name).To(Equal(`strip two`))
				Expect(devices.FindByName(`strip two`).Idx).To(Equal(uint32(1)))
				Expect(client.IsDeviceListOutOfDate()).To(BeFalse())
			})

			It("should restart the download when a notification interleaves", func() {
				sock.On(`Send`, mock.Anything).Return(common.SockSuccess)
				// first pass: three devices, with a change announced after
				// the second record
				expectFrame(sock, protocol.EncodeReplyControllerCount(3))
				expectFrame(sock, protocol.EncodeReplyControllerData(simpleDevice(0, `old zero`), 3))
				expectFrame(sock, protocol.EncodeReplyControllerData(simpleDevice(1, `old one`), 3))
				expectFrame(sock, protocol.EncodeDeviceListUpdated())
				expectFrame(sock, protocol.EncodeReplyControllerData(simpleDevice(2, `old two`), 3))
				// second pass: the post-update state has two devices
				expectFrame(sock, protocol.EncodeReplyControllerCount(2))
				expectFrame(sock, protocol.EncodeReplyControllerData(simpleDevice(0, `new zero`), 3))
				expectFrame(sock, protocol.EncodeReplyControllerData(simpleDevice(1, `new one`), 3))

				st, devices := client.RequestDeviceList()
				Expect(st).To(Equal(common.RequestSuccess))
				Expect(devices).To(HaveLen(2))
				Expect(devices[0].Name).To(Equal(`new zero`))
				Expect(devices[1].Name).To(Equal(`new one`))
				Expect(client.IsDeviceListOutOfDate()).To(BeFalse())
				sock.AssertExpectations(GinkgoT())
			})

			It("should force-close the connection when the count reply times out", func() {
				sock.On(`Send`, mock.Anything).Return(common.SockSuccess)
				sock.On(`ReceiveExact`, protocol.HeaderSize).Return(nil, common.SockTimeout).Once()
				sock.On(`Disconnect`).Return(common.SockSuccess).Once()

				st, devices := client.RequestDeviceList()
				Expect(st).To(Equal(common.RequestNoReply))
				Expect(devices).To(BeEmpty())
				sock.AssertCalled(GinkgoT(), `Disconnect`)
			})

			It("should fail on a reply of an unexpected type", func() {
				sock.On(`Send`, mock.Anything).Return(common.SockSuccess)
				expectFrame(sock, protocol.EncodeReplyProtocolVersion(4))

				st, _ := client.RequestDeviceList()
				Expect(st).To(Equal(common.RequestInvalidReply))
			})

			It("should fail when the reply carries the wrong device index", func() {
				sock.On(`Send`, mock.Anything).Return(common.SockSuccess)
				expectFrame(sock, protocol.EncodeReplyControllerCount(1))
				expectFrame(sock, protocol.EncodeReplyControllerData(simpleDevice(5, `imposter`), 3))

				st, _ := client.RequestDeviceList()
				Expect(st).To(Equal(common.RequestInvalidReply))
			})
		})

		Describe("requesting the device count", func() {
			It("should return the server's count", func() {
				sock.On(`Send`, protocol.EncodeRequestControllerCount()).Return(common.SockSuccess).Once()
				expectFrame(sock, protocol.EncodeReplyControllerCount(5))

				st, count := client.RequestDeviceCount()
				Expect(st).To(Equal(common.RequestSuccess))
				Expect(count).To(Equal(uint32(5)))
			})
		})

		Describe("requesting a single device", func() {
			It("should return the decoded record", func() {
				sock.On(`Send`, protocol.EncodeRequestControllerData(1, 3)).Return(common.SockSuccess).Once()
				expectFrame(sock, protocol.EncodeReplyControllerData(simpleDevice(1, `strip`), 3))

				st, dev := client.RequestDeviceInfo(1)
				Expect(st).To(Equal(common.RequestSuccess))
				Expect(dev).NotTo(BeNil())
				Expect(dev.Idx).To(Equal(uint32(1)))
				Expect(dev.LEDs).To(HaveLen(2))
			})
		})

		Describe("awaiting replies", func() {
			It("should pass over interleaved notifications and set the freshness bit", func() {
				// downloading the list clears the bit set by connect
				sock.On(`Send`, mock.Anything).Return(common.SockSuccess)
				expectFrame(sock, protocol.EncodeReplyControllerCount(0))
				st, _ := client.RequestDeviceList()
				Expect(st).To(Equal(common.RequestSuccess))
				Expect(client.IsDeviceListOutOfDate()).To(BeFalse())

				expectFrame(sock, protocol.EncodeDeviceListUpdated())
				expectFrame(sock, protocol.EncodeReplyProfileList([]string{`day`, `night`}))

				st, profiles := client.RequestProfileList()
				Expect(st).To(Equal(common.RequestSuccess))
				Expect(profiles).To(Equal([]string{`day`, `night`}))
				Expect(client.IsDeviceListOutOfDate()).To(BeTrue())
			})
		})

		Describe("fire-and-forget updates", func() {
			It("should emit exactly the documented single LED frame", func() {
				led := &common.LED{DeviceIdx: 1, Idx: 5}
				sock.On(`Send`, []byte{
					'O', 'R', 'G', 'B',
					0x01, 0x00, 0x00, 0x00,
					0x1C, 0x04, 0x00, 0x00,
					0x08, 0x00, 0x00, 0x00,
					0x05, 0x00, 0x00, 0x00,
					0xAA, 0xBB, 0xCC, 0x00,
				}).Return(common.SockSuccess).Once()

				Expect(client.SetLEDColor(led, common.Color{R: 0xAA, G: 0xBB, B: 0xCC})).To(Equal(common.RequestSuccess))
				sock.AssertExpectations(GinkgoT())
			})

			It("should expand a device color to every LED", func() {
				dev := simpleDevice(0, `strip`)
				expanded := []common.Color{common.Red, common.Red}
				sock.On(`Send`, protocol.EncodeUpdateLEDs(0, expanded)).Return(common.SockSuccess).Once()

				Expect(client.SetDeviceColor(dev, common.Red)).To(Equal(common.RequestSuccess))
				sock.AssertExpectations(GinkgoT())
			})

			It("should expand a zone color to the zone's LED count", func() {
				dev := simpleDevice(3, `strip`)
				expanded := []common.Color{common.Blue, common.Blue}
				sock.On(`Send`, protocol.EncodeUpdateZoneLEDs(3, 0, expanded)).Return(common.SockSuccess).Once()

				Expect(client.SetZoneColor(&dev.Zones[0], common.Blue)).To(Equal(common.RequestSuccess))
				sock.AssertExpectations(GinkgoT())
			})

			It("should send the mode record when changing modes", func() {
				mode := &common.Mode{DeviceIdx: 2, Idx: 1, Name: `Breathing`, Value: 2}
				dev := &common.Device{Idx: 2, Modes: []common.Mode{{}, *mode}}
				sock.On(`Send`, protocol.EncodeUpdateMode(2, 1, mode, 3)).Return(common.SockSuccess).Once()

				Expect(client.ChangeMode(dev, mode)).To(Equal(common.RequestSuccess))
				sock.AssertExpectations(GinkgoT())
			})

			It("should send a distinct message type for profile deletion", func() {
				frame := protocol.EncodeDeleteProfile(`day`)
				hdr, ok := protocol.ParseHeader(frame[:protocol.HeaderSize])
				Expect(ok).To(BeTrue())
				Expect(hdr.Type).To(Equal(protocol.RequestDeleteProfile))
				sock.On(`Send`, frame).Return(common.SockSuccess).Once()

				Expect(client.DeleteProfile(`day`)).To(Equal(common.RequestSuccess))
				sock.AssertExpectations(GinkgoT())
			})

			It("should report a failed send", func() {
				sock.On(`Send`, mock.Anything).Return(common.SockOtherError)
				Expect(client.SaveProfile(`day`)).To(Equal(common.RequestSendFailed))
			})
		})

		Describe("checking for device updates", func() {
			It("should answer from the cached bit without touching the socket", func() {
				// connect left the bit set
				Expect(client.CheckForDeviceUpdates()).To(Equal(common.UpdateOutOfDate))
				sock.AssertNotCalled(GinkgoT(), `SetBlocking`, mock.Anything)
				// only the header and body reads of the connect handshake
				sock.AssertNumberOfCalls(GinkgoT(), `ReceiveExact`, 2)
			})

			Context("with a fresh device list", func() {
				BeforeEach(func() {
					sock.On(`Send`, mock.Anything).Return(common.SockSuccess)
					expectFrame(sock, protocol.EncodeReplyControllerCount(0))
					st, _ := client.RequestDeviceList()
					Expect(st).To(Equal(common.RequestSuccess))
				})

				It("should report up to date when no traffic is pending", func() {
					sock.On(`SetBlocking`, false).Return(true).Once()
					sock.On(`ReceiveExact`, protocol.HeaderSize).Return(nil, common.SockWouldBlock).Once()
					sock.On(`SetBlocking`, true).Return(true).Once()

					Expect(client.CheckForDeviceUpdates()).To(Equal(common.UpdateUpToDate))
					sock.AssertExpectations(GinkgoT())
				})

				It("should consume a pending notification and cache the result", func() {
					sock.On(`SetBlocking`, false).Return(true).Once()
					expectFrame(sock, protocol.EncodeDeviceListUpdated())
					sock.On(`SetBlocking`, true).Return(true).Once()

					Expect(client.CheckForDeviceUpdates()).To(Equal(common.UpdateOutOfDate))
					// the second check must not issue any further socket
					// operations
					Expect(client.CheckForDeviceUpdates()).To(Equal(common.UpdateOutOfDate))
					sock.AssertNumberOfCalls(GinkgoT(), `SetBlocking`, 2)
				})

				It("should flag unexpected traffic as a compromised session", func() {
					sock.On(`SetBlocking`, false).Return(true).Once()
					// only the header is consumed, the body is left unread
					sock.On(`ReceiveExact`, protocol.HeaderSize).Return(protocol.EncodeReplyControllerCount(1)[:protocol.HeaderSize], common.SockSuccess).Once()
					sock.On(`SetBlocking`, true).Return(true).Once()

					Expect(client.CheckForDeviceUpdates()).To(Equal(common.UpdateUnexpectedMessage))
					sock.AssertExpectations(GinkgoT())
				})

				It("should report a closed connection", func() {
					sock.On(`SetBlocking`, false).Return(true).Once()
					sock.On(`ReceiveExact`, protocol.HeaderSize).Return(nil, common.SockConnectionClosed).Once()
					sock.On(`SetBlocking`, true).Return(true).Once()

					Expect(client.CheckForDeviceUpdates()).To(Equal(common.UpdateConnectionClosed))
				})

				It("should drop the connection when blocking mode cannot be restored", func() {
					sock.On(`SetBlocking`, false).Return(true).Once()
					sock.On(`ReceiveExact`, protocol.HeaderSize).Return(nil, common.SockWouldBlock).Once()
					sock.On(`SetBlocking`, true).Return(false).Once()
					sock.On(`Disconnect`).Return(common.SockSuccess).Once()

					Expect(client.CheckForDeviceUpdates()).To(Equal(common.UpdateCantRestoreSocket))
					sock.AssertExpectations(GinkgoT())
				})
			})
		})

		Describe("events", func() {
			It("should publish a notification event to subscribers", func() {
				sub, err := client.NewSubscription()
				Expect(err).NotTo(HaveOccurred())

				sock.On(`Send`, mock.Anything).Return(common.SockSuccess)
				expectFrame(sock, protocol.EncodeDeviceListUpdated())
				expectFrame(sock, protocol.EncodeReplyProfileList(nil))

				st, _ := client.RequestProfileList()
				Expect(st).To(Equal(common.RequestSuccess))
				Expect(sub.Events()).To(Receive(Equal(common.EventDeviceListUpdated{})))
			})
		})
	})

	Describe("checking for updates while disconnected", func() {
		It("should report an error when the socket cannot be switched", func() {
			sock.On(`SetBlocking`, false).Return(false).Once()
			Expect(client.CheckForDeviceUpdates()).To(Equal(common.UpdateOtherError))
		})
	})
})
