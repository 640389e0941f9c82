// Copyright 2015 Peter Fern
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file

// Package goopenrgb provides a Go client for the OpenRGB SDK server,
// allowing applications to enumerate RGB-capable hardware and push color,
// mode and profile updates to it over the network.
//
// Also included in cmd/orgbcli is a small CLI utility that allows
// interacting with your RGB devices through an OpenRGB server.
package goopenrgb

import (
	"github.com/pdf/goopenrgb/common"
)

const (
	// VERSION of this library
	VERSION = `0.1.0`
)

// NewClient returns a pointer to a new Client that will announce itself to
// the server as name, speaking over sock.  Pass tcpsocket.New() for normal
// operation.  The client starts out disconnected, call Connect to reach a
// server.
func NewClient(name string, sock common.Socket) *Client {
	if name == `` {
		name = common.DefaultClientName
	}
	return &Client{
		name:          name,
		sock:          sock,
		subscriptions: make(map[string]*common.Subscription),
	}
}

// SetLogger allows assigning a custom levelled logger that conforms to the
// common.Logger interface.  To capture logs generated during client
// creation, this should be called before creating a Client.  Defaults to
// common.StubLogger, which does no logging at all.
func SetLogger(logger common.Logger) {
	common.SetLogger(logger)
}
