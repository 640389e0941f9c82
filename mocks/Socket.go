package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pdf/goopenrgb/common"
)

type Socket struct {
	mock.Mock
}

func (_m *Socket) Connect(host string, port uint16) common.SockStatus {
	ret := _m.Called(host, port)

	var r0 common.SockStatus
	if rf, ok := ret.Get(0).(func(string, uint16) common.SockStatus); ok {
		r0 = rf(host, port)
	} else {
		r0 = ret.Get(0).(common.SockStatus)
	}

	return r0
}

func (_m *Socket) Disconnect() common.SockStatus {
	ret := _m.Called()

	var r0 common.SockStatus
	if rf, ok := ret.Get(0).(func() common.SockStatus); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(common.SockStatus)
	}

	return r0
}

func (_m *Socket) IsConnected() bool {
	ret := _m.Called()

	var r0 bool
	if rf, ok := ret.Get(0).(func() bool); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

func (_m *Socket) Send(data []byte) common.SockStatus {
	ret := _m.Called(data)

	var r0 common.SockStatus
	if rf, ok := ret.Get(0).(func([]byte) common.SockStatus); ok {
		r0 = rf(data)
	} else {
		r0 = ret.Get(0).(common.SockStatus)
	}

	return r0
}

func (_m *Socket) ReceiveExact(n int) ([]byte, common.SockStatus) {
	ret := _m.Called(n)

	var r0 []byte
	if rf, ok := ret.Get(0).(func(int) []byte); ok {
		r0 = rf(n)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}

	var r1 common.SockStatus
	if rf, ok := ret.Get(1).(func(int) common.SockStatus); ok {
		r1 = rf(n)
	} else {
		r1 = ret.Get(1).(common.SockStatus)
	}

	return r0, r1
}

func (_m *Socket) SetTimeout(timeout time.Duration) bool {
	ret := _m.Called(timeout)

	var r0 bool
	if rf, ok := ret.Get(0).(func(time.Duration) bool); ok {
		r0 = rf(timeout)
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

func (_m *Socket) SetBlocking(blocking bool) bool {
	ret := _m.Called(blocking)

	var r0 bool
	if rf, ok := ret.Get(0).(func(bool) bool); ok {
		r0 = rf(blocking)
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

func (_m *Socket) LastSystemError() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
