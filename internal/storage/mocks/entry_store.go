package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// EntryStore is a mock type for the EntryStore type
type EntryStore struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, key
func (_m *EntryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ret := _m.Called(ctx, key)

	var r0 []byte
	if rf, ok := ret.Get(0).(func(context.Context, string) []byte); ok {
		r0 = rf(ctx, key)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}

	return r0, ret.Bool(1), ret.Error(2)
}

// Put provides a mock function with given fields: ctx, key, value
func (_m *EntryStore) Put(ctx context.Context, key string, value []byte) error {
	ret := _m.Called(ctx, key, value)

	return ret.Error(0)
}

// Close provides a mock function with no fields
func (_m *EntryStore) Close() error {
	ret := _m.Called()

	return ret.Error(0)
}

// NewEntryStore creates a new instance of EntryStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewEntryStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *EntryStore {
	m := &EntryStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
