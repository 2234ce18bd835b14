package mocks

import (
	context "context"

	models "github.com/aaravmahajanofficial/inventory-client/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// Remote is a mock type for the Remote type
type Remote struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx
func (_m *Remote) List(ctx context.Context) ([]models.Product, error) {
	ret := _m.Called(ctx)

	var r0 []models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Product)
	}

	return r0, ret.Error(1)
}

// Get provides a mock function with given fields: ctx, id
func (_m *Remote) Get(ctx context.Context, id int64) (models.Product, error) {
	ret := _m.Called(ctx, id)

	return ret.Get(0).(models.Product), ret.Error(1)
}

// Create provides a mock function with given fields: ctx, req
func (_m *Remote) Create(ctx context.Context, req *models.CreateProductRequest) (models.Product, error) {
	ret := _m.Called(ctx, req)

	return ret.Get(0).(models.Product), ret.Error(1)
}

// Update provides a mock function with given fields: ctx, id, req
func (_m *Remote) Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (models.Product, error) {
	ret := _m.Called(ctx, id, req)

	return ret.Get(0).(models.Product), ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *Remote) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

// NewRemote creates a new instance of Remote. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRemote(t interface {
	mock.TestingT
	Cleanup(func())
}) *Remote {
	m := &Remote{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
