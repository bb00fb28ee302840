package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"node-manager/core/etcd"
)

// Client is a mock implementation of etcd.Client
type Client struct {
	mock.Mock
}

func (m *Client) Put(ctx context.Context, identifier string, value []byte) etcd.PutResult {
	args := m.Called(ctx, identifier, value)
	return args.Get(0).(etcd.PutResult)
}

func (m *Client) Get(ctx context.Context, identifier string) etcd.GetResult {
	args := m.Called(ctx, identifier)
	return args.Get(0).(etcd.GetResult)
}
