package mocks

import (
	"context"

	"remote-loader/core/remote"

	"github.com/stretchr/testify/mock"
)

// ModuleLoader is a mock implementation of remote.ModuleLoader
type ModuleLoader struct {
	mock.Mock
}

func (m *ModuleLoader) LoadModule(ctx context.Context, req remote.ModuleRequest) (remote.ModuleRecord, error) {
	args := m.Called(ctx, req)
	if rec, ok := args.Get(0).(remote.ModuleRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

// StylesheetInserter is a mock implementation of remote.StylesheetInserter
type StylesheetInserter struct {
	mock.Mock
}

func (m *StylesheetInserter) Insert(ctx context.Context, link remote.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

// JSONFetcher is a mock implementation of remote.JSONFetcher
type JSONFetcher struct {
	mock.Mock
}

func (m *JSONFetcher) FetchJSON(ctx context.Context, url string) (any, error) {
	args := m.Called(ctx, url)
	return args.Get(0), args.Error(1)
}
