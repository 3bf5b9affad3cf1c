// File: internal/mocks/mocks.go
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xkilldash9x/screenplay-cli/internal/config"
	"github.com/xkilldash9x/screenplay-cli/internal/screenplay"
)

var (
	_ config.Interface    = (*MockConfig)(nil)
	_ screenplay.Driver   = (*MockDriver)(nil)
	_ screenplay.Element  = (*MockElement)(nil)
	_ screenplay.Listener = (*MockListener)(nil)
)

// -- Config Mock --

// MockConfig mocks the config.Interface.
type MockConfig struct {
	mock.Mock
}

// --- Getters ---

func (m *MockConfig) Logger() config.LoggerConfig {
	args := m.Called()
	return args.Get(0).(config.LoggerConfig)
}

func (m *MockConfig) Browser() config.BrowserConfig {
	args := m.Called()
	return args.Get(0).(config.BrowserConfig)
}

func (m *MockConfig) Scenario() config.ScenarioConfig {
	args := m.Called()
	return args.Get(0).(config.ScenarioConfig)
}

// --- Setters ---

func (m *MockConfig) SetBrowserHeadless(b bool) {
	m.Called(b)
}

func (m *MockConfig) SetBrowserScreenshotPolicy(p config.ScreenshotPolicy) {
	m.Called(p)
}

func (m *MockConfig) SetScenarioBaseURL(u string) {
	m.Called(u)
}

func (m *MockConfig) SetScenarioTags(tags string) {
	m.Called(tags)
}

func (m *MockConfig) SetScenarioPaths(paths []string) {
	m.Called(paths)
}

// -- Driver Mocks --

// MockDriver mocks screenplay.Driver.
type MockDriver struct {
	mock.Mock
}

func (m *MockDriver) Navigate(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

func (m *MockDriver) Locate(ctx context.Context, sel screenplay.Selector) (screenplay.Element, error) {
	args := m.Called(ctx, sel)
	if el := args.Get(0); el != nil {
		return el.(screenplay.Element), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDriver) LocateAll(ctx context.Context, sel screenplay.Selector) ([]screenplay.Element, error) {
	args := m.Called(ctx, sel)
	if els := args.Get(0); els != nil {
		return els.([]screenplay.Element), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockElement mocks screenplay.Element.
type MockElement struct {
	mock.Mock
}

func (m *MockElement) Visible(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockElement) Text(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockElement) SetValue(ctx context.Context, text string) error {
	return m.Called(ctx, text).Error(0)
}

func (m *MockElement) Click(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockListener mocks screenplay.Listener.
type MockListener struct {
	mock.Mock
}

func (m *MockListener) OnEvent(ctx context.Context, ev screenplay.Event) {
	m.Called(ctx, ev)
}
