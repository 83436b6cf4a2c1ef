package config

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestCreateFrontend(t *testing.T) {
	logger := log.NewTestLogger(t)

	fe, err := CreateFrontend(logger, options.FrontendHeadless, 1)
	assert.NoError(t, err)
	_, ok := fe.(*headless.Frontend)
	assert.True(t, ok)

	fe, err = CreateFrontend(logger, options.FrontendTerminal, 1)
	assert.NoError(t, err)
	_, ok = fe.(*terminal.Frontend)
	assert.True(t, ok)

	fe, err = CreateFrontend(logger, options.FrontendWindow, 4)
	assert.NoError(t, err)
	_, ok = fe.(*window.Frontend)
	assert.True(t, ok)

	_, err = CreateFrontend(logger, options.FrontendAuto, 1)
	assert.ErrorContains(t, err, "unsupported frontend")
}
