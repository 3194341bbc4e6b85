package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depsync/internal/adapters/logger"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	log.Info("wrote environment descriptor")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "wrote environment descriptor")
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	log.Warn("snapshot line skipped")

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "snapshot line skipped")
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	log.Error(errors.New("descriptor unreadable"))

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "descriptor unreadable")
}

func TestLogger_ErrorNil(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	log.Error(nil)

	assert.Empty(t, buf.String())
}
