package logging_test

import (
	"bytes"
	"testing"

	"github.com/fivetwenty-io/fofa-cli/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLogger_Levels(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer

	logger := logging.New(&quiet, false)
	logger.Debug("hidden debug", nil)
	logger.Info("hidden info", nil)
	logger.Warn("size clamped", map[string]interface{}{"requested": 20000})

	assert.NotContains(t, quiet.String(), "hidden")
	assert.Contains(t, quiet.String(), "size clamped")
	assert.Contains(t, quiet.String(), "requested=20000")

	var verbose bytes.Buffer

	logger = logging.New(&verbose, true)
	logger.Debug("HTTP Request", map[string]interface{}{"path": "/search/all"})

	assert.Contains(t, verbose.String(), "HTTP Request")
	assert.Contains(t, verbose.String(), "path=/search/all")
}

func TestWrap(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.ErrorLevel)

	logger := logging.Wrap(base.WithField("component", "test"))
	logger.Warn("dropped", nil)
	logger.Error("kept", map[string]interface{}{"status": 502})

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
	assert.Contains(t, buf.String(), "component=test")
	assert.Contains(t, buf.String(), "status=502")
}
