package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitWithFileConfigBuildsLogger(t *testing.T) {
	err := InitWithFileConfig("debug", FileConfig{}, false)
	assert.NoError(t, err)
	assert.NotNil(t, Log)
	assert.NotNil(t, Sugar)
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	assert.Equal(t, "info", parseLevel("bogus").String())
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "warn", parseLevel("warn").String())
	assert.Equal(t, "error", parseLevel("error").String())
}
