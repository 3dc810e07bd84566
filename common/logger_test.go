package common

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	SetLogLevel(Debug)
	Debugf("this is a test")
	assert.True(t, DebugEnabled())
	assert.True(t, InfoEnabled())
	SetLogLevel(Info)
	assert.False(t, DebugEnabled())
	assert.True(t, InfoEnabled())
	Debugf("this is a test, no debug")
	Infof("this is a test, info")
	SetLogLevel("")
	assert.False(t, DebugEnabled())
	assert.True(t, InfoEnabled())
	Infof("this is a test, no level")
	Logf(Warn, "The is a test, warn")
	SetLogLevel(Error)
	assert.False(t, DebugEnabled())
	assert.False(t, InfoEnabled())
	assert.False(t, WarnEnabled())
	assert.True(t, ErrorEnabled())
	Infof("this is a test, no error")
	Errorf("this is a test, error")
	SetLogLevel(Info)
}

func TestLogConfigParse(t *testing.T) {
	old := currentLogger()
	defer SetLogger(old)

	conf := &LogConfig{Env: EnvProduction, Level: "warn", FileName: filepath.Join(t.TempDir(), "test.log"), NoCaller: true}
	assert.Nil(t, conf.Parse())
	assert.False(t, InfoEnabled())
	assert.True(t, WarnEnabled())
	Warnf("write to %s", conf.FileName)

	conf = &LogConfig{Level: "verbose"}
	assert.NotNil(t, conf.Parse())
}
