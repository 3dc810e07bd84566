package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/d0ngw/chanstat/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) (string, string) {
	dir := t.TempDir()
	statsFile := filepath.Join(dir, "statistics.json")
	conf := fmt.Sprintf(`
log:
  level: warn
providers:
  - name: foo
    statistics:
      threads_viewed: true
      posts_sent: true
      threads_created: true
  - name: bar
    statistics:
      posts_sent: true
preferences:
  driver: file
  file: %s
`, statsFile)
	path := filepath.Join(dir, "chanstat.yaml")
	require.Nil(t, os.WriteFile(path, []byte(conf), 0o644))
	return path, statsFile
}

func run(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	confPath, statsFile := writeTestConfig(t)

	for i := 0; i < 4; i++ {
		_, err := run(t, "--config", confPath, "view", "foo")
		require.Nil(t, err)
	}
	_, err := run(t, "--config", confPath, "post", "foo", "--new-thread")
	require.Nil(t, err)
	_, err = run(t, "--config", confPath, "post", "bar", "--new-thread")
	require.Nil(t, err)

	out, err := run(t, "--config", confPath, "items")
	require.Nil(t, err)
	assert.Equal(t, "PROVIDER  VIEWS  POSTS  THREADS\n"+
		"bar       -      1      -\n"+
		"foo       4      1      1\n", out)

	out, err = run(t, "--config", confPath, "export")
	require.Nil(t, err)
	assert.Equal(t, `{"bar":{"posts":1},"foo":{"posts":1,"threads":1,"views":4}}`+"\n", out)

	data, err := os.ReadFile(statsFile)
	require.Nil(t, err)
	assert.Equal(t, out, string(data)+"\n")

	_, err = run(t, "--config", confPath, "clear")
	require.Nil(t, err)
	out, err = run(t, "--config", confPath, "export")
	require.Nil(t, err)
	assert.Equal(t, "{}\n", out)

	_, err = run(t, "--config", confPath, "view")
	assert.NotNil(t, err)
	_, err = run(t, "--config", confPath, "serve")
	assert.NotNil(t, err)
	_, err = run(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "items")
	assert.NotNil(t, err)
}

func TestPrintItems(t *testing.T) {
	out := &bytes.Buffer{}
	require.Nil(t, printItems(out, map[string]stats.Item{
		"foo": {Views: 1234567, Posts: 0, Threads: stats.Unsupported},
	}))
	assert.Equal(t, "PROVIDER  VIEWS      POSTS  THREADS\n"+
		"foo       1,234,567  0      -\n", out.String())

	assert.Equal(t, "-", formatCounter(stats.Unsupported))
	assert.Equal(t, "1,000", formatCounter(1000))
}
