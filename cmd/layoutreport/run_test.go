package main

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsivsi/nodelayout"
	"github.com/vsivsi/nodelayout/internal/config"
	"github.com/vsivsi/nodelayout/internal/logger"
)

func load(t *testing.T, args ...string) *config.Config {
	t.Helper()
	cfg, err := config.Load(args)
	require.NoError(t, err)
	logger.InitLogger("DISABLED", cfg.AppName, io.Discard)
	return cfg
}

func TestRunTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(load(t), &buf))

	out := buf.String()
	assert.Contains(t, out, "w = 64, S = 7")
	assert.Contains(t, out, "max j")
	assert.Contains(t, out, "page2M")
	assert.Contains(t, out, "32760")
	assert.Contains(t, out, "26094")
	assert.Contains(t, out, "4095")
}

func TestRunJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(load(t, "--format=json", "--strategies=fixed", "--regions=page=4KiB"), &buf))

	var got struct {
		Entries []struct {
			Region   string
			MaxIndex int64
			Height   uint64
		}
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "page", got.Entries[0].Region)
	assert.Equal(t, int64(511), got.Entries[0].MaxIndex)
	assert.Equal(t, uint64(9), got.Entries[0].Height)
}

func TestRunMsgpack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(load(t, "--format=msgpack"), &buf))

	var got nodelayout.Report
	require.NoError(t, got.UnmarshalBinary(buf.Bytes()))
	e, ok := got.Lookup(nodelayout.Byte, "L2")
	require.True(t, ok)
	assert.Equal(t, int64(208740), e.MaxIndex)
}

func TestRunOffsets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(load(t, "--index=16"), &buf))

	out := buf.String()
	assert.Contains(t, out, "j = 16, bit node width = 11")
	assert.Contains(t, out, "1024") // fixed
	assert.Contains(t, out, "160")  // byte
	assert.Contains(t, out, "191")  // bit

	buf.Reset()
	require.NoError(t, run(load(t, "--index=0", "--strategies=bit"), &buf))
	assert.Contains(t, buf.String(), "bit node width = -")
}
