package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	cases := []struct {
		args    []string
		command string
		steps   int
	}{
		{nil, "up", 0},
		{[]string{"up"}, "up", 0},
		{[]string{"up", "2"}, "up", 2},
		{[]string{"down", "1"}, "down", 1},
		{[]string{"version"}, "version", 0},
	}
	for _, tc := range cases {
		command, steps, err := parseArgs(tc.args)
		require.NoError(t, err, "%v", tc.args)
		assert.Equal(t, tc.command, command)
		assert.Equal(t, tc.steps, steps)
	}
}

func TestParseArgs_Invalid(t *testing.T) {
	for _, args := range [][]string{
		{"sideways"},
		{"up", "zero"},
		{"down", "0"},
		{"down", "1", "2"},
		{"version", "3"},
	} {
		_, _, err := parseArgs(args)
		assert.Error(t, err, "%v", args)
	}
}

func TestRun_RequiresDatabase(t *testing.T) {
	err := run("../../configs/dev.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.enabled is false")
}
