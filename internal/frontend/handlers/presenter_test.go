package handlers

import (
	"bytes"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/crawl/internal/frontend/telnet"
)

func TestConsolePresenter(t *testing.T) {
	var out bytes.Buffer
	p := NewConsolePresenter(strings.NewReader("look\nnorth\n"), &out, "> ")

	require.NoError(t, p.Display("Floor 1"))
	line, err := p.AwaitChoice()
	require.NoError(t, err)
	assert.Equal(t, "look", line)
	line, err = p.AwaitChoice()
	require.NoError(t, err)
	assert.Equal(t, "north", line)
	_, err = p.AwaitChoice()
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "Floor 1\n> > > ", out.String())
}

func TestTelnetPresenter(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()
	p := NewTelnetPresenter(telnet.NewConn(server, time.Second, time.Second), "> ")

	got := make(chan string, 1)
	go func() {
		buf := make([]byte, 64)
		var all []byte
		for !bytes.Contains(all, []byte("> ")) {
			n, err := client.Read(buf)
			all = append(all, buf[:n]...)
			if err != nil {
				break
			}
		}
		got <- string(all)
		_, _ = client.Write([]byte("fight\r\n"))
	}()

	require.NoError(t, p.Display("one\ntwo\n"))
	line, err := p.AwaitChoice()
	require.NoError(t, err)
	assert.Equal(t, "fight", line)
	assert.Equal(t, "one\r\ntwo\r\n> ", <-got)
}
