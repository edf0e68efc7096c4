package printer

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrinterFromConfig(t *testing.T) {
	tests := []struct {
		name        string
		printerType string
		device      string
		address     string
		wantErr     bool
	}{
		{name: "serial", printerType: "serial", device: "/dev/ttyUSB0"},
		{name: "serial without device", printerType: "serial", wantErr: true},
		{name: "network", printerType: "network", address: "192.168.1.50:9100"},
		{name: "network without address", printerType: "network", wantErr: true},
		{name: "none", printerType: "none"},
		{name: "empty defaults to none", printerType: ""},
		{name: "unknown type", printerType: "parallel", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPrinterFromConfig(tt.printerType, tt.device, 9600, tt.address)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestNullPrinter(t *testing.T) {
	p := NewNullPrinter()

	assert.NoError(t, p.Print([]byte{ESC, '@'}))
	assert.NoError(t, p.Close())
	assert.False(t, p.IsConnected())
}

func TestNetworkPrinter_PrintDeliversBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 1024)
		n, _ := conn.Read(buf)
		received <- buf[:n]
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	payload := []byte{ESC, '@', 'h', 'i', LF}
	require.NoError(t, p.Print(payload))

	assert.Equal(t, payload, <-received)
}

func TestNetworkPrinter_PrintFailsWhenUnreachable(t *testing.T) {
	// Bind a listener and close it so the port is known-dead.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	p := NewNetworkPrinter(addr)
	err = p.Print([]byte{ESC, '@'})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
	assert.False(t, p.IsConnected())
}
