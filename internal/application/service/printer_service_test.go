package service

import (
	"errors"
	"testing"

	"github.com/lengolf/pos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrinter struct {
	jobs      [][]byte
	failWith  error
	connected bool
}

func (p *fakePrinter) Print(data []byte) error {
	if p.failWith != nil {
		return p.failWith
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *fakePrinter) Close() error      { return nil }
func (p *fakePrinter) IsConnected() bool { return p.connected }

func TestPrinterService_Print(t *testing.T) {
	fake := &fakePrinter{connected: true}
	svc := NewPrinterService(fake, "serial", 42)

	err := svc.Print(sampleReceiptData())

	require.NoError(t, err)
	require.Len(t, fake.jobs, 1)
	// The job is a complete ESC/POS stream: init at the front, cut at the end.
	job := fake.jobs[0]
	assert.Equal(t, []byte{0x1B, '@'}, job[:2])
	assert.Equal(t, []byte{0x1D, 'V', 0x01}, job[len(job)-3:])
}

func TestPrinterService_PrintFailureIsTransportError(t *testing.T) {
	fake := &fakePrinter{failWith: errors.New("port stuck")}
	svc := NewPrinterService(fake, "serial", 42)

	err := svc.Print(sampleReceiptData())

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindTransport))
	assert.Equal(t, 502, apperror.GetAppError(err).Code)
}

func TestPrinterService_GetStatus(t *testing.T) {
	tests := []struct {
		name           string
		printerType    string
		connected      bool
		wantConfigured bool
	}{
		{name: "serial connected", printerType: "serial", connected: true, wantConfigured: true},
		{name: "serial unplugged", printerType: "serial", connected: false, wantConfigured: true},
		{name: "disabled", printerType: "none", connected: false, wantConfigured: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPrinterService(&fakePrinter{connected: tt.connected}, tt.printerType, 42)
			status := svc.GetStatus()
			assert.Equal(t, tt.wantConfigured, status.Configured)
			assert.Equal(t, tt.connected, status.Connected)
			assert.Equal(t, tt.printerType, status.Type)
		})
	}
}

func TestPrinterService_TestPrint(t *testing.T) {
	fake := &fakePrinter{connected: true}
	svc := NewPrinterService(fake, "serial", 42)

	receipt, err := svc.TestPrint()

	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Len(t, fake.jobs, 1)
}
