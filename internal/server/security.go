// Package server provides the listener security layers the HTTP server is
// started with: TLS when a certificate pair is configured, plain TCP
// otherwise.
package server

import (
	"crypto/tls"
	"fmt"
	"net"
)

// TLSListener opens TLS listeners using a certificate pair loaded from disk.
type TLSListener struct {
	certFile string
	keyFile  string
}

// NewTLSListener creates a TLSListener reading the certificate and private
// key from the given paths. The files are loaded on Listen, not here, so a
// bad path surfaces at startup.
func NewTLSListener(certFile, keyFile string) *TLSListener {
	return &TLSListener{
		certFile: certFile,
		keyFile:  keyFile,
	}
}

// Listen opens a TLS listener on addr.
func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFile, l.keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	return tls.Listen(protocol, addr, &tls.Config{
		Certificates: []tls.Certificate{cert},
	})
}

// PlainListener opens unencrypted TCP listeners.
type PlainListener struct{}

// NewPlainListener creates a PlainListener.
func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

// Listen opens a plain TCP listener on addr.
func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	return net.Listen(protocol, addr)
}
