package authgate

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrNilJar is an exported constant or variable used by the authentication engine.
	ErrNilJar = errors.New("cookie jar required")
	// ErrNoSession is an exported constant or variable used by the authentication engine.
	ErrNoSession = errors.New("no active session")
	// ErrSessionRevoked is an exported constant or variable used by the authentication engine.
	ErrSessionRevoked = errors.New("session revoked by identity backend")
	// ErrBackendUnreachable is an exported constant or variable used by the authentication engine.
	ErrBackendUnreachable = errors.New("identity backend unreachable")
	// ErrBackendProtocol is an exported constant or variable used by the authentication engine.
	ErrBackendProtocol = errors.New("identity backend protocol violation")
)
