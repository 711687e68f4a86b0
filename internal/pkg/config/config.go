package config

import (
	"io"
	"time"
)

// TimeConfig reads integer keys as durations with a fixed unit. A missing or
// non-numeric key yields the zero duration.
type TimeConfig interface {
	// GetSecond reads the key as a number of seconds.
	GetSecond(key string) time.Duration

	// GetMinute reads the key as a number of minutes.
	GetMinute(key string) time.Duration

	// GetHour reads the key as a number of hours.
	GetHour(key string) time.Duration

	// GetDay reads the key as a number of 24h days.
	GetDay(key string) time.Duration
}

// SignedIntConfig reads signed integer configuration values. Missing or
// unconvertible keys yield the zero value.
type SignedIntConfig interface {
	// GetInt reads the key as an int.
	GetInt(key string) int

	// GetInt32 reads the key as an int32.
	GetInt32(key string) int32

	// GetInt64 reads the key as an int64.
	GetInt64(key string) int64
}

// UnsignedIntConfig reads unsigned integer configuration values. Missing or
// unconvertible keys yield the zero value.
type UnsignedIntConfig interface {
	// GetUint reads the key as a uint.
	GetUint(key string) uint

	// GetUint16 reads the key as a uint16.
	GetUint16(key string) uint16

	// GetUint32 reads the key as a uint32.
	GetUint32(key string) uint32

	// GetUint64 reads the key as a uint64.
	GetUint64(key string) uint64
}

// FloatConfig reads floating-point configuration values. Missing or
// unconvertible keys yield the zero value.
type FloatConfig interface {
	// GetFloat32 reads the key as a float32.
	GetFloat32(key string) float32

	// GetFloat64 reads the key as a float64.
	GetFloat64(key string) float64
}

// Config is the typed read interface the application wires everywhere a
// component needs configuration. Implementations own source loading, type
// conversion and zero-value defaults; callers just ask for a key.
type Config interface {
	io.Closer
	TimeConfig
	SignedIntConfig
	UnsignedIntConfig
	FloatConfig

	// GetBool reads the key as a bool.
	GetBool(key string) bool

	// GetString reads the key as a string.
	GetString(key string) string

	// GetBinary reads the key as bytes. The stored value is base64 encoded.
	GetBinary(key string) []byte

	// GetArray reads the key as a string slice. Scalar sources may store it
	// as <element1>,<element2>,...
	GetArray(key string) []string

	// GetMap reads the key as a string map. Scalar sources may store it as
	// <key1>:<value1>,<key2>:<value2>,...
	GetMap(key string) map[string]string
}
