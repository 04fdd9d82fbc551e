package mqtt

import "errors"

// ErrNotConnected is returned when publishing on a closed connection.
var ErrNotConnected = errors.New("mqtt client not connected")
