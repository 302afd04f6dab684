// Package transport configures the platform-specific socket options this
// proxy's listen socket depends on: address reuse across restarts and an
// enlarged receive buffer so a burst of client datagrams does not overrun
// the kernel socket queue while a worker is busy with an upstream exchange.
package transport

import "net"

// RecvBufferSize is the SO_RCVBUF size requested on the listen socket.
const RecvBufferSize = 1 << 20 // 1 MiB

// ListenConfig returns a net.ListenConfig whose Control hook applies this
// platform's socket tuning before the listen socket is bound.
func ListenConfig() net.ListenConfig {
	return net.ListenConfig{Control: platformControl}
}
