// internal/status/status.go
package status

// Connection states for the two process-wide links. One instance of each
// exists for the process lifetime; both start in their zero value at boot.

// ---- BROKER LINK ----

// Broker is the message-bus connection state.
type Broker int32

const (
	BrokerDisconnected Broker = iota
	BrokerConnecting
	BrokerConnected
)

func (b Broker) String() string {
	switch b {
	case BrokerDisconnected:
		return "disconnected"
	case BrokerConnecting:
		return "connecting"
	case BrokerConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// ---- SERIAL LINK ----

// Link is the serial connection state.
type Link int32

const (
	LinkClosed Link = iota
	LinkOpen
)

func (l Link) String() string {
	switch l {
	case LinkClosed:
		return "closed"
	case LinkOpen:
		return "open"
	default:
		return "unknown"
	}
}
