package engine

import "github.com/resolve109/solo-leveling/internal/flavor"

// Sink receives the chat messages the service produces.
type Sink interface {
	Send(flavor.Message)
}

type SinkFunc func(flavor.Message)

func (f SinkFunc) Send(m flavor.Message) { f(m) }

// MultiSink fans a message out to every sink in order.
type MultiSink []Sink

func (ms MultiSink) Send(m flavor.Message) {
	for _, s := range ms {
		if s != nil {
			s.Send(m)
		}
	}
}

// Discard drops every message.
var Discard Sink = SinkFunc(func(flavor.Message) {})
