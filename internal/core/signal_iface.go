package core

import (
	"errors"

	"github.com/dkeye/callrelay/internal/domain"
)

// Frame is one serialized envelope.
type Frame []byte

// SignalConnection abstracts the messaging transport of one participant.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend enqueues f without blocking.
	TrySend(Frame) error
	IsOpen() bool
	Close()
}

// Peer is the connection an inbound message arrived on.
type Peer interface {
	SignalConnection
	ID() string
	// Bound reports the identity established by a join on this connection.
	Bound() (domain.MemberRef, bool)
}

// ErrBackpressure is returned by TrySend when the send queue is full.
var ErrBackpressure = errors.New("backpressure")

// PublishResult reports delivery stats/backpressure of one fan-out.
type PublishResult struct {
	SendTo  int
	Skipped int
	Dropped []domain.ParticipantID
}

// Recorder observes dispatch and delivery for metrics collaborators.
type Recorder interface {
	ObserveMessage(t domain.MessageType, err error)
	ObserveDelivery(res PublishResult)
}
