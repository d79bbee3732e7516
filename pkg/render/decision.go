package render

import (
	"encoding"

	"github.com/mywio/guilded-relay/pkg/guilded"
	"github.com/mywio/guilded-relay/pkg/webhook"
)

// Kind is the outcome of handling one webhook.
type Kind int

const (
	KindSend Kind = iota
	KindSuppress
	KindReject
)

var _ encoding.TextMarshaler = Kind(0)

func (k Kind) String() string {
	switch k {
	case KindSend:
		return "send"
	case KindSuppress:
		return "suppress"
	case KindReject:
		return "reject"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Decision is what to do with a webhook: send a message, send nothing, or
// reject the request.
type Decision struct {
	Kind    Kind             `json:"kind"`
	Message *guilded.Message `json:"message,omitempty"`
	Reason  string           `json:"reason,omitempty"`
	Err     *webhook.Error   `json:"error,omitempty"`
}

func Send(msg guilded.Message) Decision {
	return Decision{Kind: KindSend, Message: &msg}
}

func Suppress(reason string) Decision {
	return Decision{Kind: KindSuppress, Reason: reason}
}

func Reject(err *webhook.Error) Decision {
	d := Decision{Kind: KindReject, Err: err}
	if err != nil {
		d.Reason = err.Message
	}
	return d
}
