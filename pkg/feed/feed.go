// Package feed publishes committed documents to a pubsub topic and follows
// them from a subscription.
//
// Every commit of the root editor becomes one message whose body is the
// compact JSON of the new value. The document name and value kind travel as
// metadata, so subscribers can filter without decoding.
package feed

import (
	"context"
	"errors"
	"fmt"

	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/mempubsub"

	"github.com/vango-dev/jsonedit/pkg/value"
)

// Metadata keys set on every published message.
const (
	MetaDocument = "document"
	MetaKind     = "kind"
)

// Change is one committed value of a document.
type Change struct {
	Document string
	Value    value.Value
}

// Publisher sends changes of one document to a topic.
type Publisher struct {
	topic    *pubsub.Topic
	document string
}

// NewPublisher publishes changes of document to topic. The publisher owns
// the topic and shuts it down on Close.
func NewPublisher(topic *pubsub.Topic, document string) *Publisher {
	return &Publisher{topic: topic, document: document}
}

// OpenPublisher opens the topic at url, e.g. mem://changes.
func OpenPublisher(ctx context.Context, url, document string) (*Publisher, error) {
	topic, err := pubsub.OpenTopic(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open topic %s: %w", url, err)
	}
	return NewPublisher(topic, document), nil
}

// OpenSubscription opens the subscription at url. For mem:// URLs the topic
// must already be open in this process.
func OpenSubscription(ctx context.Context, url string) (*pubsub.Subscription, error) {
	sub, err := pubsub.OpenSubscription(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open subscription %s: %w", url, err)
	}
	return sub, nil
}

// Publish sends v as the latest value of the document.
func (p *Publisher) Publish(ctx context.Context, v value.Value) error {
	body, err := value.Marshal(v)
	if err != nil {
		return err
	}
	err = p.topic.Send(ctx, &pubsub.Message{
		Body: body,
		Metadata: map[string]string{
			MetaDocument: p.document,
			MetaKind:     v.Kind().String(),
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", p.document, err)
	}
	return nil
}

// Close flushes pending messages and shuts the topic down.
func (p *Publisher) Close(ctx context.Context) error {
	return p.topic.Shutdown(ctx)
}

// Decode reads the change carried by msg.
func Decode(msg *pubsub.Message) (Change, error) {
	v, err := value.Parse(msg.Body)
	if err != nil {
		return Change{}, fmt.Errorf("decode %s: %w", msg.LoggableID, err)
	}
	return Change{Document: msg.Metadata[MetaDocument], Value: v}, nil
}

// Receive waits for the next message on sub, acknowledges it and decodes it.
// Messages are acknowledged even when they fail to decode, so one bad message
// cannot stall the subscription.
func Receive(ctx context.Context, sub *pubsub.Subscription) (Change, error) {
	msg, err := sub.Receive(ctx)
	if err != nil {
		return Change{}, err
	}
	msg.Ack()
	return Decode(msg)
}

func shuttingDown(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
