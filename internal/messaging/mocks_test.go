package messaging_test

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
)

type sampleEvent struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

type fakeSubscriber struct {
	mu           sync.Mutex
	msgs         chan *message.Message
	subscribeErr error
	closed       bool
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{msgs: make(chan *message.Message, 8)}
}

func (f *fakeSubscriber) Subscribe(_ context.Context, _ string) (<-chan *message.Message, error) {
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}

	return f.msgs, nil
}

func (f *fakeSubscriber) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.closed {
		f.closed = true
		close(f.msgs)
	}

	return nil
}

type fakePublisher struct {
	topic      string
	published  []*message.Message
	publishErr error
	closeErr   error
	closed     bool
}

func (f *fakePublisher) Publish(topic string, msgs ...*message.Message) error {
	if f.publishErr != nil {
		return f.publishErr
	}

	f.topic = topic
	f.published = append(f.published, msgs...)

	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true

	return f.closeErr
}

type fakeRunnable struct {
	started     bool
	stopped     bool
	startErr    error
	shutdownErr error
}

func (f *fakeRunnable) Start(_ context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}

	f.started = true

	return nil
}

func (f *fakeRunnable) Shutdown() error {
	f.stopped = true

	return f.shutdownErr
}
