package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishCallsHandlersInOrder(t *testing.T) {
	bus := New("test")
	var seen []string
	bus.Subscribe("t", func(e Event) { seen = append(seen, "a:"+e.Payload.(string)) })
	bus.Subscribe("t", func(e Event) { seen = append(seen, "b:"+e.Payload.(string)) })
	bus.Subscribe("other", func(e Event) { seen = append(seen, "other") })

	bus.Publish("t", "x")

	assert.Equal(t, []string{"a:x", "b:x"}, seen)
	assert.Equal(t, uint64(1), bus.Published("t"))
	assert.Zero(t, bus.Published("other"))
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New("test")
	calls := 0
	cancel := bus.Subscribe(TopicState, func(Event) { calls++ })
	assert.Equal(t, 1, bus.SubscriberCount(TopicState))

	bus.Publish(TopicState, StateChange{From: "OFF", To: "IDLE"})
	cancel()
	cancel()
	bus.Publish(TopicState, StateChange{From: "IDLE", To: "OFF"})

	assert.Equal(t, 1, calls)
	assert.Zero(t, bus.SubscriberCount(TopicState))
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := New("test")
	var topics []Topic
	cancel := bus.SubscribeAll(func(e Event) { topics = append(topics, e.Topic) }, TopicFault, TopicPlan)

	bus.Publish(TopicPlan, Plan{})
	bus.Publish(TopicFault, Fault{})
	bus.Publish(TopicTick, Tick{})
	cancel()
	bus.Publish(TopicPlan, Plan{})

	assert.Equal(t, []Topic{TopicPlan, TopicFault}, topics)
}

func TestBus_ReentrantSubscribe(t *testing.T) {
	bus := New("test")
	inner := 0
	bus.Subscribe("t", func(Event) {
		bus.Subscribe("t", func(Event) { inner++ })
	})
	bus.Publish("t", nil)
	assert.Zero(t, inner)
	bus.Publish("t", nil)
	assert.Equal(t, 1, inner)
}

func TestBus_NilIsNoop(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() { bus.Publish(TopicTick, nil) })
}
