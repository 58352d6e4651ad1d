package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// TopicInfo documents a registered typed topic.
type TopicInfo struct {
	Name          string
	Description   string
	TypeName      string
	PayloadFields []string
}

var (
	registryMu sync.RWMutex
	registry   = map[string]TopicInfo{}
)

// Topics lists every typed topic declared with NewEvent, sorted by name.
func Topics() []TopicInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]TopicInfo, 0, len(registry))
	for _, info := range registry {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Event[T] wraps a topic name and provides type-safe publishing and subscribing.
type Event[T any] struct {
	topicName string
}

// NewEvent declares a typed topic and records it in the topic registry. The
// payload field list is taken from T's json tags. Declaring the same name twice
// panics; events are package-level values, so this fails at startup.
func NewEvent[T any](name, description string) Event[T] {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	var fields []string
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("json")
			if tag == "" || tag == "-" {
				continue
			}
			field, _, _ := strings.Cut(tag, ",")
			fields = append(fields, field)
		}
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("pubsub: topic %q declared twice", name))
	}
	registry[name] = TopicInfo{
		Name:          name,
		Description:   description,
		TypeName:      t.String(),
		PayloadFields: fields,
	}

	return Event[T]{topicName: name}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Publish sends a typed event.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], payload T, metadata map[string]string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", event.Name(), err)
	}

	return p.Publish(ctx, Message{
		Topic:    event.Name(),
		Payload:  data,
		Metadata: metadata,
	})
}

// Subscribe decodes each message on event's topic into T before calling handler.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], handler func(ctx context.Context, payload T, msg Message) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", event.Name(), err)
		}
		return handler(ctx, payload, msg)
	})
}
