package notifications

import (
	"context"
	"fmt"
	"testing"

	"mentor-match/internal/services/accounts"

	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func benchEvent(recipient bson.ObjectID) Event {
	return Event{
		Type:      EventNotification,
		Recipient: recipient,
		Notification: &accounts.Notification{
			ID:      ulid.Make().String(),
			Kind:    accounts.KindMentorshipRequest,
			Message: "Bench has requested you as a mentor",
		},
	}
}

// BenchmarkHub_Subscribe measures subscribe plus unsubscribe on a shared user set
func BenchmarkHub_Subscribe(b *testing.B) {
	hub := NewHub(64)
	userIDs := make([]bson.ObjectID, 1024)
	for i := range userIDs {
		userIDs[i] = bson.NewObjectID()
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, cancel := hub.Subscribe(ulid.Make(), userIDs[i%len(userIDs)])
			cancel()
			i++
		}
	})
}

// BenchmarkHub_Publish measures fan-out to users with several open tabs.
// Outboxes fill up quickly, so most iterations exercise the drop path.
func BenchmarkHub_Publish(b *testing.B) {
	for _, users := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("users_%d", users), func(b *testing.B) {
			hub := NewHub(64)
			events := make([]Event, users)
			for i := range events {
				uid := bson.NewObjectID()
				for range 3 {
					_, cancel := hub.Subscribe(ulid.Make(), uid)
					b.Cleanup(cancel)
				}
				events[i] = benchEvent(uid)
			}

			ctx := context.Background()
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					hub.Publish(ctx, events[i%len(events)])
					i++
				}
			})
		})
	}
}

// BenchmarkHub_Mixed subscribes, publishes and unsubscribes in one step
func BenchmarkHub_Mixed(b *testing.B) {
	hub := NewHub(64)
	ctx := context.Background()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			uid := bson.NewObjectID()
			_, cancel := hub.Subscribe(ulid.Make(), uid)
			hub.Publish(ctx, benchEvent(uid))
			cancel()
		}
	})
}
