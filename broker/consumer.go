package broker

import (
	"log"

	"github.com/nats-io/nats.go"
)

// StartConsumer subscribes to the given subjects and invokes handler for
// every message. Returns a stop function that drains the subscriptions.
func StartConsumer(url string, subjects []string, handler func(subject string, data []byte)) (func(), error) {
	nc, err := nats.Connect(url, nats.Name("mindspace-consumer"))
	if err != nil {
		return nil, err
	}

	subs := make([]*nats.Subscription, 0, len(subjects))
	for _, subject := range subjects {
		sub, err := nc.Subscribe(subject, func(msg *nats.Msg) {
			handler(msg.Subject, msg.Data)
		})
		if err != nil {
			nc.Close()
			return nil, err
		}
		subs = append(subs, sub)
	}

	log.Printf("NATS consumer started, listening on subjects: %v", subjects)

	stop := func() {
		for _, sub := range subs {
			if err := sub.Drain(); err != nil {
				log.Printf("Failed to drain subscription: %v", err)
			}
		}
		nc.Close()
	}
	return stop, nil
}
