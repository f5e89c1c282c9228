package broker

import (
	"log"

	"github.com/nats-io/nats.go"
)

// Producer publishes events to interested consumers (UI processes, the
// notification presenter). Publishing is best effort; the core never blocks
// on it.
type Producer interface {
	PublishMessage(subject string, data []byte) error
	Close()
}

type natsProducer struct {
	nc *nats.Conn
}

// NewNatsProducer connects to the NATS server at url.
func NewNatsProducer(url string) (Producer, error) {
	nc, err := nats.Connect(url, nats.Name("mindspace"))
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS at %s", url)
	return &natsProducer{nc: nc}, nil
}

func (p *natsProducer) PublishMessage(subject string, data []byte) error {
	return p.nc.Publish(subject, data)
}

func (p *natsProducer) Close() {
	p.nc.Drain()
}

// logProducer drops messages after logging them. Used when no broker is
// reachable so the application keeps working standalone.
type logProducer struct{}

func NewLogProducer() Producer {
	return logProducer{}
}

func (logProducer) PublishMessage(subject string, data []byte) error {
	log.Printf("Event on %s: %s", subject, data)
	return nil
}

func (logProducer) Close() {}
