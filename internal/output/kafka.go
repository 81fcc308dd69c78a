package output

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"github.com/bitesuae/bitesdata/internal/models"
)

// Publisher streams dataset rows to Kafka, one topic per sheet, as JSON.
type Publisher struct {
	producer    sarama.SyncProducer
	topicPrefix string
}

// NewPublisher connects a sync producer to the given comma-separated broker
// list.
func NewPublisher(brokerList, topicPrefix string) (*Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	brokers := strings.Split(brokerList, ",")
	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	log.Printf("Sarama producer created successfully with brokers %v", brokers)
	return &Publisher{producer: producer, topicPrefix: topicPrefix}, nil
}

// Publish sends every row of the dataset. Topics are <prefix>.<sheet> in
// lower case.
func (p *Publisher) Publish(ds *models.Dataset) error {
	if err := publishRows(p, SheetCustomers, asAny(ds.Customers)); err != nil {
		return err
	}
	if err := publishRows(p, SheetRestaurants, asAny(ds.Restaurants)); err != nil {
		return err
	}
	if err := publishRows(p, SheetRiders, asAny(ds.Riders)); err != nil {
		return err
	}
	if err := publishRows(p, SheetOrders, asAny(ds.Orders)); err != nil {
		return err
	}
	if err := publishRows(p, SheetOrderItems, asAny(ds.OrderItems)); err != nil {
		return err
	}
	return publishRows(p, SheetDeliveryEvents, asAny(ds.DeliveryEvents))
}

func publishRows(p *Publisher, sheet string, rows []interface{}) error {
	topic := p.topicPrefix + "." + strings.ToLower(sheet)
	for _, row := range rows {
		msg, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshalling %s row: %w", sheet, err)
		}
		if _, _, err := p.producer.SendMessage(&sarama.ProducerMessage{
			Topic: topic,
			Value: sarama.ByteEncoder(msg),
		}); err != nil {
			return fmt.Errorf("sending to topic %s: %w", topic, err)
		}
	}
	log.Printf("published %d messages to topic %s", len(rows), topic)
	return nil
}

func asAny[T any](rows []T) []interface{} {
	out := make([]interface{}, len(rows))
	for i := range rows {
		out[i] = rows[i]
	}
	return out
}

func (p *Publisher) Close() error {
	if p.producer == nil {
		return nil
	}
	err := p.producer.Close()
	p.producer = nil
	return err
}
