package kafka

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Publisher is what the service layer sees; Producer is the sarama-backed
// implementation. Publishing is fire-and-forget: a broker failure is logged
// and never fails the request that triggered the event.
type Publisher interface {
	PublishCategoryCreatedEvent(data map[string]interface{})
	PublishCategoryUpdatedEvent(data map[string]interface{})
	PublishCategoryDeletedEvent(data map[string]interface{})
	PublishProductCreatedEvent(data map[string]interface{})
	PublishProductUpdatedEvent(data map[string]interface{})
	PublishProductDeletedEvent(data map[string]interface{})
	PublishStockUpdatedEvent(data map[string]interface{})
	PublishOrderCreatedEvent(data map[string]interface{})
	PublishOrderStatusUpdatedEvent(data map[string]interface{})
}

type Producer struct {
	producer sarama.SyncProducer
}

var _ Publisher = (*Producer)(nil)

func NewProducer() *Producer {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		broker = "kafka:9092"
	}

	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	var producer sarama.SyncProducer
	var err error

	for i := 1; i <= 10; i++ {
		producer, err = sarama.NewSyncProducer([]string{broker}, config)
		if err == nil {
			log.Println("Kafka producer initialized for store-service")
			return &Producer{producer: producer}
		}

		log.Printf("Waiting for Kafka... (%d/10) Error: %v", i, err)
		time.Sleep(5 * time.Second)
	}

	log.Fatalf("Failed to start Kafka producer after retries: %v", err)
	return nil
}

func (p *Producer) PublishCategoryCreatedEvent(data map[string]interface{}) {
	p.publish("category.created", data)
}

func (p *Producer) PublishCategoryUpdatedEvent(data map[string]interface{}) {
	p.publish("category.updated", data)
}

func (p *Producer) PublishCategoryDeletedEvent(data map[string]interface{}) {
	p.publish("category.deleted", data)
}

func (p *Producer) PublishProductCreatedEvent(data map[string]interface{}) {
	p.publish("product.created", data)
}

func (p *Producer) PublishProductUpdatedEvent(data map[string]interface{}) {
	p.publish("product.updated", data)
}

func (p *Producer) PublishProductDeletedEvent(data map[string]interface{}) {
	p.publish("product.deleted", data)
}

func (p *Producer) PublishStockUpdatedEvent(data map[string]interface{}) {
	p.publish("stock.updated", data)
}

func (p *Producer) PublishOrderCreatedEvent(data map[string]interface{}) {
	p.publish("order.created", data)
}

func (p *Producer) PublishOrderStatusUpdatedEvent(data map[string]interface{}) {
	p.publish("order.status_updated", data)
}

func (p *Producer) publish(topic string, data map[string]interface{}) {
	event := map[string]interface{}{
		"event_id":   uuid.NewString(),
		"event_type": topic,
		"data":       data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal event: %v", err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Value:     sarama.ByteEncoder(payload),
		Timestamp: time.Now(),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		log.Printf("Failed to send Kafka message: %v", err)
		return
	}

	log.Printf("Published %s: %s", topic, string(payload))
}
