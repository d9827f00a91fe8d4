package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/inkpost/inkpost/config"
	"github.com/inkpost/inkpost/internal/search"
	"github.com/inkpost/inkpost/pkg/helpers"
	"github.com/inkpost/inkpost/pkg/mailer"
)

// The worker drains the two durable queues the API publishes to:
// welcome emails (Mailgun) and blog search indexing (Elasticsearch).
func main() {
	cfg := config.Load()
	if cfg.RabbitMQURL == "" {
		log.Fatal("RabbitMQ not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	ctx := context.Background()

	if cfg.MailSendEnabled {
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			log.Fatal("Mailgun not configured")
		}
		mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		go consumeEmails(ctx, ch, cfg.RabbitMQEmailQueue, mg)
	} else {
		log.Println("MAIL_SEND_ENABLED=false; email consumer disabled")
	}

	if len(cfg.ESAddrs()) > 0 {
		es, esErr := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if esErr != nil {
			log.Fatalf("elasticsearch: %v", esErr)
		}
		go consumeIndexJobs(ctx, ch, cfg.RabbitMQIndexQueue, es, cfg.ESBlogsIndex)
	} else {
		log.Println("ELASTICSEARCH_ADDRS empty; index consumer disabled")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("worker shutting down")
}

func consumeEmails(ctx context.Context, ch *amqp.Channel, queue string, mg *mailer.Mailgun) {
	msgs, err := declareAndConsume(ch, queue)
	if err != nil {
		log.Fatalf("email consume: %v", err)
	}
	for msg := range msgs {
		var job mailer.EmailJob
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			log.Printf("bad email message: %v", err)
			_ = msg.Nack(false, false)
			continue
		}
		c, cancel := context.WithTimeout(ctx, 15*time.Second)
		err := mg.Send(c, job.To, job.Subject, job.Text, job.HTML)
		cancel()
		if err != nil {
			log.Printf("send to %s failed: %v", job.To, err)
			_ = msg.Nack(false, true) // requeue once delivery infra recovers
			continue
		}
		_ = msg.Ack(false)
	}
}

func consumeIndexJobs(ctx context.Context, ch *amqp.Channel, queue string, es *elasticsearch.Client, index string) {
	msgs, err := declareAndConsume(ch, queue)
	if err != nil {
		log.Fatalf("index consume: %v", err)
	}
	for msg := range msgs {
		var job search.IndexJob
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			log.Printf("bad index message: %v", err)
			_ = msg.Nack(false, false)
			continue
		}

		var opErr error
		switch job.Action {
		case search.ActionDelete:
			opErr = search.DeleteBlog(ctx, es, index, job.ID)
		case search.ActionIndex:
			opErr = search.IndexBlog(ctx, es, index, job.Doc)
		default:
			log.Printf("unknown index action %q", job.Action)
			_ = msg.Nack(false, false)
			continue
		}

		if opErr != nil {
			log.Printf("index %s %s failed: %v", job.Action, job.ID, opErr)
			_ = msg.Nack(false, true)
			continue
		}
		_ = msg.Ack(false)
	}
}

func declareAndConsume(ch *amqp.Channel, queue string) (<-chan amqp.Delivery, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(queue, "", false, false, false, false, nil)
}
