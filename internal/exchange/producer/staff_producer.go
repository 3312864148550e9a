package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medhatjachour/employee-management/internal/dto"
)

// StaffProducer publishes staff change events after successful
// mutations. Employee and manager events go to separate topics.
type StaffProducer struct {
	sp             sarama.SyncProducer
	topicEmployees string
	topicManagers  string
	source         string
	log            zerolog.Logger
}

type Config struct {
	TopicEmployees string
	TopicManagers  string
	Source         string
}

func NewStaffProducer(sp sarama.SyncProducer, cfg Config, log zerolog.Logger) *StaffProducer {
	return &StaffProducer{
		sp:             sp,
		topicEmployees: cfg.TopicEmployees,
		topicManagers:  cfg.TopicManagers,
		source:         cfg.Source,
		log:            log.With().Str("component", "StaffProducer").Logger(),
	}
}

func (p *StaffProducer) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}
	return p.sp.Close()
}

func (p *StaffProducer) ProduceEmployee(ctx context.Context, kind string, e dto.Employee) error {
	env := Envelope[EmployeePayload]{
		Kind:      kind,
		MessageID: uuid.New(),
		Payload: EmployeePayload{
			ID:          e.ID,
			FullName:    e.FullName,
			EmployeeID:  e.EmployeeID,
			Email:       e.Email,
			JobTitle:    e.JobTitle,
			Department:  e.Department,
			HireDate:    e.HireDate,
			Salary:      e.Salary,
			Status:      e.Status,
			ManagerID:   e.ManagerID,
			AddedByID:   e.AddedByID,
			UpdatedByID: e.UpdatedByID,
		},
		Timestamp: time.Now().UTC(),
		Source:    p.source,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	return p.send(ctx, p.topicEmployees, env.MessageID.String(), body, map[string]string{
		"event-kind":   kind,
		"source":       p.source,
		"content-type": "application/json",
	})
}

func (p *StaffProducer) ProduceManager(ctx context.Context, kind string, m dto.Manager) error {
	env := Envelope[ManagerPayload]{
		Kind:      kind,
		MessageID: uuid.New(),
		Payload: ManagerPayload{
			ID:        m.ID,
			FullName:  m.FullName,
			ManagerID: m.ManagerID,
			Email:     m.Email,
			Level:     m.Level,
		},
		Timestamp: time.Now().UTC(),
		Source:    p.source,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	return p.send(ctx, p.topicManagers, env.MessageID.String(), body, map[string]string{
		"event-kind":   kind,
		"source":       p.source,
		"content-type": "application/json",
	})
}

func (p *StaffProducer) send(_ context.Context, topic, key string, value []byte, headers map[string]string) error {
	if p == nil || p.sp == nil {
		return errors.New("sync producer is not initialized")
	}

	var hs []sarama.RecordHeader
	for k, v := range headers {
		hs = append(hs, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(value),
		Headers: hs,
	}

	part, off, err := p.sp.SendMessage(msg)
	if err != nil {
		p.log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Int("bytes", len(value)).
			Msg("failed to send kafka message")
		return fmt.Errorf("send kafka message: %w", err)
	}

	p.log.Info().
		Str("topic", topic).
		Str("key", key).
		Int32("partition", part).
		Int64("offset", off).
		Int("bytes", len(value)).
		Msg("kafka message sent")
	return nil
}
