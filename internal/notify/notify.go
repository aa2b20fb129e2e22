// Package notify turns roster change events into notification records, the
// way the customer dashboard's notification tab is fed.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/alfredjeanlab/counsel/internal/events"
	"github.com/alfredjeanlab/counsel/internal/model"
	"github.com/alfredjeanlab/counsel/internal/store"
)

// Notification types written by the handler. They are values of the
// notification schema's "type" category.
const (
	TypeConsultationAccepted = "consultation_accepted"
	TypeCaseUpdate           = "case_update"
)

// Handler derives notifications from record events.
type Handler struct {
	store  store.Store
	logger *slog.Logger
}

// NewHandler creates a notification handler backed by the given store.
func NewHandler(s store.Store, logger *slog.Logger) *Handler {
	return &Handler{store: s, logger: logger}
}

// Derive returns the notification an upsert should produce, or nil.
// Notification IDs are derived from the source record and its state, so
// replaying an event rewrites the same notification.
func Derive(e events.RecordUpserted) *model.Record {
	rec := e.Record
	if rec == nil {
		return nil
	}
	switch rec.Kind {
	case model.KindAppointment:
		if rec.String("status") != "confirmed" {
			return nil
		}
		lawyer := rec.String("lawyer")
		if lawyer == "" {
			lawyer = "Your lawyer"
		}
		msg := lawyer + " has accepted your consultation request"
		if spec := rec.String("specialization"); spec != "" {
			msg += " for " + spec
		}
		return &model.Record{
			ID:   "nt-" + rec.ID + "-accepted",
			Kind: model.KindNotification,
			Fields: map[string]any{
				"type":    TypeConsultationAccepted,
				"title":   "Consultation Request Accepted",
				"message": msg,
				"read":    false,
			},
		}
	case model.KindCase:
		if e.Created {
			return nil
		}
		status := rec.String("status")
		title := rec.String("title")
		if title == "" {
			title = rec.ID
		}
		return &model.Record{
			ID:   "nt-" + rec.ID + "-" + status,
			Kind: model.KindNotification,
			Fields: map[string]any{
				"type":    TypeCaseUpdate,
				"title":   "Case Status Updated",
				"message": fmt.Sprintf("Your case %q is now %s", title, status),
				"read":    false,
			},
		}
	}
	return nil
}

// HandleUpsert stores the notification derived from e, if any. It returns
// the stored notification.
func (h *Handler) HandleUpsert(ctx context.Context, e events.RecordUpserted) (*model.Record, error) {
	n := Derive(e)
	if n == nil {
		return nil, nil
	}
	if err := model.ValidateRecord(n); err != nil {
		return nil, fmt.Errorf("notify: derived invalid notification: %w", err)
	}
	if err := h.store.UpsertRecord(ctx, n); err != nil {
		return nil, fmt.Errorf("notify: store %s: %w", n.ID, err)
	}
	h.logger.Info("notify: notification stored", "id", n.ID, "source", e.Record.ID)
	return n, nil
}

// Publisher handles record upserts in-process before passing every event on
// to the wrapped publisher. It stands in for the subscriber when there is no
// event bus.
type Publisher struct {
	handler *Handler
	next    events.Publisher
}

var _ events.Publisher = (*Publisher)(nil)

// Publisher wraps next so upserts published through it produce
// notifications. A nil next discards events after handling them.
func (h *Handler) Publisher(next events.Publisher) *Publisher {
	if next == nil {
		next = &events.NoopPublisher{}
	}
	return &Publisher{handler: h, next: next}
}

func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	if e, ok := event.(events.RecordUpserted); ok && topic == events.TopicRecordUpserted {
		if _, err := p.handler.HandleUpsert(ctx, e); err != nil {
			p.handler.logger.Error("notify: handling upsert failed", "err", err)
		}
	}
	return p.next.Publish(ctx, topic, event)
}

func (p *Publisher) Close() error { return p.next.Close() }

// StartSubscriber listens for record upserts on the event bus and stores the
// notifications they imply. It blocks until ctx is cancelled.
func (h *Handler) StartSubscriber(ctx context.Context, sub events.Subscriber) error {
	ch, cancel, err := sub.Subscribe(events.TopicRecordUpserted)
	if err != nil {
		return fmt.Errorf("notify: subscribe: %w", err)
	}
	defer cancel()

	h.logger.Info("notify: subscriber started")

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("notify: subscriber stopping")
			return nil
		case msg, ok := <-ch:
			if !ok {
				h.logger.Info("notify: subscription channel closed")
				return nil
			}

			var e events.RecordUpserted
			if err := json.Unmarshal(msg.Data, &e); err != nil {
				h.logger.Warn("notify: bad event payload", "err", err)
				continue
			}
			if _, err := h.HandleUpsert(ctx, e); err != nil {
				h.logger.Error("notify: handling upsert failed", "err", err)
			}
		}
	}
}
