package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alfredjeanlab/counsel/internal/events"
	"github.com/alfredjeanlab/counsel/internal/filter"
	"github.com/alfredjeanlab/counsel/internal/idgen"
	"github.com/alfredjeanlab/counsel/internal/model"
	"github.com/alfredjeanlab/counsel/internal/role"
	"github.com/alfredjeanlab/counsel/internal/store"
)

// Server holds the roster operations shared by the HTTP and gRPC transports.
type Server struct {
	store     store.Store
	publisher events.Publisher
	hub       *eventHub
	log       *slog.Logger
}

// New returns a Server backed by the given store and publisher. A nil
// publisher discards events; a nil logger uses slog.Default().
func New(s store.Store, p events.Publisher, log *slog.Logger) *Server {
	if p == nil {
		p = &events.NoopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		store:     s,
		publisher: p,
		hub:       newEventHub(),
		log:       log,
	}
}

// inputError indicates invalid user input.
// Transport layers map this to 400 / InvalidArgument.
type inputError string

func (e inputError) Error() string { return string(e) }

// publish sends an event to the bus and to connected stream clients.
// Both are best-effort; failures are logged and never reach the caller.
func (s *Server) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.log.Warn("failed to publish event", "topic", topic, "error", err)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Warn("failed to marshal event for stream", "topic", topic, "error", err)
		return
	}
	s.hub.broadcast(topic, payload)
}

func parseKind(s string) (model.Kind, error) {
	k, err := model.ParseKind(s)
	if err != nil {
		return "", inputError(err.Error())
	}
	return k, nil
}

// searchResult is a page of matching records. Total counts every match,
// not just the page.
type searchResult struct {
	Records []*model.Record `json:"records"`
	Total   int             `json:"total"`
}

// search lists the records of a kind that satisfy every active criterion.
// A limit of zero or less returns all matches.
func (s *Server) search(ctx context.Context, kindName string, c model.Criteria, limit, offset int) (*searchResult, error) {
	kind, err := parseKind(kindName)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListRecords(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", kind, err)
	}
	matched := filter.Apply(records, model.SchemaFor(kind), c)
	return &searchResult{Records: page(matched, limit, offset), Total: len(matched)}, nil
}

func page(records []*model.Record, limit, offset int) []*model.Record {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		return []*model.Record{}
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

func (s *Server) getRecord(ctx context.Context, kindName, id string) (*model.Record, error) {
	kind, err := parseKind(kindName)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, inputError("id is required")
	}
	return s.store.GetRecord(ctx, kind, id)
}

// putRecord validates and stores the record, reporting whether it was new.
func (s *Server) putRecord(ctx context.Context, kindName, id string, fields map[string]any) (*model.Record, bool, error) {
	kind, err := parseKind(kindName)
	if err != nil {
		return nil, false, err
	}
	rec := &model.Record{ID: id, Kind: kind, Fields: fields}
	if rec.Fields == nil {
		rec.Fields = map[string]any{}
	}
	if err := model.ValidateRecord(rec); err != nil {
		return nil, false, inputError(err.Error())
	}

	var created bool
	err = s.store.RunInTransaction(ctx, func(tx store.Store) error {
		_, err := tx.GetRecord(ctx, kind, id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			created = true
		case err != nil:
			return err
		}
		return tx.UpsertRecord(ctx, rec)
	})
	if err != nil {
		return nil, false, fmt.Errorf("store %s/%s: %w", kind, id, err)
	}

	s.publish(ctx, events.TopicRecordUpserted, events.RecordUpserted{Record: rec, Created: created})
	return rec, created, nil
}

// createRecord stores a new record under a generated ID.
func (s *Server) createRecord(ctx context.Context, kindName string, fields map[string]any) (*model.Record, error) {
	kind, err := parseKind(kindName)
	if err != nil {
		return nil, err
	}
	id, err := idgen.ForKind(kind)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}
	rec, _, err := s.putRecord(ctx, kindName, id, fields)
	return rec, err
}

func (s *Server) deleteRecord(ctx context.Context, kindName, id string) error {
	kind, err := parseKind(kindName)
	if err != nil {
		return err
	}
	if err := s.store.RemoveRecord(ctx, kind, id); err != nil {
		return err
	}
	s.publish(ctx, events.TopicRecordRemoved, events.RecordRemoved{Kind: kind, ID: id})
	return nil
}

// Review actions accepted by verifyLawyer.
const (
	actionApprove = "approve"
	actionReject  = "reject"
)

// verifyLawyer settles a pending lawyer. Approving marks the lawyer
// verified; rejecting removes the application. Lawyers that are not pending
// are left untouched. The returned record is the lawyer as it was stored
// after approval, or as it was before rejection.
func (s *Server) verifyLawyer(ctx context.Context, id, action string) (*model.Record, error) {
	if id == "" {
		return nil, inputError("id is required")
	}
	if action != actionApprove && action != actionReject {
		return nil, inputError(fmt.Sprintf("action must be %q or %q", actionApprove, actionReject))
	}

	var lawyer *model.Record
	err := s.store.RunInTransaction(ctx, func(tx store.Store) error {
		rec, err := tx.GetRecord(ctx, model.KindLawyer, id)
		if err != nil {
			return err
		}
		if st := rec.String("status"); st != "pending" {
			return inputError(fmt.Sprintf("lawyer %s is not pending (status %q)", id, st))
		}
		lawyer = rec
		if action == actionReject {
			return tx.RemoveRecord(ctx, model.KindLawyer, id)
		}
		rec.Fields["status"] = "verified"
		return tx.UpsertRecord(ctx, rec)
	})
	if err != nil {
		return nil, err
	}

	if action == actionReject {
		s.publish(ctx, events.TopicLawyerRejected, events.LawyerRejected{LawyerID: id, Name: lawyer.String("name")})
	} else {
		s.publish(ctx, events.TopicLawyerVerified, events.LawyerVerified{Lawyer: lawyer})
	}
	return lawyer, nil
}

// panelView is one rendered dashboard panel.
type panelView struct {
	role.Panel
	Records []*model.Record `json:"records"`
	Total   int             `json:"total"`
}

// dashboardView is the content of one dashboard tab.
type dashboardView struct {
	Role   role.Role   `json:"role"`
	Tab    role.Tab    `json:"tab"`
	Tabs   []role.Tab  `json:"tabs"`
	Panels []panelView `json:"panels"`
}

// dashboard renders the panels of a role's tab. Each panel's fixed criteria
// and the caller's criteria must both hold, so callers can narrow a panel but
// never widen it.
func (s *Server) dashboard(ctx context.Context, roleName, tabName string, c model.Criteria) (*dashboardView, error) {
	r, err := role.ParseRole(roleName)
	if err != nil {
		return nil, inputError(err.Error())
	}
	tab := role.Tab(tabName)
	if tab == "" {
		tab = role.DefaultTab(r)
	}
	panels, err := role.Panels(r, tab)
	if err != nil {
		return nil, inputError(err.Error())
	}

	view := &dashboardView{Role: r, Tab: tab, Tabs: role.Tabs(r), Panels: make([]panelView, 0, len(panels))}
	for _, p := range panels {
		records, err := s.store.ListRecords(ctx, p.Kind)
		if err != nil {
			return nil, fmt.Errorf("list %s records: %w", p.Kind, err)
		}
		schema := model.SchemaFor(p.Kind)
		matched := filter.Compile(schema, c).Apply(filter.Compile(schema, p.Criteria).Apply(records))
		view.Panels = append(view.Panels, panelView{Panel: p, Records: matched, Total: len(matched)})
	}
	return view, nil
}
