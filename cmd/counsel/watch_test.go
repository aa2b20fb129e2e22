package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"

	"github.com/alfredjeanlab/counsel/internal/events"
	"github.com/alfredjeanlab/counsel/internal/model"
	"github.com/alfredjeanlab/counsel/internal/ui"
)

// startTestNATS starts an embedded NATS server and returns its client URL.
func startTestNATS(t *testing.T) string {
	t.Helper()
	srv, err := natsserver.NewServer(&natsserver.Options{Host: "127.0.0.1", Port: -1})
	if err != nil {
		t.Fatalf("starting embedded NATS: %v", err)
	}
	srv.Start()
	t.Cleanup(srv.Shutdown)
	if !srv.ReadyForConnections(5 * time.Second) {
		t.Fatal("embedded NATS not ready")
	}
	return srv.ClientURL()
}

func TestWatchNATS(t *testing.T) {
	url := startTestNATS(t)
	pub, err := events.NewNATSPublisher(url)
	if err != nil {
		t.Fatal(err)
	}
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	got := make(chan events.Message, 8)
	done := make(chan error, 1)
	go func() {
		done <- watchNATS(ctx, url, []string{"counsel.lawyer.*"}, func(m events.Message) error {
			select {
			case got <- m:
			default:
			}
			return nil
		})
	}()

	// The subscription is registered asynchronously, so publish until the
	// first event arrives.
	rejected := events.LawyerRejected{LawyerID: "lw-6", Name: "Adv. Lakshmi Iyer"}
	var m events.Message
	for received := false; !received; {
		if err := pub.Publish(ctx, events.TopicRecordRemoved, events.RecordRemoved{Kind: model.KindCase, ID: "cs-1"}); err != nil {
			t.Fatal(err)
		}
		if err := pub.Publish(ctx, events.TopicLawyerRejected, rejected); err != nil {
			t.Fatal(err)
		}
		select {
		case m = <-got:
			received = true
		case <-time.After(50 * time.Millisecond):
		case <-ctx.Done():
			t.Fatal("no event received")
		}
	}
	if m.Topic != events.TopicLawyerRejected {
		t.Errorf("topic = %q, want only lawyer events", m.Topic)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("watchNATS returned %v", err)
	}
}

func TestWatchNATS_CallbackError(t *testing.T) {
	url := startTestNATS(t)
	pub, err := events.NewNATSPublisher(url)
	if err != nil {
		t.Fatal(err)
	}
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stop := errors.New("stop")
	done := make(chan error, 1)
	go func() {
		done <- watchNATS(ctx, url, nil, func(events.Message) error { return stop })
	}()

	for {
		_ = pub.Publish(ctx, events.TopicRecordRemoved, events.RecordRemoved{Kind: model.KindCase, ID: "cs-1"})
		select {
		case err := <-done:
			if !errors.Is(err, stop) {
				t.Fatalf("watchNATS = %v, want callback error", err)
			}
			return
		case <-time.After(50 * time.Millisecond):
		case <-ctx.Done():
			t.Fatal("watchNATS did not return")
		}
	}
}

func TestPrintEvent(t *testing.T) {
	ui.ForceNoColor()
	t.Cleanup(func() { jsonOutput = false })

	m := events.Message{Topic: events.TopicRecordRemoved, Data: []byte(`{"kind":"case","id":"cs-3"}`)}

	var buf bytes.Buffer
	if err := printEvent(&buf, m); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "  removed case/cs-3\n") {
		t.Errorf("text output = %q", buf.String())
	}

	buf.Reset()
	jsonOutput = true
	if err := printEvent(&buf, m); err != nil {
		t.Fatal(err)
	}
	want := `{"data":{"kind":"case","id":"cs-3"},"topic":"counsel.record.removed"}` + "\n"
	if buf.String() != want {
		t.Errorf("json output = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	jsonOutput = false
	if err := printEvent(&buf, events.Message{Topic: events.TopicLawyerVerified, Data: []byte(`{`)}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "undecodable") {
		t.Errorf("bad payload output = %q", buf.String())
	}
}
