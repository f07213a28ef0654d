package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/xylem-api/pkg/email"
	"github.com/sangkips/xylem-api/pkg/metrics"
	"github.com/sangkips/xylem-api/pkg/sms"
)

type recordingEmail struct {
	mu   sync.Mutex
	sent []email.Message
}

func (r *recordingEmail) Send(_ context.Context, msg email.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

type recordingSMS struct {
	mu   sync.Mutex
	sent map[string]string
	fail map[string]bool
}

func (r *recordingSMS) Send(_ context.Context, phone, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail[phone] {
		return errors.New("provider rejected")
	}
	if r.sent == nil {
		r.sent = map[string]string{}
	}
	r.sent[phone] = message
	return nil
}

func newTestDispatcher(t *testing.T, q Queue, smsSender *recordingSMS, mailer *recordingEmail) (*Dispatcher, *metrics.Metrics) {
	t.Helper()
	et, err := email.NewRenderer()
	require.NoError(t, err)
	st, err := sms.NewRenderer()
	require.NoError(t, err)
	m := metrics.New()
	d := NewDispatcher(q, 2, Deps{
		Email:     mailer,
		EmailTmpl: et,
		SMS:       smsSender,
		SMSTmpl:   st,
		Metrics:   m,
		Logger:    zerolog.Nop(),
	})
	return d, m
}

func TestDispatcher_DeliversThroughWorkers(t *testing.T) {
	smsSender := &recordingSMS{}
	mailer := &recordingEmail{}
	d, m := newTestDispatcher(t, NewMemoryQueue(16), smsSender, mailer)
	d.Start(context.Background())

	d.Notify(context.Background(), Notification{
		Channel:    ChannelSMS,
		Template:   TemplateFabricatorStatus,
		Recipients: []string{"01711111111", "01722222222"},
		Payload:    map[string]string{"Name": "Karim", "RegistrationNumber": "FAB-1", "Status": "approved"},
	})
	d.Notify(context.Background(), Notification{
		Channel:    ChannelEmail,
		Template:   TemplateRepAssigned,
		Recipients: []string{"rep@example.com"},
		Payload:    map[string]string{"RepName": "Rahim", "FabricatorName": "Karim"},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.Len(t, smsSender.sent, 2)
	assert.Equal(t, "Dear Karim, your registration FAB-1 is now approved.", smsSender.sent["01711111111"])
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"rep@example.com"}, mailer.sent[0].To)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("sms", TemplateFabricatorStatus, "sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("email", TemplateRepAssigned, "sent")))
}

func TestDispatcher_FailuresAreCountedNotReturned(t *testing.T) {
	smsSender := &recordingSMS{fail: map[string]bool{"0199": true}}
	d, m := newTestDispatcher(t, NewMemoryQueue(4), smsSender, &recordingEmail{})
	d.Start(context.Background())

	d.Notify(context.Background(), Notification{
		Channel:    ChannelSMS,
		Template:   TemplateFabricatorRegistered,
		Recipients: []string{"0199"},
		Payload:    map[string]string{"Name": "X"},
	})
	d.Notify(context.Background(), Notification{
		Channel:    ChannelEmail,
		Template:   "no_such_template",
		Recipients: []string{"a@b.c"},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("sms", TemplateFabricatorRegistered, "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("email", "no_such_template", "failed")))
}

func TestDispatcher_NotifyNeverBlocksWhenFull(t *testing.T) {
	d, m := newTestDispatcher(t, NewMemoryQueue(1), &recordingSMS{}, &recordingEmail{})
	// workers are not started, so the second item cannot fit
	n := Notification{Channel: ChannelSMS, Template: TemplateFabricatorStatus, Recipients: []string{"1"}}

	done := make(chan struct{})
	go func() {
		d.Notify(context.Background(), n)
		d.Notify(context.Background(), n)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full queue")
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("sms", TemplateFabricatorStatus, "dropped")))
}

func TestDispatcher_SkipsEmptyRecipients(t *testing.T) {
	q := NewMemoryQueue(1)
	d, m := newTestDispatcher(t, q, &recordingSMS{}, &recordingEmail{})

	d.Notify(context.Background(), Notification{Channel: ChannelEmail, Template: TemplateRepAssigned})

	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("email", TemplateRepAssigned, "skipped")))
}

func TestMemoryQueue_CloseDrainsThenStops(t *testing.T) {
	q := NewMemoryQueue(2)
	require.NoError(t, q.Enqueue(context.Background(), Notification{Template: "a"}))
	require.NoError(t, q.Close())

	assert.ErrorIs(t, q.Enqueue(context.Background(), Notification{}), ErrClosed)

	n, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", n.Template)

	_, err = q.Dequeue(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestEncodeDecode(t *testing.T) {
	in := Notification{Channel: ChannelSMS, Template: "t", Recipients: []string{"1"}, Payload: map[string]string{"k": "v"}}
	s, err := encode(in)
	require.NoError(t, err)
	out, err := decode(s)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = decode("{")
	assert.Error(t, err)
}
