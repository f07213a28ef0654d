package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sangkips/xylem-api/pkg/email"
	"github.com/sangkips/xylem-api/pkg/metrics"
	"github.com/sangkips/xylem-api/pkg/sms"
)

// Channel is a delivery medium
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Template names
const (
	TemplateFabricatorRegistered = "fabricator_registered"
	TemplateFabricatorStatus     = "fabricator_status"
	TemplateFabricatorAssigned   = "fabricator_assigned"
	TemplateRepAssigned          = "rep_assigned"
	TemplateRepCredentials       = "rep_credentials"
	TemplateReportSubmitted      = "report_submitted"
	TemplateTaskAssigned         = "task_assigned"
)

// delivery results, used as metric labels
const (
	resultSent    = "sent"
	resultFailed  = "failed"
	resultDropped = "dropped"
	resultSkipped = "skipped"
)

// Notification is one message to one or more recipients on one channel.
// Recipients are email addresses or phone numbers depending on Channel.
type Notification struct {
	Channel    Channel           `json:"channel"`
	Template   string            `json:"template"`
	Recipients []string          `json:"recipients"`
	Payload    map[string]string `json:"payload"`
}

// Notifier is what the application layer depends on. Notify never reports
// delivery failures to the caller.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Deps bundles the delivery backends of a Dispatcher.
type Deps struct {
	Email     email.Sender
	EmailTmpl *email.Renderer
	SMS       sms.Sender
	SMSTmpl   *sms.Renderer
	Metrics   *metrics.Metrics
	Logger    zerolog.Logger
}

// Dispatcher enqueues notifications and drains them with a fixed worker pool.
type Dispatcher struct {
	queue   Queue
	deps    Deps
	workers int
	timeout time.Duration

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewDispatcher(queue Queue, workers int, deps Deps) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{
		queue:   queue,
		deps:    deps,
		workers: workers,
		timeout: 30 * time.Second,
	}
}

// Start launches the workers. They stop when the queue is closed and drained
// or when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work(ctx, i)
	}
	d.deps.Logger.Info().Int("workers", d.workers).Msg("notification dispatcher started")
}

// Notify enqueues n and returns immediately.
func (d *Dispatcher) Notify(ctx context.Context, n Notification) {
	if len(n.Recipients) == 0 {
		d.deps.Metrics.NotificationResult(string(n.Channel), n.Template, resultSkipped)
		return
	}
	// the request context may be cancelled as soon as the response is written
	if err := d.queue.Enqueue(context.WithoutCancel(ctx), n); err != nil {
		d.deps.Metrics.NotificationResult(string(n.Channel), n.Template, resultDropped)
		d.deps.Logger.Warn().Err(err).
			Str("channel", string(n.Channel)).
			Str("template", n.Template).
			Msg("notification dropped")
		return
	}
	d.deps.Metrics.QueueDepth(d.queue.Len())
}

// Close stops intake and waits for in-flight deliveries, at most until ctx expires.
func (d *Dispatcher) Close(ctx context.Context) error {
	_ = d.queue.Close()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		if d.cancel != nil {
			d.cancel()
		}
		<-done
		return ctx.Err()
	}
}

func (d *Dispatcher) work(ctx context.Context, id int) {
	defer d.wg.Done()
	log := d.deps.Logger.With().Int("worker", id).Logger()

	for {
		n, err := d.queue.Dequeue(ctx)
		if errors.Is(err, ErrClosed) || ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("dequeue failed")
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}
		d.deps.Metrics.QueueDepth(d.queue.Len())
		d.deliver(ctx, log, n)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, log zerolog.Logger, n Notification) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var err error
	switch n.Channel {
	case ChannelEmail:
		err = d.sendEmail(ctx, n)
	case ChannelSMS:
		err = d.sendSMS(ctx, n)
	default:
		err = errors.New("unknown channel")
	}

	result := resultSent
	if err != nil {
		result = resultFailed
		log.Error().Err(err).
			Str("channel", string(n.Channel)).
			Str("template", n.Template).
			Int("recipients", len(n.Recipients)).
			Msg("notification delivery failed")
	}
	d.deps.Metrics.NotificationResult(string(n.Channel), n.Template, result)
}

func (d *Dispatcher) sendEmail(ctx context.Context, n Notification) error {
	if d.deps.Email == nil || d.deps.EmailTmpl == nil {
		return errors.New("email channel not configured")
	}
	subject, html, err := d.deps.EmailTmpl.Render(n.Template, n.Payload)
	if err != nil {
		return err
	}
	return d.deps.Email.Send(ctx, email.Message{To: n.Recipients, Subject: subject, HTML: html})
}

func (d *Dispatcher) sendSMS(ctx context.Context, n Notification) error {
	if d.deps.SMS == nil || d.deps.SMSTmpl == nil {
		return errors.New("sms channel not configured")
	}
	body, err := d.deps.SMSTmpl.Render(n.Template, n.Payload)
	if err != nil {
		return err
	}
	var errs []error
	for _, to := range n.Recipients {
		if err := d.deps.SMS.Send(ctx, to, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
