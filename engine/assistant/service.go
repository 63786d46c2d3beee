// Package assistant holds the request orchestrator: it authenticates the
// caller, invokes the completion client, builds the WhatsApp deep link and
// fans the event out to the configured webhooks.
package assistant

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync"
	"time"

	"github.com/gastos-labs/gastos-gateway/engine/core"
	"github.com/gastos-labs/gastos-gateway/engine/llm"
	"github.com/gastos-labs/gastos-gateway/engine/webhook"
	"github.com/gastos-labs/gastos-gateway/engine/whatsapp"
	"github.com/gastos-labs/gastos-gateway/pkg/config"
	"github.com/gastos-labs/gastos-gateway/pkg/logger"
)

// Reminder response modes.
const (
	ModeWhatsAppLink = "whatsapp_link"
	ModeTextOnly     = "text_only"
)

// Credential is the bearer token extracted from the inbound request.
// Present distinguishes a missing header from a mismatched one.
type Credential struct {
	Token   string
	Present bool
}

// QueryInput is the body of a /query request.
type QueryInput struct {
	Question string `json:"pregunta" binding:"required"`
}

// QueryResult is the /query response payload.
type QueryResult struct {
	Answer       string  `json:"respuesta"`
	WhatsAppLink *string `json:"whatsapp_link"`
}

// ReminderInput is the body of a /reminder request.
type ReminderInput struct {
	Text         string `json:"text" binding:"required"`
	Priority     *int   `json:"priority,omitempty"`
	TaskID       string `json:"task_id,omitempty"`
	DueDate      string `json:"due_date,omitempty"`
	Category     string `json:"type,omitempty"`
	ResponseMode string `json:"response_mode,omitempty"`
}

// ReminderResult is the /reminder response payload. ResponseType echoes the
// mode that was honored.
type ReminderResult struct {
	ReminderText string  `json:"reminder_text"`
	WhatsAppLink *string `json:"whatsapp_link"`
	ResponseType string  `json:"response_type"`
}

// Service coordinates one request end to end. All state is read-only after
// construction except the in-flight dispatch tracking, so it is safe for
// concurrent use.
type Service struct {
	llm         llm.Client
	dispatcher  webhook.Dispatcher
	targets     []webhook.Target
	secret      string
	phone       string
	environment string
	log         logger.Logger
	inflight    sync.WaitGroup
	now         func() time.Time
}

// NewService wires the orchestrator with its collaborators.
func NewService(cfg *config.Config, client llm.Client, dispatcher webhook.Dispatcher, log logger.Logger) *Service {
	return &Service{
		llm:         client,
		dispatcher:  dispatcher,
		targets:     webhook.Targets(cfg.Webhooks.ProdURL, cfg.Webhooks.TestURL),
		secret:      cfg.Server.BearerToken.Value(),
		phone:       cfg.WhatsApp.Phone,
		environment: cfg.Runtime.Environment,
		log:         log,
		now:         time.Now,
	}
}

// Targets exposes the configured webhook destinations for status reporting.
func (s *Service) Targets() []webhook.Target {
	return s.targets
}

func (s *Service) authenticate(cred Credential) error {
	if !cred.Present {
		return core.ErrMissingCredential
	}
	if subtle.ConstantTimeCompare([]byte(cred.Token), []byte(s.secret)) != 1 {
		return core.ErrBadCredential
	}
	return nil
}

// HandleQuery authenticates, asks the model the user's question and, on
// success, builds the deep link and fans out the event.
func (s *Service) HandleQuery(ctx context.Context, cred Credential, in *QueryInput) (*QueryResult, error) {
	if err := s.authenticate(cred); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Info("handling query", "question_len", len(in.Question))
	answer, err := s.llm.Complete(ctx, &llm.Request{
		SystemPrompt: querySystemPrompt,
		UserText:     in.Question,
		MaxTokens:    maxCompletionTokens,
		Temperature:  queryTemperature,
	})
	if err != nil {
		return nil, err
	}
	var link *string
	if s.phone != "" {
		url := whatsapp.BuildLink(s.phone, queryMessage(in.Question, answer))
		link = &url
	}
	event := &webhook.Event{
		Type:           webhook.EventQueryReceived,
		Timestamp:      s.now().UTC().Format(time.RFC3339),
		OriginEndpoint: "/query",
		Environment:    s.environment,
		Question:       in.Question,
		Answer:         answer,
		WhatsAppLink:   deref(link),
	}
	s.dispatchAsync(event)
	return &QueryResult{Answer: answer, WhatsAppLink: link}, nil
}

// HandleReminder validates the response mode before any network call, then
// follows the same pipeline as HandleQuery with the task-triage persona.
func (s *Service) HandleReminder(ctx context.Context, cred Credential, in *ReminderInput) (*ReminderResult, error) {
	if err := s.authenticate(cred); err != nil {
		return nil, err
	}
	mode := in.ResponseMode
	if mode == "" {
		mode = ModeWhatsAppLink
	}
	if mode != ModeWhatsAppLink && mode != ModeTextOnly {
		return nil, fmt.Errorf("%w: response_mode must be %q or %q",
			core.ErrInvalidInput, ModeWhatsAppLink, ModeTextOnly)
	}
	log := logger.FromContext(ctx)
	log.Info("handling reminder", "response_mode", mode, "task_id", in.TaskID)
	answer, err := s.llm.Complete(ctx, &llm.Request{
		SystemPrompt: reminderSystemPrompt,
		UserText:     reminderUserText(in),
		MaxTokens:    maxCompletionTokens,
		Temperature:  reminderTemperature,
	})
	if err != nil {
		return nil, err
	}
	honored := mode
	if honored == ModeWhatsAppLink && s.phone == "" {
		honored = ModeTextOnly
	}
	var link *string
	if honored == ModeWhatsAppLink {
		url := whatsapp.BuildLink(s.phone, reminderMessage(in.Text, answer))
		link = &url
	}
	event := &webhook.Event{
		Type:           webhook.EventReminderReceived,
		Timestamp:      s.now().UTC().Format(time.RFC3339),
		OriginEndpoint: "/reminder",
		Environment:    s.environment,
		ReminderText:   in.Text,
		Priority:       in.Priority,
		TaskID:         in.TaskID,
		DueDate:        in.DueDate,
		Category:       in.Category,
		ResponseMode:   honored,
		Answer:         answer,
		WhatsAppLink:   deref(link),
	}
	s.dispatchAsync(event)
	return &ReminderResult{ReminderText: answer, WhatsAppLink: link, ResponseType: honored}, nil
}

// dispatchAsync fires the fan-out without blocking the response. The goroutine
// runs detached from the request context; Drain accounts for it on shutdown.
func (s *Service) dispatchAsync(event *webhook.Event) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx := logger.ContextWithLogger(context.Background(), s.log)
		s.dispatcher.DispatchAll(ctx, event, s.targets)
	}()
}

// Drain blocks until all in-flight webhook dispatches finish or the context
// expires, whichever comes first.
func (s *Service) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
