// Package notify sends a push notification to every registered device when
// an appointment is created, through the FCM HTTP v1 API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"

	"github.com/Luckywi/balzac-api/internal/metrics"
	"github.com/Luckywi/balzac-api/internal/models"
)

const fcmScope = "https://www.googleapis.com/auth/firebase.messaging"

// TokenStore supplies device tokens and lets the pusher drop dead ones.
type TokenStore interface {
	ListPushTokens(ctx context.Context) ([]string, error)
	DeletePushToken(ctx context.Context, token string) error
}

// Pusher fans a booking notification out to all registered devices.
type Pusher struct {
	client   *http.Client
	endpoint string
	tokens   TokenStore
	limiter  *rate.Limiter
	logger   *zerolog.Logger
	timeout  time.Duration
}

// Config holds the FCM service-account settings.
type Config struct {
	CredentialsFile string
	ProjectID       string
	Rate            float64
	Burst           int
}

// New builds a pusher authenticated with a Google service account.
func New(ctx context.Context, cfg Config, tokens TokenStore, logger *zerolog.Logger) (*Pusher, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, fcmScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	endpoint := fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", cfg.ProjectID)
	return newPusher(oauth2.NewClient(ctx, creds.TokenSource), endpoint, cfg, tokens, logger), nil
}

func newPusher(client *http.Client, endpoint string, cfg Config, tokens TokenStore, logger *zerolog.Logger) *Pusher {
	return &Pusher{
		client:   client,
		endpoint: endpoint,
		tokens:   tokens,
		limiter:  rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
		logger:   logger,
		timeout:  30 * time.Second,
	}
}

// AppointmentCreated implements booking.Notifier. Delivery happens in the
// background; a booking never waits on the push gateway.
func (p *Pusher) AppointmentCreated(_ context.Context, rdv *models.Appointment) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		p.broadcast(ctx, rdv)
	}()
}

func (p *Pusher) broadcast(ctx context.Context, rdv *models.Appointment) {
	tokens, err := p.tokens.ListPushTokens(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("list push tokens")
		return
	}
	if len(tokens) == 0 {
		return
	}

	title, body := buildMessage(rdv)
	for _, token := range tokens {
		if err := p.limiter.Wait(ctx); err != nil {
			return
		}
		p.sendOne(ctx, token, title, body)
	}
}

// buildMessage renders the notification shown on the salon devices.
func buildMessage(rdv *models.Appointment) (title, body string) {
	title = "Nouveau rendez-vous"
	when := rdv.Start
	if t, err := rdv.StartTime(); err == nil {
		when = fmt.Sprintf("le %s à %s", t.Format("02/01/2006"), t.Format("15:04"))
	}
	body = fmt.Sprintf("Rendez-vous %s pour %s", when, rdv.ServiceTitle)
	return title, body
}

type fcmRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmMessage struct {
	Token        string          `json:"token"`
	Notification fcmNotification `json:"notification"`
	APNS         *fcmAPNS        `json:"apns,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmAPNS struct {
	Payload struct {
		APS struct {
			Badge int    `json:"badge"`
			Sound string `json:"sound"`
		} `json:"aps"`
	} `json:"payload"`
}

func (p *Pusher) sendOne(ctx context.Context, token, title, body string) {
	msg := fcmRequest{}
	msg.Message.Token = token
	msg.Message.Notification = fcmNotification{Title: title, Body: body}
	apns := &fcmAPNS{}
	apns.Payload.APS.Badge = 1
	apns.Payload.APS.Sound = "default"
	msg.Message.APNS = apns

	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		metrics.IncPushSent("error")
		p.logger.Warn().Err(err).Msg("push send failed")
		return
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode < 300:
		metrics.IncPushSent("ok")
	case isDeadToken(resp.StatusCode, string(respBody)):
		metrics.IncPushSent("stale_token")
		if err := p.tokens.DeletePushToken(ctx, token); err != nil {
			p.logger.Warn().Err(err).Msg("remove stale push token")
		}
	default:
		metrics.IncPushSent("error")
		p.logger.Warn().Int("status", resp.StatusCode).Msg("push rejected")
	}
}

// isDeadToken matches the FCM responses for expired or malformed tokens.
func isDeadToken(status int, body string) bool {
	if status != http.StatusNotFound && status != http.StatusBadRequest {
		return false
	}
	return strings.Contains(body, "UNREGISTERED") || strings.Contains(body, "INVALID_ARGUMENT")
}
