package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"courtlistener.app/cl/common/logger"
	"courtlistener.app/cl/common/metrics"
	"courtlistener.app/cl/internal/mail"
	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/queue"
	"courtlistener.app/cl/internal/search"
	"courtlistener.app/cl/internal/store"
)

// Outcomes of one alert run, used as the metrics label.
const (
	alertMissing     = "missing"
	alertOff         = "off"
	alertRescheduled = "frequency_changed"
	alertUnconfirmed = "unconfirmed"
	alertNoHits      = "no_hits"
	alertSent        = "sent"
	alertNegative    = "negative_sent"
)

var errSearchDisabled = errors.New("search backend not configured")

type AlertProcessorConfig struct {
	BaseURL     string
	ResultLimit int
}

// AlertProcessor runs one saved search and mails the owner a digest of new hits.
type AlertProcessor struct {
	txRunner  TxRunner
	searcher  search.Searcher
	composer  *mail.Composer
	mailQueue MailQueue
	cfg       AlertProcessorConfig
	now       func() time.Time
}

func NewAlertProcessor(txRunner TxRunner, searcher search.Searcher, composer *mail.Composer, mailQueue MailQueue, cfg AlertProcessorConfig) *AlertProcessor {
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = 20
	}
	return &AlertProcessor{
		txRunner:  txRunner,
		searcher:  searcher,
		composer:  composer,
		mailQueue: mailQueue,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (p *AlertProcessor) Process(ctx context.Context, msg queue.Message) error {
	alertID := *msg.AlertID
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		AlertID:   &alertID,
		Component: "cl.worker.alert",
	})

	var outcome string
	err := p.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		var err error
		outcome, err = p.run(ctx, sp, alertID, model.AlertFrequency(msg.Frequency))
		return err
	})
	if err != nil {
		metrics.AlertRuns.WithLabelValues(msg.Frequency, "failed").Inc()
		return err
	}

	metrics.AlertRuns.WithLabelValues(msg.Frequency, outcome).Inc()
	slog.InfoContext(ctx, "alert run finished", "outcome", outcome)
	return nil
}

// run does the work inside the transaction. The digest is enqueued before
// last_hit_date moves, so a failed enqueue rolls the date back and the task
// is retried.
func (p *AlertProcessor) run(ctx context.Context, sp StoreProvider, alertID int64, frequency model.AlertFrequency) (string, error) {
	alert, err := sp.Alerts().GetByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return alertMissing, nil
		}
		return "", fmt.Errorf("getting alert: %w", err)
	}

	if alert.Frequency == model.AlertFrequencyOff {
		return alertOff, nil
	}
	if alert.Frequency != frequency {
		return alertRescheduled, nil
	}

	user, err := sp.Users().GetByID(ctx, alert.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return alertMissing, nil
		}
		return "", fmt.Errorf("getting alert owner: %w", err)
	}

	profile, err := sp.UserProfiles().GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("getting alert owner profile: %w", err)
	}
	if profile == nil || !profile.EmailConfirmed {
		return alertUnconfirmed, nil
	}

	now := p.now()
	since := now.Add(-alert.Frequency.Period())
	if alert.LastHitDate != nil {
		since = *alert.LastHitDate
	}

	if p.searcher == nil {
		return "", errSearchDisabled
	}

	req := search.ParseAlertQuery(alert.Query)
	req.FiledAfter = &since
	req.PerPage = p.cfg.ResultLimit
	if req.OrderBy == "" {
		req.OrderBy = "score desc"
	}

	page, err := p.searcher.Search(ctx, req)
	if err != nil {
		return "", fmt.Errorf("searching: %w", err)
	}

	if page.Count == 0 && !alert.SendNegativeAlert {
		return alertNoHits, nil
	}

	digest, err := p.composer.AlertDigest(mail.Digest{
		To:        user.Email,
		Username:  user.Username,
		AlertName: alert.Name,
		Query:     alert.Query,
		Frequency: alert.Frequency.Label(),
		Hits:      p.digestHits(req.Type, page.Results),
		Plaintext: profile.PlaintextPreferred,
	})
	if err != nil {
		return "", fmt.Errorf("composing digest: %w", err)
	}

	if err := p.mailQueue.EnqueueMail(ctx, digest); err != nil {
		return "", fmt.Errorf("enqueueing digest: %w", err)
	}

	if page.Count == 0 {
		return alertNegative, nil
	}

	if err := sp.Alerts().SetLastHitDate(ctx, alert.ID, now); err != nil {
		return "", fmt.Errorf("setting last hit date: %w", err)
	}
	return alertSent, nil
}

func (p *AlertProcessor) digestHits(t search.Type, results []map[string]any) []mail.DigestHit {
	hits := make([]mail.DigestHit, 0, len(results))
	for _, r := range results {
		hit := mail.DigestHit{
			Title:     firstString(r, "caseName", "name"),
			Snippet:   firstString(r, "snippet"),
			DateFiled: dateOnly(firstString(r, t.FiledField())),
		}
		if path := firstString(r, "absolute_url"); path != "" {
			if strings.HasPrefix(path, "/") {
				path = p.cfg.BaseURL + path
			}
			hit.URL = path
		}
		hits = append(hits, hit)
	}
	return hits
}

func firstString(r map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := r[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// dateOnly trims an RFC3339 timestamp to its date.
func dateOnly(s string) string {
	if len(s) >= len("2006-01-02") {
		return s[:len("2006-01-02")]
	}
	return s
}
