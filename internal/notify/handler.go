package notify

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tffedibot/fedibot/internal/store"
)

// Recorder persists what the handler receives. *store.Store satisfies it.
type Recorder interface {
	RecordGCMessage(ctx context.Context, runID int64, msg store.GCMessage) (int64, error)
	RecordNotification(ctx context.Context, n store.Notification) (*store.Notification, error)
}

// Action tells the session what to do after a message.
type Action int

const (
	// Continue keeps the session running.
	Continue Action = iota
	// Stop ends the session; the game coordinator said goodbye.
	Stop
)

// Handler turns game coordinator traffic into stored records and statuses.
type Handler struct {
	recorder  Recorder
	filter    *Filter
	publisher Publisher
	log       *logrus.Entry
}

// NewHandler returns a Handler. filter may be nil.
func NewHandler(recorder Recorder, filter *Filter, publisher Publisher, log *logrus.Entry) *Handler {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Handler{
		recorder:  recorder,
		filter:    filter,
		publisher: publisher,
		log:       log,
	}
}

// HandleGCMessage records msg and dispatches on its type. Non-protobuf
// messages are recorded and otherwise ignored.
func (h *Handler) HandleGCMessage(ctx context.Context, runID int64, msg store.GCMessage) (Action, error) {
	log := h.log.WithField("msg_type", msg.MsgType)

	if _, err := h.recorder.RecordGCMessage(ctx, runID, msg); err != nil {
		return Continue, err
	}

	if !msg.Protobuf {
		log.Debug("message is not protobuf, ignoring")

		return Continue, nil
	}

	switch msg.MsgType {
	case MsgClientWelcome:
		version, err := DecodeWelcomeVersion(msg.Data)
		if err != nil {
			return Continue, err
		}

		log.WithField("version", version).Info("game coordinator welcomed us")
	case MsgClientGoodbye:
		log.Warn("game coordinator said goodbye, stopping")

		return Stop, nil
	case MsgClientDisplayNotification:
		n, err := DecodeDisplayNotification(msg.Data)
		if err != nil {
			return Continue, err
		}

		if _, err := h.HandleNotification(ctx, runID, n); err != nil {
			return Continue, err
		}
	}

	return Continue, nil
}

// HandleNotification formats n, stores it and publishes it with a content
// warning when the filter flags it. Publish failures are logged, not returned.
func (h *Handler) HandleNotification(ctx context.Context, runID int64, n DisplayNotification) (*store.Notification, error) {
	replacements := n.Replacements()

	rec, err := h.recorder.RecordNotification(ctx, store.Notification{
		RunID:      runID,
		Title:      n.TitleKey,
		Body:       n.BodyKey,
		Substrings: replacements,
		Formatted:  Format(n.BodyKey, replacements),
	})
	if err != nil {
		return nil, fmt.Errorf("storing notification: %w", err)
	}

	warning, flagged := h.filter.Check(rec.Formatted)

	log := h.log.WithField("notification", rec.ID)
	if flagged {
		log = log.WithField("warning", warning)
	}

	if err := h.publisher.Publish(ctx, rec.Formatted, warning); err != nil {
		log.WithError(err).Error("publishing status")

		return rec, nil
	}

	log.Info("notification published")

	return rec, nil
}
