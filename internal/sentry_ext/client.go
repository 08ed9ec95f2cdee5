// Package sentry_ext reports errors from the dlist CLI to Sentry.
package sentry_ext

import (
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/wandb/dlist/internal/observability/wberrors"
)

type Params struct {
	// DSN is the Data Source Name for the sentry client.
	//
	// Reporting is disabled if it is empty.
	DSN string
	// Release is the version of the application
	Release string
	// Commit is the git commit hash
	Commit string
	// Environment is the environment the application is running in
	Environment string
	// LRUSize is the number of recent messages remembered for de-duplication.
	LRUSize int
}

type Client struct {
	// recent is the cache of recent messages sent to sentry to avoid sending
	// the same message multiple times.
	recent *cache

	hub *sentry.Hub
}

// New initializes the sentry client.
//
// A client is always returned; if Sentry can't be initialized, it just
// doesn't send anything.
func New(params Params) *Client {
	recent, err := newCache(params.LRUSize)
	if err != nil {
		slog.Error("sentry_ext: New: failed to create cache", "error", err)
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              params.DSN,
		AttachStacktrace: true,
		Release:          params.Release,
		Dist:             params.Commit,
		Environment:      params.Environment,
		BeforeSend:       RemoveBottomFrames,
	})
	if err != nil {
		slog.Error("sentry_ext: New: failed to initialize sentry", "error", err)
		return &Client{recent: recent}
	}

	if params.DSN == "" {
		slog.Debug("sentry_ext: New: sentry is disabled, no DSN provided")
	}

	return &Client{
		recent: recent,
		hub:    sentry.NewHub(client, sentry.NewScope()),
	}
}

// NewWithHub wraps an existing hub.
//
// Used for testing with a [sentry.MockTransport].
func NewWithHub(hub *sentry.Hub) *Client {
	recent, _ := newCache(defaultCacheSize)
	return &Client{recent: recent, hub: hub}
}

// CaptureException sends an error to sentry with the given tags.
//
// Errors with the same message are sent at most once every few minutes.
func (s *Client) CaptureException(err error, tags map[string]string) {
	if !s.shouldCapture(err.Error()) {
		return
	}

	localHub := s.hub.Clone()
	localHub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
	})
	localHub.CaptureException(err)
}

// CaptureMessage sends an info level message to sentry with the given tags.
func (s *Client) CaptureMessage(msg string, tags map[string]string) {
	if !s.shouldCapture(msg) {
		return
	}

	localHub := s.hub.Clone()
	localHub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
	})
	localHub.CaptureMessage(msg)
}

func (s *Client) shouldCapture(msg string) bool {
	if s == nil || s.hub == nil {
		return false
	}
	return s.recent == nil || s.recent.shouldCapture(msg)
}

// Reraise captures a recovered panic value and panics again with it.
func (s *Client) Reraise(recovered any, tags map[string]string) {
	if recovered == nil {
		return
	}

	err, ok := recovered.(error)
	if !ok {
		err = wberrors.Newf("%v", recovered)
	}
	s.CaptureException(err, tags)
	s.Flush(2 * time.Second)

	panic(recovered)
}

// Flush waits until buffered events are sent or the timeout expires.
func (s *Client) Flush(timeout time.Duration) bool {
	if s == nil || s.hub == nil {
		return true
	}
	return s.hub.Flush(timeout)
}

// RemoveBottomFrames drops the innermost frames of each stack trace that
// belong to the logging and reporting code rather than the caller.
func RemoveBottomFrames(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	for i, exception := range event.Exception {
		if exception.Stacktrace == nil {
			continue
		}

		frames := exception.Stacktrace.Frames
		for len(frames) > 0 {
			path := frames[len(frames)-1].AbsPath
			if !strings.HasSuffix(path, "sentry_ext/client.go") &&
				!strings.HasSuffix(path, "observability/logging.go") {
				break
			}
			frames = frames[:len(frames)-1]
		}

		event.Exception[i].Stacktrace.Frames = frames
	}
	return event
}
