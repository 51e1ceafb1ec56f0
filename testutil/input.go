// Package testutil provides helpers for tests, like an input.Input that replays
// prepared answers.
package testutil

import (
	"context"
	"fmt"
	"github.com/lefinal/admission/logging"
	"github.com/lefinal/meh"
	"github.com/lefinal/zaprec"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"sync"
	"testing"
)

// Answer is a prepared answer for a single request of ScriptedInput. Only the
// field matching the request kind is used.
type Answer struct {
	// Text answers Request.
	Text string
	// Selection answers RequestSelection with the index of the label to select.
	Selection int
	// SelectLabel answers RequestSelection with the label to select. It takes
	// precedence over Selection if set.
	SelectLabel string
	// Confirm answers RequestConfirm.
	Confirm bool
	// Abort makes the request fail like a user pressing ^C.
	Abort bool
}

// Request is a request that ScriptedInput received.
type Request struct {
	Kind    string
	Prompt  string
	Current string
	Labels  []string
	Cursor  int
}

// ScriptedInput implements input.Input by replaying Answers in order. Once all
// answers are used, requests fail with a bad-input error.
type ScriptedInput struct {
	answers  []Answer
	requests []Request
	m        sync.Mutex
}

// NewScriptedInput creates a ScriptedInput with the given answers.
func NewScriptedInput(answers ...Answer) *ScriptedInput {
	return &ScriptedInput{
		answers:  answers,
		requests: make([]Request, 0),
	}
}

// Requests returns all received requests.
func (in *ScriptedInput) Requests() []Request {
	in.m.Lock()
	defer in.m.Unlock()
	return append([]Request(nil), in.requests...)
}

// Remaining returns the number of unused answers.
func (in *ScriptedInput) Remaining() int {
	in.m.Lock()
	defer in.m.Unlock()
	return len(in.answers)
}

func (in *ScriptedInput) next(ctx context.Context, request Request) (Answer, error) {
	in.m.Lock()
	defer in.m.Unlock()
	in.requests = append(in.requests, request)
	if ctx.Err() != nil {
		return Answer{}, meh.NewBadInputErrFromErr(ctx.Err(), "canceled", nil)
	}
	if len(in.answers) == 0 {
		return Answer{}, meh.NewBadInputErr("no more answers", meh.Details{"prompt": request.Prompt})
	}
	answer := in.answers[0]
	in.answers = in.answers[1:]
	if answer.Abort {
		return Answer{}, meh.NewBadInputErr("canceled", meh.Details{"prompt": request.Prompt})
	}
	return answer, nil
}

// RequestConfirm replays Answer.Confirm.
func (in *ScriptedInput) RequestConfirm(ctx context.Context, prompt string, _ bool) (bool, error) {
	answer, err := in.next(ctx, Request{Kind: "confirm", Prompt: prompt})
	if err != nil {
		return false, err
	}
	return answer.Confirm, nil
}

// Request replays Answer.Text. If check fails, the request fails as well.
func (in *ScriptedInput) Request(ctx context.Context, prompt string, current string, check func(s string) error) (string, error) {
	answer, err := in.next(ctx, Request{Kind: "text", Prompt: prompt, Current: current})
	if err != nil {
		return "", err
	}
	if check != nil {
		err = check(answer.Text)
		if err != nil {
			return "", meh.NewBadInputErrFromErr(err, "check", meh.Details{"text": answer.Text})
		}
	}
	return answer.Text, nil
}

// RequestSelection replays Answer.SelectLabel or Answer.Selection.
func (in *ScriptedInput) RequestSelection(ctx context.Context, prompt string, labels []string, cursor int) (int, error) {
	answer, err := in.next(ctx, Request{Kind: "selection", Prompt: prompt, Labels: labels, Cursor: cursor})
	if err != nil {
		return 0, err
	}
	if answer.SelectLabel != "" {
		for i, label := range labels {
			if label == answer.SelectLabel {
				return i, nil
			}
		}
		return 0, meh.NewBadInputErr(fmt.Sprintf("label %q not offered", answer.SelectLabel), meh.Details{"labels": labels})
	}
	if answer.Selection < 0 || answer.Selection >= len(labels) {
		return 0, meh.NewBadInputErr("selection out of range", meh.Details{"selection": answer.Selection, "labels": labels})
	}
	return answer.Selection, nil
}

// NewObservedLogger creates a zap.Logger that records all entries at debug
// level and above. If the test fails, recorded entries are dumped to a debug
// logger.
func NewObservedLogger(t testing.TB) (*zap.Logger, *observer.ObservedLogs) {
	recorder, records := zaprec.NewRecorder(zap.DebugLevel)
	t.Cleanup(func() {
		if t.Failed() {
			logger, _ := logging.NewLogger(zap.DebugLevel)
			records.DumpToLogger(logger)
		}
	})
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(zapcore.NewTee(recorder.Core(), core)), logs
}
