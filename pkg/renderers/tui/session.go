// Package tui drives a reactive flow through interactive terminal prompts:
// each answer is pushed into the flow, rejections are surfaced and the field
// re-prompted, and submission happens only once the combined validity signal
// is true.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formflow/pkg/flow"
	"github.com/goliatone/go-formflow/pkg/sink"
)

// Option configures a session.
type Option func(*Session)

// WithPromptDriver replaces the survey-backed driver, mainly for tests.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithMaxAttempts caps how often one field is re-prompted after rejections.
// Zero means unlimited.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithConfirm asks for a final yes/no before submitting.
func WithConfirm(enabled bool) Option {
	return func(s *Session) {
		s.confirm = enabled
	}
}

// Session walks a flow's fields in definition order.
type Session struct {
	driver      PromptDriver
	maxAttempts int
	confirm     bool
}

// NewSession constructs a session with the survey driver unless overridden.
func NewSession(options ...Option) *Session {
	s := &Session{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Run prompts for every field, pushing each answer into the flow and
// re-prompting while the field's latest outcome is a rejection. Once all
// fields are accepted (the validity signal is true by construction at that
// point) the flow is submitted.
func (s *Session) Run(ctx context.Context, f *flow.Flow) (sink.Receipt, error) {
	if ctx == nil {
		return sink.Receipt{}, errors.New("tui: context is required")
	}
	if f == nil {
		return sink.Receipt{}, errors.New("tui: flow is required")
	}

	def := f.Definition()
	for _, name := range f.FieldNames() {
		fd, _ := def.Field(name)
		subject, err := f.Field(name)
		if err != nil {
			return sink.Receipt{}, err
		}

		cfg := InputConfig{
			Message: fd.DisplayLabel(),
			Help:    fd.Description,
		}
		if !fd.Secret {
			cfg.Default = subject.Value()
		}

		attempts := 0
		for {
			var answer string
			if fd.Secret {
				answer, err = s.driver.Password(ctx, cfg)
			} else {
				answer, err = s.driver.Input(ctx, cfg)
			}
			if err != nil {
				return sink.Receipt{}, err
			}

			subject.Push(answer)
			latest := subject.Latest()
			if latest.Accepted() {
				break
			}

			if infoErr := s.driver.Info(ctx, fmt.Sprintf("%s: %s", fd.DisplayLabel(), latest.Reason())); infoErr != nil {
				return sink.Receipt{}, infoErr
			}
			attempts++
			if s.maxAttempts > 0 && attempts >= s.maxAttempts {
				return sink.Receipt{}, fmt.Errorf("tui: field %q rejected after %d attempts: %s", name, attempts, latest.Reason())
			}
		}
	}

	if !f.Valid() {
		// All fields were individually accepted, so this only fires when a
		// custom validator disagrees with itself.
		return sink.Receipt{}, errors.New("tui: form is not valid")
	}

	if s.confirm {
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Submit?", Default: true})
		if err != nil {
			return sink.Receipt{}, err
		}
		if !ok {
			return sink.Receipt{}, ErrAborted
		}
	}

	return f.Submit(ctx)
}
