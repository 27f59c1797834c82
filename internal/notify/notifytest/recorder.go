// Package notifytest provides a scripted UI for component tests.
package notifytest

import (
	"context"
	"sync"

	"github.com/osse101/PointStore_Go/internal/notify"
)

// Recorder records every notice, prompt and navigation and answers
// confirmations and prompts from a script.
type Recorder struct {
	mu sync.Mutex

	// ConfirmAnswer is returned when Confirms is exhausted
	ConfirmAnswer bool
	Confirms      []bool
	Prompts       []PromptAnswer

	Notices     []notify.Notice
	Questions   []string
	Navigations []notify.Screen
}

// PromptAnswer is one scripted Prompt reply
type PromptAnswer struct {
	Value string
	OK    bool
}

// New returns a recorder that accepts every confirmation
func New() *Recorder {
	return &Recorder{ConfirmAnswer: true}
}

// Declining returns a recorder that declines every confirmation
func Declining() *Recorder {
	return &Recorder{}
}

var _ notify.UI = (*Recorder)(nil)

func (r *Recorder) Notify(_ context.Context, notice notify.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notices = append(r.Notices, notice)
}

func (r *Recorder) Confirm(_ context.Context, prompt string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Questions = append(r.Questions, prompt)
	if len(r.Confirms) == 0 {
		return r.ConfirmAnswer
	}
	answer := r.Confirms[0]
	r.Confirms = r.Confirms[1:]
	return answer
}

func (r *Recorder) Prompt(_ context.Context, question string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Questions = append(r.Questions, question)
	if len(r.Prompts) == 0 {
		return "", false
	}
	answer := r.Prompts[0]
	r.Prompts = r.Prompts[1:]
	return answer.Value, answer.OK
}

func (r *Recorder) Navigate(_ context.Context, screen notify.Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Navigations = append(r.Navigations, screen)
}

// Last returns the most recent notice, or a zero notice
func (r *Recorder) Last() notify.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Notices) == 0 {
		return notify.Notice{}
	}
	return r.Notices[len(r.Notices)-1]
}

// Count returns how many notices were shown
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Notices)
}

// AskedCount returns how many confirmations or prompts were shown
func (r *Recorder) AskedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Questions)
}
