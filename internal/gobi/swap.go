package gobi

import (
	"context"
	"fmt"
	"sync"

	"github.com/five82/gobiview/internal/dom"
)

// Request is a queued fetch for one target element.
type Request struct {
	Seq    uint64
	URL    string
	Target string
}

// Response carries fetched markup back to the event loop.
type Response struct {
	Request Request
	Markup  string
	Err     error
}

// FragmentFetcher retrieves the partial markup for a target.
type FragmentFetcher interface {
	FetchFragment(ctx context.Context, ref, target string) (string, error)
}

// Listener is told which element received new content.
type Listener func(targetID string)

type binding struct {
	name string
	fn   Listener
}

// Swapper queues fetch requests and swaps their responses into a document.
type Swapper struct {
	mu        sync.Mutex
	seq       uint64
	pending   []Request
	latest    map[string]uint64
	listeners []binding
}

// NewSwapper returns an idle Swapper.
func NewSwapper() *Swapper {
	return &Swapper{latest: make(map[string]uint64)}
}

// Request queues a fetch of url into target. It supersedes any earlier
// request for the same target.
func (s *Swapper) Request(url, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.latest[target] = s.seq
	s.pending = append(s.pending, Request{Seq: s.seq, URL: url, Target: target})
}

// Drain returns and clears the queued requests.
func (s *Swapper) Drain() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out
}

// Current reports whether req is the newest request for its target.
func (s *Swapper) Current(req Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[req.Target] == req.Seq
}

// Fetch runs req against f. It does not touch Swapper state and may run on
// any goroutine.
func (s *Swapper) Fetch(ctx context.Context, f FragmentFetcher, req Request) Response {
	markup, err := f.FetchFragment(ctx, req.URL, req.Target)
	return Response{Request: req, Markup: markup, Err: err}
}

// Swap applies resp to doc. Superseded responses and failed fetches are
// dropped; it reports whether the document changed.
func (s *Swapper) Swap(doc *dom.Document, resp Response) (bool, error) {
	if !s.Current(resp.Request) {
		return false, nil
	}
	if resp.Err != nil {
		return false, fmt.Errorf("fetch %s: %w", resp.Request.URL, resp.Err)
	}
	if err := s.Replace(doc, resp.Request.Target, resp.Markup); err != nil {
		return false, err
	}
	return true, nil
}

// Replace swaps markup into target and notifies listeners.
func (s *Swapper) Replace(doc *dom.Document, target, markup string) error {
	if err := doc.ReplaceInner(target, markup); err != nil {
		return fmt.Errorf("swap %s: %w", target, err)
	}
	s.notify(target)
	return nil
}

// On registers fn under name, replacing any listener with the same name.
func (s *Swapper) On(name string, fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.listeners {
		if b.name == name {
			s.listeners[i].fn = fn
			return
		}
	}
	s.listeners = append(s.listeners, binding{name: name, fn: fn})
}

// Off removes the listener registered under name.
func (s *Swapper) Off(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.listeners {
		if b.name == name {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

func (s *Swapper) notify(target string) {
	s.mu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, b := range s.listeners {
		fns = append(fns, b.fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(target)
	}
}
