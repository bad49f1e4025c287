// Package session owns the state behind the cover letter shell: the selected
// résumé, its extracted text, the job description and the displayed result.
//
// Every file selection and every generation request takes a sequence number.
// A completion whose sequence is no longer current is dropped, so a slow
// extraction of an earlier file never overwrites text from a later one.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"coverletter/internal/async"
	"coverletter/internal/extract"
	"coverletter/internal/generation"
	"coverletter/internal/shared/metrics"
	"coverletter/internal/shared/telemetry"
)

// DefaultResult is displayed before any generation has completed.
const DefaultResult = "Your generated cover letter will appear here."

// ErrPickerFailure wraps errors reported by the file picker.
var ErrPickerFailure = errors.New("file selection failed")

// ErrPickerCancelled is recorded when the user dismisses the picker.
var ErrPickerCancelled = errors.New("no file selected")

// Extractor starts text extraction for a classified file.
type Extractor interface {
	Start(ctx context.Context, path string, kind extract.Kind) *async.Future[string]
}

// Selection is the file currently backing the session.
type Selection struct {
	Seq  uint64
	Path string
	Kind extract.Kind
}

// Snapshot is a copy of the session state.
type Snapshot struct {
	Selection      Selection
	ExtractedText  string
	ExtractionErr  error
	Preview        Preview
	JobDescription string
	Result         string
	ResultErr      error
	Extracting     bool
	Generating     bool
}

// Session coordinates file import and cover letter generation.
type Session struct {
	extractor Extractor
	client    generation.Client

	mu      sync.Mutex
	state   Snapshot
	selSeq  uint64
	resSeq  uint64
	pending *async.Future[string]
	subs    map[int]chan Snapshot
	nextSub int
}

// New constructs a Session.
func New(extractor Extractor, client generation.Client) *Session {
	if client == nil {
		client = generation.PlaceholderClient{}
	}
	return &Session{
		extractor: extractor,
		client:    client,
		state:     Snapshot{Result: DefaultResult},
		subs:      map[int]chan Snapshot{},
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel receiving a snapshot after every change, and a
// function that stops the subscription. A slow reader skips intermediate
// snapshots but the newest one is always delivered.
func (s *Session) Subscribe(buffer int) (<-chan Snapshot, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Snapshot, buffer)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Session) publishLocked() {
	snap := s.state
	for _, ch := range s.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// SelectFile replaces the current selection with path and starts extracting
// it. The previous text and preview are cleared first. Documents are
// extracted before SelectFile returns; images complete later. The returned
// future resolves with this selection's raw outcome even if it was superseded.
func (s *Session) SelectFile(ctx context.Context, path string) *async.Future[string] {
	kind := extract.Classify(path)
	done := async.New[string]()

	s.mu.Lock()
	s.selSeq++
	seq := s.selSeq
	s.state.Selection = Selection{Seq: seq, Path: path, Kind: kind}
	s.state.ExtractedText = ""
	s.state.ExtractionErr = nil
	s.state.Preview = Preview{}
	s.state.Extracting = true
	s.pending = done
	s.publishLocked()
	s.mu.Unlock()

	telemetry.Debug("session.select", map[string]any{"seq": seq, "path": path, "kind": kind.String()})

	s.extractor.Start(ctx, path, kind).Then(func(text string, err error) {
		s.completeExtraction(seq, path, kind, text, err)
		done.Resolve(text, err)
	})
	return done
}

func (s *Session) completeExtraction(seq uint64, path string, kind extract.Kind, text string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.selSeq {
		metrics.IncExtractionStale()
		telemetry.Info("session.extraction.stale", map[string]any{"seq": seq, "current_seq": s.selSeq, "path": path})
		return
	}

	s.state.Extracting = false
	s.state.ExtractionErr = err
	if err != nil {
		s.state.ExtractedText = extract.Placeholder(err)
	} else {
		s.state.ExtractedText = text
	}
	s.state.Preview = previewFor(kind, path)
	s.publishLocked()
}

func previewFor(kind extract.Kind, path string) Preview {
	switch kind {
	case extract.KindDocument:
		return Preview{Kind: PreviewDocument, Path: path}
	case extract.KindImage:
		return Preview{Kind: PreviewImage, Path: path}
	default:
		return Preview{Kind: PreviewUnsupported}
	}
}

// PickerFailed records a picker error in the extracted text slot and clears
// the preview. Any extraction still in flight is superseded.
func (s *Session) PickerFailed(err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selSeq++
	s.pending = nil
	s.state.Extracting = false
	s.state.ExtractionErr = fmt.Errorf("%w: %w", ErrPickerFailure, err)
	s.state.ExtractedText = "File selection failed: " + err.Error()
	s.state.Preview = Preview{}
	s.publishLocked()

	telemetry.Info("session.picker.failed", map[string]any{"err": err})
}

// PickerCancelled handles a dismissed picker like a picker failure.
func (s *Session) PickerCancelled() {
	s.PickerFailed(ErrPickerCancelled)
}

// WaitExtraction blocks until the current selection's extraction has
// completed and returns the resulting state. If a newer selection starts
// while waiting, it waits for that one instead.
func (s *Session) WaitExtraction(ctx context.Context) (Snapshot, error) {
	for {
		s.mu.Lock()
		p := s.pending
		s.mu.Unlock()
		if p == nil {
			break
		}
		select {
		case <-p.Done():
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		}
		s.mu.Lock()
		same := s.pending == p
		s.mu.Unlock()
		if same {
			break
		}
	}
	return s.Snapshot(), nil
}

// SetJobDescription replaces the job description.
func (s *Session) SetJobDescription(jd string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.JobDescription = jd
	s.publishLocked()
}

// Generate sends the current extracted text and job description to the
// generation client. When the newest request completes, its letter or error
// placeholder replaces the displayed result. Failed extractions send empty
// résumé text rather than their placeholder.
func (s *Session) Generate(ctx context.Context) *async.Future[string] {
	done := async.New[string]()

	s.mu.Lock()
	s.resSeq++
	seq := s.resSeq
	cvText := s.state.ExtractedText
	if s.state.ExtractionErr != nil {
		cvText = ""
	}
	jd := s.state.JobDescription
	s.state.Generating = true
	s.publishLocked()
	s.mu.Unlock()

	generation.GenerateAsync(ctx, s.client, cvText, jd).Then(func(letter string, err error) {
		s.completeGeneration(seq, letter, err)
		done.Resolve(letter, err)
	})
	return done
}

func (s *Session) completeGeneration(seq uint64, letter string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.resSeq {
		telemetry.Info("session.generation.stale", map[string]any{"seq": seq, "current_seq": s.resSeq})
		return
	}
	s.state.Generating = false
	s.state.ResultErr = err
	if err != nil {
		s.state.Result = generation.Placeholder(err)
	} else {
		s.state.Result = letter
	}
	s.publishLocked()
}
