package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"nutrisnap/models"
	"nutrisnap/utils"
)

// SessionState is the externally visible state of one capture session.
type SessionState string

const (
	StateDetecting    SessionState = "detecting"
	StateSearching    SessionState = "searching"
	StateNoneDetected SessionState = "none_detected"
	StateResolved     SessionState = "resolved"
)

// How long the app keeps showing a spinner before the "no food detected"
// terminal state becomes visible.
const defaultNoneDetectedDelay = 2 * time.Second

var (
	ErrNoSession       = errors.New("no capture session; scan an image first")
	ErrNotResolved     = errors.New("capture session has no resolved candidates")
	ErrNoSuchCandidate = errors.New("candidate index out of range")
	ErrConfirmInFlight = errors.New("another commit is already in progress")
)

// LogWriter is the commit half of the log store, split out so the capture
// pipeline can be tested without a database.
type LogWriter interface {
	Insert(userID uint, foodName string, rec utils.ScaledRecord) (*models.FoodLog, error)
}

// CaptureService runs the capture → identify → resolve pipeline. One session
// per user; starting a new capture unconditionally discards the old session,
// and completions belonging to a discarded session are thrown away.
type CaptureService struct {
	detector FoodDetector
	searcher NutrientSearcher
	logs     LogWriter

	noneDelay time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[uint]*captureSession
	gens     map[uint]uint64
}

type captureSession struct {
	generation    uint64
	state         SessionState
	detectedNames []string
	candidates    []FoodCandidate
	noneVisibleAt time.Time
	confirming    bool
}

// SessionSnapshot is what clients poll while a capture settles.
type SessionSnapshot struct {
	State         SessionState    `json:"state"`
	DetectedNames []string        `json:"detected_names,omitempty"`
	Candidates    []FoodCandidate `json:"candidates"`
	Confirming    bool            `json:"confirming"`
}

func NewCaptureService(detector FoodDetector, searcher NutrientSearcher, logs LogWriter) *CaptureService {
	return &CaptureService{
		detector:  detector,
		searcher:  searcher,
		logs:      logs,
		noneDelay: defaultNoneDetectedDelay,
		now:       time.Now,
		sessions:  make(map[uint]*captureSession),
		gens:      make(map[uint]uint64),
	}
}

// StartCapture begins a fresh session for the image and drives it until the
// candidate list settles. Detection failure is treated as zero detected
// names; individual lookup failures contribute nothing and never abort the
// run. The returned snapshot reflects the session as of completion; if a
// newer capture superseded this one mid-flight, its results are discarded
// and the current session's snapshot is returned instead.
func (s *CaptureService) StartCapture(ctx context.Context, userID uint, jpeg []byte) SessionSnapshot {
	s.mu.Lock()
	s.gens[userID]++
	sess := &captureSession{generation: s.gens[userID], state: StateDetecting}
	s.sessions[userID] = sess
	s.mu.Unlock()

	names, err := s.detector.DetectFoods(ctx, jpeg)
	if err != nil {
		names = nil
	}

	if len(names) == 0 {
		s.publish(userID, sess.generation, func(cs *captureSession) {
			cs.state = StateNoneDetected
			cs.noneVisibleAt = s.now().Add(s.noneDelay)
		})
		return s.Snapshot(userID)
	}

	s.publish(userID, sess.generation, func(cs *captureSession) {
		cs.state = StateSearching
		cs.detectedNames = names
	})

	candidates := s.gather(ctx, names)

	s.publish(userID, sess.generation, func(cs *captureSession) {
		cs.state = StateResolved
		cs.candidates = candidates
	})
	return s.Snapshot(userID)
}

// gather fans out one lookup per detected name and waits for every one to
// settle. Per-name results keep detection order, then within-name order, so
// repeated runs against stable inputs are reproducible. Duplicates across
// names are preserved as distinct candidates.
func (s *CaptureService) gather(ctx context.Context, names []string) []FoodCandidate {
	perName := make([][]FoodCandidate, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			found, err := s.searcher.SearchFoods(ctx, name)
			if err != nil {
				return // lookup failure == zero results for this name
			}
			perName[i] = found
		}(i, name)
	}
	wg.Wait()

	var out []FoodCandidate
	for _, found := range perName {
		out = append(out, found...)
	}
	if out == nil {
		out = []FoodCandidate{}
	}
	return out
}

// publish applies fn to the user's session only if it still belongs to the
// given generation, so a restarted capture never sees stale results.
func (s *CaptureService) publish(userID uint, generation uint64, fn func(*captureSession)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[userID]
	if sess == nil || sess.generation != generation {
		return
	}
	fn(sess)
}

// Snapshot reports the session for polling clients. A none-detected outcome
// is held back until its display delay has elapsed, so a fast empty
// detection does not flash the terminal state during normal latency.
func (s *CaptureService) Snapshot(userID uint) SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[userID]
	if sess == nil {
		return SessionSnapshot{State: StateDetecting, Candidates: []FoodCandidate{}}
	}

	state := sess.state
	if state == StateNoneDetected && s.now().Before(sess.noneVisibleAt) {
		state = StateDetecting
	}

	candidates := sess.candidates
	if candidates == nil {
		candidates = []FoodCandidate{}
	}
	return SessionSnapshot{
		State:         state,
		DetectedNames: sess.detectedNames,
		Candidates:    candidates,
		Confirming:    sess.confirming,
	}
}

// Confirm scales the selected candidate by the serving multiplier and
// commits it as a log entry. The session stays resolved afterwards so more
// candidates can be committed from the same capture. At most one commit may
// be pending per session; a failed insert keeps the confirming slot's
// candidate available for retry.
func (s *CaptureService) Confirm(userID uint, candidateIndex int, multiplier float64) (*models.FoodLog, error) {
	s.mu.Lock()
	sess := s.sessions[userID]
	if sess == nil {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	if sess.state != StateResolved {
		s.mu.Unlock()
		return nil, ErrNotResolved
	}
	if candidateIndex < 0 || candidateIndex >= len(sess.candidates) {
		s.mu.Unlock()
		return nil, ErrNoSuchCandidate
	}
	if sess.confirming {
		s.mu.Unlock()
		return nil, ErrConfirmInFlight
	}
	sess.confirming = true
	generation := sess.generation
	candidate := sess.candidates[candidateIndex]
	s.mu.Unlock()

	clearSlot := func() {
		s.publish(userID, generation, func(cs *captureSession) { cs.confirming = false })
	}

	rec, err := utils.Scale(candidate.Normalized, multiplier)
	if err != nil {
		clearSlot()
		return nil, err
	}

	entry, err := s.logs.Insert(userID, candidate.Description, rec)
	if err != nil {
		clearSlot()
		return nil, err
	}

	clearSlot()
	return entry, nil
}
