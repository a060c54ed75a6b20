package scan

import "go.uber.org/zap"

// Report tallies how the scanned images ended up.
type Report struct {
	Scanned  int // elements dispatched into the pipeline
	Inverted int
	Filtered int
	Skipped  int
	Rejected int
	Aborted  int
	Unloaded int // elements whose load never completed
}

func (r *Report) count(o Outcome) {
	r.Scanned++
	switch o {
	case OutcomeRejected:
		r.Rejected++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeInverted:
		r.Inverted++
	case OutcomeFiltered:
		r.Filtered++
	case OutcomeAborted:
		r.Aborted++
	}
}

// Changed reports whether any image was visually altered.
func (r *Report) Changed() bool {
	return r.Inverted > 0 || r.Filtered > 0
}

// Scanner feeds each image element of a document into the pipeline exactly
// once. It owns the record of already-handled elements, so a rescan or a
// transform that rewrites an element's source can never reprocess it.
type Scanner struct {
	pipe      *Pipeline
	report    *Report
	log       *zap.Logger
	processed map[Element]struct{}
	deferred  map[Element]func()
}

// NewScanner builds a scanner feeding the given pipeline and tallying into
// the given report.
func NewScanner(pipe *Pipeline, report *Report, log *zap.Logger) *Scanner {
	return &Scanner{
		pipe:      pipe,
		report:    report,
		log:       log,
		processed: make(map[Element]struct{}),
		deferred:  make(map[Element]func()),
	}
}

// Scan dispatches every image not yet handled. Loaded elements run through
// the pipeline immediately; the rest are picked up by a one-shot load
// callback, in no particular order relative to each other.
func (s *Scanner) Scan(elements []Element) {
	for _, el := range elements {
		if s.done(el) {
			continue
		}
		if el.Complete() {
			s.process(el)
			continue
		}
		if _, waiting := s.deferred[el]; waiting {
			continue
		}
		s.deferred[el] = el.OnLoad(func() {
			delete(s.deferred, el)
			s.process(el)
		})
		s.log.Debug("deferring image until load", zap.String("src", shortSrc(el.Src())))
	}
}

// Shutdown cancels load callbacks that have not fired, detaching the
// scanner from elements whose loads will never be seen.
func (s *Scanner) Shutdown() {
	for el, cancel := range s.deferred {
		cancel()
		delete(s.deferred, el)
	}
}

func (s *Scanner) done(el Element) bool {
	_, ok := s.processed[el]
	return ok
}

// process marks the element handled before anything else runs, so a failure
// or early return can never re-enter it.
func (s *Scanner) process(el Element) {
	if s.done(el) {
		return
	}
	s.processed[el] = struct{}{}
	s.report.count(s.pipe.Run(el))
}
