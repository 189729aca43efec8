// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package fuzzy

import (
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"slices"
	"strings"

	"github.com/Fantom-foundation/fuzzy/go/fuzzy/pairwise"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"
	"pgregory.net/rand"
)

// Mode selects the coverage guarantee of a session.
type Mode int

const (
	// PairwisePermutationsOfSubcases runs every combination of two subcases
	// of any two dimensions in at least one trial.
	PairwisePermutationsOfSubcases Mode = iota
	// EachSubcaseAtLeastOnce runs every subcase of every dimension in at
	// least one trial.
	EachSubcaseAtLeastOnce
)

func (m Mode) String() string {
	switch m {
	case PairwisePermutationsOfSubcases:
		return "PairwisePermutationsOfSubcases"
	case EachSubcaseAtLeastOnce:
		return "EachSubcaseAtLeastOnce"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Modes lists all supported modes.
var Modes = []Mode{PairwisePermutationsOfSubcases, EachSubcaseAtLeastOnce}

// ParseMode is the inverse of Mode.String.
func ParseMode(name string) (Mode, error) {
	for _, mode := range Modes {
		if strings.EqualFold(mode.String(), name) {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("%w, unknown mode %q", ErrInvalidArgument, name)
}

func (m Mode) coverage() (pairwise.Mode, error) {
	switch m {
	case PairwisePermutationsOfSubcases:
		return pairwise.Pairs, nil
	case EachSubcaseAtLeastOnce:
		return pairwise.Singles, nil
	}
	return 0, fmt.Errorf("%w, unknown mode %v", ErrInvalidArgument, m)
}

type sessionState int

const (
	uninitialized sessionState = iota
	active
	exhausted
	tornDown
)

// Context drives the trials of a scenario. A session is started by Init,
// after which the scenario body declares its dimensions through Of and reads
// their values. Next concludes a trial and reports whether the body has to
// be executed once more. CleanUp ends the session.
//
//	ctx.Init(fuzzy.PairwisePermutationsOfSubcases, seed)
//	for {
//		body(ctx)
//		if !ctx.Next() {
//			break
//		}
//	}
//	err := errors.Join(ctx.Err(), ctx.CleanUp())
//
// Only one session can be active per Context at a time. A Context is not
// safe for concurrent use.
type Context struct {
	log       *zap.Logger
	maxTrials int
	cacheSize int

	state   sessionState
	mode    Mode
	seed    uint64
	trial   int
	cursor  int
	dims    []*dimension
	tracker *pairwise.Tracker
	cache   *lru.Cache[string, any]
	hash    hash.Hash
	err     error
}

type dimension struct {
	deps      []DimensionID
	ancestors []int
	bound     bool
	subcase   string
	value     any
}

func NewContext(opts ...Option) *Context {
	res := &Context{
		log:       zap.NewNop(),
		maxTrials: DefaultMaxTrials,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Init starts a new session. All random decisions of the session are derived
// from the given seed, so sessions with equal seeds running the same
// scenario produce the same trials.
func (c *Context) Init(mode Mode, seed uint64) error {
	if c.state == active || c.state == exhausted {
		return fmt.Errorf("%w, call CleanUp first", ErrSessionActive)
	}
	coverage, err := mode.coverage()
	if err != nil {
		return err
	}
	if c.maxTrials <= 0 {
		return fmt.Errorf("%w, max trials must be positive, got %d", ErrInvalidArgument, c.maxTrials)
	}
	cache, err := lru.New[string, any](c.cacheSize)
	if err != nil {
		return fmt.Errorf("%w, %v", ErrInvalidArgument, err)
	}

	c.state = active
	c.mode = mode
	c.seed = seed
	c.trial = 0
	c.cursor = 0
	c.dims = nil
	c.tracker = pairwise.NewTracker(coverage)
	c.cache = cache
	c.hash = sha3.New256()
	c.err = nil

	c.log.Debug("session started", zap.Stringer("mode", mode), zap.Uint64("seed", seed))
	return nil
}

// Next concludes the current trial. It returns true if the scenario has to
// be executed once more, and false if the schedule is exhausted, the trial
// cap was reached or the session failed. See Err for the latter.
func (c *Context) Next() bool {
	switch c.state {
	case exhausted:
		return false
	case uninitialized, tornDown:
		c.fail(fmt.Errorf("%w, Next called outside of a session", ErrNoSession))
		return false
	}
	if c.err != nil {
		c.state = exhausted
		return false
	}
	if c.cursor != len(c.dims) {
		c.fail(fmt.Errorf("%w, trial %d declared %d of %d dimensions", ErrScenarioDiverged, c.trial, c.cursor, len(c.dims)))
		c.state = exhausted
		return false
	}

	if c.tracker.Commit() {
		target, _ := c.tracker.Target()
		c.log.Info("infeasible combination dropped",
			zap.Int("trial", c.trial),
			zap.String("target", c.tracker.Describe(target)),
		)
	}
	c.log.Debug("trial committed", zap.Int("trial", c.trial), zap.Int("covered", c.tracker.Covered()))
	c.trial++

	if c.trial >= c.maxTrials {
		c.log.Warn("trial cap reached", zap.Int("trials", c.trial))
		c.state = exhausted
		return false
	}
	if !c.tracker.Advance() {
		c.log.Info("schedule exhausted",
			zap.Int("trials", c.trial),
			zap.Int("covered", c.tracker.Covered()),
			zap.Int("dropped", c.tracker.Dropped()),
		)
		c.state = exhausted
		return false
	}

	c.cursor = 0
	for _, dim := range c.dims {
		dim.bound = false
		dim.subcase = ""
		dim.value = nil
	}
	return true
}

// Err returns the first error encountered in the session, if any.
func (c *Context) Err() error {
	return c.err
}

// CleanUp ends the current session and releases its resources.
func (c *Context) CleanUp() error {
	if c.state != active && c.state != exhausted {
		return fmt.Errorf("%w, CleanUp called outside of a session", ErrNoSession)
	}
	c.log.Debug("session ended", zap.Int("trials", c.trial), zap.Int("dimensions", len(c.dims)))
	c.state = tornDown
	c.dims = nil
	c.tracker = nil
	c.cache.Purge()
	return nil
}

// Trial returns the zero-based index of the current trial. After the session
// is exhausted it is the number of completed trials.
func (c *Context) Trial() int {
	return c.trial
}

// Dimensions returns the number of dimensions declared so far.
func (c *Context) Dimensions() int {
	return len(c.dims)
}

// Fingerprint is a digest of the schedule executed so far, covering the
// subcase selected for every dimension in every trial.
func (c *Context) Fingerprint() string {
	if c.hash == nil {
		return ""
	}
	return hex.EncodeToString(c.hash.Sum(nil))
}

func (c *Context) fail(err error) error {
	if c.err == nil {
		c.err = err
	}
	return err
}

// declare validates the next dimension of the current trial and returns its
// position.
func (c *Context) declare(deps []DimensionID) (int, error) {
	if c.state != active {
		return 0, c.fail(fmt.Errorf("%w, dimensions can only be declared in a session", ErrNoSession))
	}
	if c.err != nil {
		return 0, c.err
	}
	pos := c.cursor
	for _, dep := range deps {
		if int(dep) < 0 || int(dep) >= pos || !c.dims[dep].bound {
			return 0, c.fail(fmt.Errorf("%w, dimension %d depends on %d", ErrUnresolvedDependency, pos, dep))
		}
	}

	if pos < len(c.dims) {
		if !slices.Equal(c.dims[pos].deps, deps) {
			return 0, c.fail(fmt.Errorf(
				"%w, dependencies of dimension %d changed from %v to %v",
				ErrScenarioDiverged, pos, c.dims[pos].deps, deps,
			))
		}
	} else {
		ancestors := []int{}
		for _, dep := range deps {
			ancestors = append(ancestors, int(dep))
			ancestors = append(ancestors, c.dims[dep].ancestors...)
		}
		slices.Sort(ancestors)
		ancestors = slices.Compact(ancestors)
		c.dims = append(c.dims, &dimension{
			deps:      slices.Clone(deps),
			ancestors: ancestors,
		})
		c.log.Debug("dimension registered", zap.Int("dimension", pos), zap.Ints("ancestors", ancestors))
	}
	c.cursor++
	return pos, nil
}

// cacheKey identifies the subcase set of a dimension. Scenario bodies may
// configure cases using the values of earlier dimensions, with or without
// declaring them as dependencies, so the key covers all of them.
func (c *Context) cacheKey(pos int) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%d", pos)
	for i, dim := range c.dims[:pos] {
		fmt.Fprintf(&builder, "|%d=%s:%v", i, dim.subcase, dim.value)
	}
	return builder.String()
}

func (c *Context) choose(pos int, names []string) int {
	return c.tracker.Choose(pos, c.dims[pos].ancestors, names)
}

// random creates the source of the dimension at pos for the current trial.
func (c *Context) random(pos int) Random {
	return rand.New(c.seed, uint64(c.trial), uint64(pos))
}

func (c *Context) bind(pos int, subcase string, value any) {
	dim := c.dims[pos]
	dim.bound = true
	dim.subcase = subcase
	dim.value = value
	fmt.Fprintf(c.hash, "%d:%d:%s;", c.trial, pos, subcase)
}

func (c *Context) bound(id DimensionID) (*dimension, error) {
	if c.state != active || int(id) < 0 || int(id) >= len(c.dims) || !c.dims[id].bound {
		return nil, fmt.Errorf("%w, dimension %d is not bound in the current trial", ErrUnresolvedDependency, id)
	}
	return c.dims[id], nil
}

// Summary describes a completed session.
type Summary struct {
	Trials      int
	Dimensions  int
	Fingerprint string
}

// Run executes a whole session of the given scenario body on a new Context.
// The body is executed once per trial; the session ends with the first error
// returned by the body.
func Run(mode Mode, seed uint64, body func(*Context) error, opts ...Option) (Summary, error) {
	ctx := NewContext(opts...)
	if err := ctx.Init(mode, seed); err != nil {
		return Summary{}, err
	}
	var errs []error
	for {
		if err := body(ctx); err != nil {
			errs = append(errs, fmt.Errorf("trial %d: %w", ctx.Trial(), err))
			break
		}
		if !ctx.Next() {
			break
		}
	}
	summary := Summary{
		Trials:      ctx.Trial(),
		Dimensions:  ctx.Dimensions(),
		Fingerprint: ctx.Fingerprint(),
	}
	if err := ctx.Err(); err != nil && (len(errs) == 0 || !errors.Is(errs[0], err)) {
		errs = append(errs, err)
	}
	errs = append(errs, ctx.CleanUp())
	return summary, errors.Join(errs...)
}
