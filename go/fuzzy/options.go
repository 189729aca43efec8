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

import "go.uber.org/zap"

const (
	// DefaultMaxTrials caps the number of trials of a session.
	DefaultMaxTrials = 10000
	// DefaultCacheSize is the number of subcase sets kept per session.
	DefaultCacheSize = 256
)

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger reporting the progress of sessions. By default
// nothing is logged.
func WithLogger(log *zap.Logger) Option {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// WithMaxTrials caps the number of trials per session. Sessions reaching the
// cap end as if their schedule was exhausted.
func WithMaxTrials(trials int) Option {
	return func(c *Context) {
		c.maxTrials = trials
	}
}

// WithCacheSize sets the number of subcase sets cached per session.
func WithCacheSize(size int) Option {
	return func(c *Context) {
		c.cacheSize = size
	}
}
