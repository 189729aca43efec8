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

import "github.com/Fantom-foundation/fuzzy/go/common"

// ErrInvalidArgument is returned when a case is configured with parameters
// that can not describe a value space, e.g. an empty range.
const ErrInvalidArgument = common.ConstErr("invalid argument")

// ErrGenerationExhausted is returned when a subcase could not produce a value
// outside the excluded values within MaxExclusionAttempts draws.
const ErrGenerationExhausted = common.ConstErr("generation exhausted")

// ErrSessionActive is returned by Context.Init if a session is already active.
const ErrSessionActive = common.ConstErr("session already active")

// ErrNoSession is returned by session operations requiring an active session.
const ErrNoSession = common.ConstErr("no active session")

// ErrUnresolvedDependency is returned if a case depends on a dimension that
// has no value in the current trial.
const ErrUnresolvedDependency = common.ConstErr("unresolved dependency")

// ErrScenarioDiverged is returned if a scenario declares its dimensions
// differently than in previous trials of the same session.
const ErrScenarioDiverged = common.ConstErr("scenario diverged")
