// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package process

import "slices"

// State is the lifecycle stage of a Process.
type State int

const (
	// Unlaunched is a constructed handle that has never been launched.
	Unlaunched State = iota
	// Running holds a child PID and three open streams.
	Running
	// Closed has been killed and released, and may be launched again.
	Closed
	// Freed is terminal.
	Freed
)

var transitions = map[State][]State{
	Unlaunched: {Running, Freed},
	Running:    {Closed, Freed},
	Closed:     {Running, Freed},
}

func (s State) canMoveTo(next State) bool {
	return slices.Contains(transitions[s], next)
}

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Unlaunched:
		return "unlaunched"
	case Running:
		return "running"
	case Closed:
		return "closed"
	case Freed:
		return "freed"
	default:
		return "unknown"
	}
}
