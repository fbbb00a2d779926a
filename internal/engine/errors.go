package engine

import (
	"errors"

	"github.com/dshills/wikistorm/internal/engine/buffer"
	"github.com/dshills/wikistorm/internal/engine/history"
	"github.com/dshills/wikistorm/internal/engine/tracking"
)

// Errors returned by engine operations.
var (
	// ErrOutOfRange indicates a location outside the document.
	ErrOutOfRange = buffer.ErrOutOfRange

	// ErrRangeInvalid indicates a range whose end is before its start.
	ErrRangeInvalid = buffer.ErrRangeInvalid

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrSnapshotNotFound indicates a snapshot was not found.
	ErrSnapshotNotFound = tracking.ErrSnapshotNotFound

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrInTransaction indicates an operation that cannot run inside a
	// transaction.
	ErrInTransaction = errors.New("transaction in progress")
)
