// Package buffer provides the thread-safe, line-indexed text store that
// backs a wikitext document.
//
// Text is kept as a slice of lines without terminators, which is the shape
// the tokenizer and the markup extractor consume. Positions are
// textrange.ItemLocation values: a zero-based line and a byte offset into
// that line. A location at the end of a line addresses the newline that
// follows it.
//
// The buffer provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Range reads and replacements by line/offset location
//   - Change records that can be inverted for undo
//   - Read-only snapshots for concurrent access
//   - Line ending detection and normalization
//   - Revision tracking for cache invalidation
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("'''bold''' text")
//
//	// Remove the apostrophes around "bold"
//	buf.Replace(textrange.LineRange(0, 7, 10), "")
//	buf.Replace(textrange.LineRange(0, 0, 3), "")
//
//	snap := buf.Snapshot()
//	go func() {
//	    text := snap.Text()
//	    // Process text...
//	}()
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// while write operations acquire an exclusive write lock. For scenarios
// requiring multiple reads without the possibility of intervening writes,
// use Snapshot() to obtain a consistent read-only view.
package buffer
