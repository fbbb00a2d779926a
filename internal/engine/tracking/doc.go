// Package tracking records document changes and named snapshots, and
// computes line diffs between document states.
//
// The engine feeds every applied buffer edit into a [Tracker]. Snapshots
// capture the whole document by value, so a snapshot taken before a
// formatting command can later be diffed against the current text:
//
//	id := tracker.CreateSnapshot("before-clear", buf.Snapshot())
//	// ... edits ...
//	diff, err := tracker.DiffSinceSnapshot(id, buf.Text(), tracking.DefaultDiffOptions())
//	fmt.Print(tracking.UnifiedDiff(diff, "a/page.wiki", "b/page.wiki"))
//
// Diffs are computed with diffmatchpatch in line mode.
//
// All Tracker operations are thread-safe.
package tracking
