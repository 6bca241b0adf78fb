// Package testing records clock face drawing as comparable values.
//
// A face is drawn onto a serializing canvas that turns every call into a
// DisplayOp, so tests can compare whole frames with go-cmp or against a
// JSON snapshot file:
//
//	ops := clocktest.Record(r.Size(), func(c graphics.Canvas) {
//	    r.Draw(c, ts, sk)
//	})
//	clocktest.NewSnapshot(r.Size(), ops).MatchesFile(t, "testdata/analog.snapshot.json")
//
// Update snapshots with:
//
//	CLOCKFACE_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import clocktest "github.com/go-drift/clockface/pkg/testing"
package testing
