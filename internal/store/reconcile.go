package store

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// equateEmpty treats nil and empty slices as equal; the gateway may hand back
// either for an empty table.
var equateEmpty = cmpopts.EquateEmpty()

// reconcile compares what was written with what the gateway now reports.
// Persisted state wins, unless memory has changed since the save was
// captured.
func (t *table[T]) reconcile(gen uint64, written, persisted T) {
	if cmp.Equal(written, persisted, equateEmpty) {
		return
	}

	t.metrics.Mismatch(string(t.name))

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.gen != gen {
		t.log.Debug().
			Uint64("saved_gen", gen).
			Uint64("current_gen", t.gen).
			Msg("persisted value differs but memory has newer changes")
		return
	}

	t.log.Warn().
		Str("diff", cmp.Diff(written, persisted, equateEmpty)).
		Msg("persisted value differs from written value, adopting persisted state")
	t.value = t.clone(persisted)
	t.gen++
}
