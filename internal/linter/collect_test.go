package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copper/internal/diag"
	"copper/internal/fix"
)

func TestCollectorLinksEditsToOffenses(t *testing.T) {
	col := newCollector()
	buf := &hookBuffer{}
	a := diag.Diagnostic{CopName: "Test/A", Location: diag.Location{Line: 1}, Message: "a", Corrected: true}
	b := diag.Diagnostic{CopName: "Test/B", Location: diag.Location{Line: 2}, Message: "b", Corrected: true}

	buf.Offense(a, []fix.Correction{fix.ReplaceRange(0, 1, "y")})
	buf.Offense(a, []fix.Correction{fix.ReplaceRange(0, 1, "y")})
	col.commit(buf)
	buf.Offense(b, []fix.Correction{fix.ReplaceRange(0, 2, "zz"), fix.InsertText(5, ";")})
	col.commit(buf)

	require.Equal(t, 2, col.bag.Len(), "duplicate offense is committed once")
	require.Len(t, col.corrections, 3)
	assert.Equal(t, []int{0, 1, 1}, []int{col.corrections[0].Offense, col.corrections[1].Offense, col.corrections[2].Offense})
	assert.Empty(t, buf.items)

	diags := append([]diag.Diagnostic(nil), col.bag.Items()...)
	set := fix.NewCorrectionSet(col.corrections)
	markApplied(diags, col.corrections, set)
	assert.True(t, diags[0].Corrected)
	assert.False(t, diags[1].Corrected, "one of its edits lost the merge")
}
