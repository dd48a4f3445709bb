// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package traversal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "VisitOperands", VisitOperands.String())
	assert.Equal(t, "AbortTraversal", AbortTraversal.String())
	assert.Equal(t, "DoNotVisitOperands", DoNotVisitOperands.String())
	assert.Equal(t, "Result(5)", Result(5).String())

	r, err := ResultString("donotvisitoperands")
	require.NoError(t, err)
	assert.Equal(t, DoNotVisitOperands, r)
	assert.Len(t, ResultValues(), 3)
	assert.False(t, Result(-1).IsAResult())
}
