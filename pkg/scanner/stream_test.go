// stream_test.go - token stream tests.
// SPDX-License-Identifier: GPL-3.0-or-later

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStream(t *testing.T) {
	t.Run("the zero value is empty", func(t *testing.T) {
		var st Stream
		assert.True(t, st.Empty())
		_, ok := st.Front()
		assert.False(t, ok)
		_, ok = st.PopFront()
		assert.False(t, ok)
	})

	t.Run("front peeks without consuming", func(t *testing.T) {
		st := NewStream([]Token{
			ArgumentToken{Idx: 0, Value: "a"},
			ArgumentToken{Idx: 1, Value: "b"},
		})

		tok, ok := st.Front()
		assert.True(t, ok)
		assert.Equal(t, "a", tok.String())
		assert.False(t, st.Empty())

		tok, ok = st.PopFront()
		assert.True(t, ok)
		assert.Equal(t, "a", tok.String())

		tok, ok = st.PopFront()
		assert.True(t, ok)
		assert.Equal(t, "b", tok.String())
		assert.True(t, st.Empty())
	})
}
