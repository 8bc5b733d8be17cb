// Package storetest holds behaviour checks shared by every core.SessionStore backend.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/sandevgo/motivate/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a store produced by newStore. Each subtest gets a fresh store.
func Run(t *testing.T, newStore func(t *testing.T) core.SessionStore) {
	t.Run("load unseen key yields system turn", func(t *testing.T) {
		store := newStore(t)
		got, err := store.Load(context.Background(), "never-seen")
		require.NoError(t, err)
		assert.Equal(t, core.Transcript{core.SystemTurn()}, got)
	})

	t.Run("load is idempotent without save", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		first, err := store.Load(ctx, "idle")
		require.NoError(t, err)
		second, err := store.Load(ctx, "idle")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("save then load round trips in order", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		want := core.Transcript{
			core.SystemTurn(),
			{Role: core.RoleUser, Content: "hi"},
			{Role: core.RoleAssistant, Content: "hello — how are you?"},
		}

		require.NoError(t, store.Save(ctx, "demo_user", want))
		got, err := store.Load(ctx, "demo_user")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("save replaces previous transcript", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "k", core.Transcript{
			core.SystemTurn(),
			{Role: core.RoleUser, Content: "one"},
			{Role: core.RoleAssistant, Content: "two"},
		}))
		replacement := core.Transcript{core.SystemTurn(), {Role: core.RoleUser, Content: "three"}}
		require.NoError(t, store.Save(ctx, "k", replacement))

		got, err := store.Load(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, replacement, got)
	})

	t.Run("keys are isolated", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "alice", core.Transcript{
			core.SystemTurn(),
			{Role: core.RoleUser, Content: "alice says"},
		}))

		got, err := store.Load(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, core.NewTranscript(), got)
	})

	t.Run("caller mutation does not leak into store", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		saved := core.Transcript{core.SystemTurn(), {Role: core.RoleUser, Content: "original"}}
		require.NoError(t, store.Save(ctx, "k", saved))

		saved[1].Content = "mutated"
		loaded, err := store.Load(ctx, "k")
		require.NoError(t, err)
		loaded[1].Content = "mutated again"

		got, err := store.Load(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "original", got[1].Content)
	})

	t.Run("concurrent saves on one key are not interleaved", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				tr := core.Transcript{core.SystemTurn()}
				for j := 0; j < 4; j++ {
					tr = append(tr, core.ChatTurn{Role: core.RoleUser, Content: fmt.Sprintf("writer-%d", i)})
				}
				assert.NoError(t, store.Save(ctx, "shared", tr))
			}(i)
		}
		wg.Wait()

		got, err := store.Load(ctx, "shared")
		require.NoError(t, err)
		require.Len(t, got, 5)
		for _, turn := range got[1:] {
			assert.Equal(t, got[1].Content, turn.Content, "transcript mixes writers")
		}
	})
}
