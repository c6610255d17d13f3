package future

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGo_Value(t *testing.T) {
	f := Go(func() (int, error) { return 7, nil })
	v, err := f.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, v)
}

func TestFailed_IsDone(t *testing.T) {
	boom := errors.New("boom")
	f := Failed[string](boom)
	select {
	case <-f.Done():
	default:
		t.Fatal("failed future should be completed")
	}
	_, err := f.Await(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestThen(t *testing.T) {
	f := Then(Go(func() (int, error) { return 2, nil }), func(v int) (string, error) {
		return string(rune('a' + v)), nil
	})
	v, err := f.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "c", v)

	boom := errors.New("boom")
	called := false
	g := Then(Failed[int](boom), func(int) (int, error) {
		called = true
		return 0, nil
	})
	_, err = g.Await(context.Background())
	require.ErrorIs(t, err, boom)
	require.False(t, called)
}

func TestAwait_ContextDone(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	f := Go(func() (int, error) {
		<-release
		return 1, nil
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
