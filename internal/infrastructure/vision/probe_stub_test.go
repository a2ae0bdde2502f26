//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoCVProbe_StubUnavailable(t *testing.T) {
	require.False(t, Available)

	_, _, err := NewGoCVProbe().Dimensions(context.Background(), []byte("img"))
	require.ErrorIs(t, err, ErrUnavailable)
}
