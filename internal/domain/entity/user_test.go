package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_Defaults(t *testing.T) {
	u := NewUser(1, 10)
	require.Equal(t, StateMainMenu, u.State)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, int64(10), u.ChatID)
	require.Equal(t, DefaultParams(), u.Params)
}

func TestUser_SetParams_Normalizes(t *testing.T) {
	u := NewUser(1, 10)
	u.SetParams(Params{BlurSize: 2, Threshold: 500})
	require.Equal(t, MinBlurSize, u.Params.BlurSize)
	require.Equal(t, MaxThreshold, u.Params.Threshold)
}
