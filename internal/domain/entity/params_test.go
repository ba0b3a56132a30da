package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParams_Normalize(t *testing.T) {
	// Значения в границах и нечётное ядро остаются как есть.
	p := Params{BlurSize: 201, Threshold: 17}.Normalize()
	require.Equal(t, Params{BlurSize: 201, Threshold: 17}, p)

	// Чётное ядро приводится к следующему нечётному.
	p = Params{BlurSize: 200, Threshold: 17}.Normalize()
	require.Equal(t, 201, p.BlurSize)

	// Выход за границы прижимается, а не отклоняется.
	p = Params{BlurSize: 10, Threshold: 0}.Normalize()
	require.Equal(t, MinBlurSize, p.BlurSize)
	require.Equal(t, MinThreshold, p.Threshold)

	p = Params{BlurSize: 1000, Threshold: 300}.Normalize()
	require.Equal(t, MaxBlurSize, p.BlurSize)
	require.Equal(t, MaxThreshold, p.Threshold)

	// Верхняя граница ядра нечётная, коэрция её не превышает.
	require.Equal(t, 1, p.BlurSize%2)
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	require.Equal(t, DefaultBlurSize, p.BlurSize)
	require.Equal(t, DefaultThreshold, p.Threshold)
	require.Equal(t, p, p.Normalize())
}
