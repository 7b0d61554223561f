package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHitungJarakTitikSama(t *testing.T) {
	jarak := HitungJarak(-4.013, 119.627, -4.013, 119.627)
	assert.InDelta(t, 0, jarak, 0.001)
}

func TestHitungJarakSatuDerajatLintang(t *testing.T) {
	// 1 derajat lintang kira-kira 111 km
	jarak := HitungJarak(0, 119, 1, 119)
	assert.InDelta(t, 111195, jarak, 200)
}

func TestDalamRadiusBatas(t *testing.T) {
	// Tepat di batas radius masih dihitung valid
	assert.True(t, DalamRadius(100, 100))
	assert.True(t, DalamRadius(99.9, 100))
	assert.False(t, DalamRadius(100.1, 100))
	assert.False(t, DalamRadius(101, 100))
}
