package binance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairSet(t *testing.T) {
	ps := NewPairSet([]string{"btc", " ETH ", "", "BTC"}, "usdt")

	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, ps.Pairs())

	base, ok := ps.Base("ethusdt")
	assert.True(t, ok)
	assert.Equal(t, "ETH", base)

	_, ok = ps.Base("SOLUSDT")
	assert.False(t, ok)
}
