package estimate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHouseholds_RadiusFive(t *testing.T) {
	// pi * 25 * 500
	assert.InDelta(t, math.Pi*25*500, Households(5), 0.1)
	assert.InDelta(t, 39269.9, Households(5), 0.2)
}

func TestDirectMail_LinearInFrequency(t *testing.T) {
	_, pot1 := DirectMail(false, 5, 1, 25)
	_, pot3 := DirectMail(false, 5, 3, 25)
	assert.InDelta(t, 3*pot1, pot3, 0.001)
}

func TestDirectMail_NonMailerSeesFullOpportunity(t *testing.T) {
	cur, pot := DirectMail(false, 5, 0, 25)
	assert.Zero(t, cur)
	assert.Greater(t, pot, 0.0)
}

func TestDirectMail_ActiveMailerSaturated(t *testing.T) {
	cur, pot := DirectMail(true, 5, 2, 25)
	assert.InDelta(t, cur, pot, 0.001)
	assert.Greater(t, cur, 0.0)
}

func TestDirectMail_ZeroRadius(t *testing.T) {
	cur, pot := DirectMail(true, 0, 2, 25)
	assert.Zero(t, cur)
	assert.Zero(t, pot)
}

func TestThirdParty_NetOfCommission(t *testing.T) {
	// 300 * 25 * (1 - 0.225) = 5812.5
	assert.InDelta(t, 5812.5, ThirdPartyNet(300, 25), 0.001)
}

func TestThirdParty_PassThrough(t *testing.T) {
	cur, pot := ThirdParty(true, 300, 25)
	assert.InDelta(t, 5812.5, cur, 0.001)
	assert.Equal(t, cur, pot)
}

func TestThirdParty_Unused(t *testing.T) {
	cur, pot := ThirdParty(false, 300, 25)
	assert.Zero(t, cur)
	assert.Zero(t, pot)
}

func TestThirdParty_ZeroOrders(t *testing.T) {
	assert.Zero(t, ThirdPartyNet(0, 25))
}
