package producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSet_ShopOrder(t *testing.T) {
	glitter := NewSet(FamilyGlitter)
	require.Len(t, glitter, 4)
	assert.Equal(t, "Warrior Fairies", glitter[0].Name)
	assert.Equal(t, 10.0, glitter[0].Cost)
	assert.Equal(t, 30.0, glitter[3].Production)

	clouds := NewSet(FamilyCloud)
	require.Len(t, clouds, 4)
	assert.Equal(t, "glitter", clouds[0].Currency)
	assert.Equal(t, "stardust", clouds[3].Currency)
	assert.Equal(t, 300.0, clouds[2].Production)

	accels := NewSet(FamilyAccelerator)
	require.Len(t, accels, 4)
	assert.Equal(t, 1.0, accels[2].SpeedBoost)
	assert.Equal(t, 1.0, accels[0].ProductivityMult)

	tricks := NewSet(FamilyLeprechaun)
	require.Len(t, tricks, 4)
	assert.Equal(t, "Trickery", tricks[LeprechaunTrickery].Name)
	assert.Equal(t, 0.05, tricks[LeprechaunTrickery].Effect)
	assert.Equal(t, 100.0, tricks[LeprechaunTrickery].BaseCost)
}

func TestRefreshCostWhole_RoundsUp(t *testing.T) {
	// 10*1.1 is exactly 11 in float64, so the ceiling does not bite here.
	p := NewSet(FamilyGlitter)[0]
	p.Amount = 1
	p.RefreshCostWhole()
	assert.Equal(t, 11.0, p.Cost)

	p.Amount = 0
	p.RefreshCostWhole()
	assert.Equal(t, 10.0, p.Cost)
}

func TestRefreshCostFractional_KeepsFraction(t *testing.T) {
	p := NewSet(FamilyCloud)[0]
	p.Amount = 1
	p.RefreshCostFractional()
	assert.InDelta(t, 1100.0, p.Cost, 1e-9)
}

func TestRefreshCostDiscounted_Floors(t *testing.T) {
	p := NewSet(FamilyLeprechaun)[LeprechaunNewShoes]
	p.RefreshCostDiscounted(0.5)
	assert.Equal(t, 500.0, p.Cost)

	p.RefreshCostDiscounted(1e-9)
	assert.Equal(t, 0.01, p.Cost)
}
