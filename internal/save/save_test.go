package save

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g1tyx/fairies-and-unicorns/internal/config"
	"github.com/g1tyx/fairies-and-unicorns/internal/game"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testState(t *testing.T) *game.State {
	t.Helper()
	st := game.NewState(config.Default(), testNow)
	st.Glitter = 1234.5
	st.GlitterUnlocked = true
	st.Fairies.Amount = 42
	st.Fairies.RefreshCost()
	st.Rainbows.Amount = 3
	st.Rainbows.MakingFairies = false
	st.ZombieFairies.Autobuyer.Enabled = true
	st.ZombieFairies.Autobuyer.KeepMinimum = 25
	st.GlitterProducers[1].Amount = 4
	st.Ascension.RoyalEssence = 99
	st.Ascension.Prestige["royal-speed"] = 2
	st.UpgradesSeed = 123456
	st.Upgrades = []game.Card{{Name: "Fairy Power", Description: "x", Cost: 5, Currency: "fairies"}}
	return st
}

func TestEncodeDecodeMerge_RoundTrip(t *testing.T) {
	st := testState(t)

	b, err := Encode(st)
	require.NoError(t, err)
	d, err := Decode(b)
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	loaded, err := d.Merge(config.Default(), later)
	require.NoError(t, err)

	assert.Equal(t, 1234.5, loaded.Glitter)
	assert.True(t, loaded.GlitterUnlocked)
	assert.Equal(t, 42.0, loaded.Fairies.Amount)
	assert.Equal(t, st.Fairies.Cost, loaded.Fairies.Cost)
	assert.Equal(t, 3.0, loaded.Rainbows.Amount)
	assert.False(t, loaded.Rainbows.MakingFairies)
	assert.True(t, loaded.ZombieFairies.Autobuyer.Enabled)
	assert.Equal(t, 25.0, loaded.ZombieFairies.Autobuyer.KeepMinimum)
	assert.Equal(t, 4.0, loaded.GlitterProducers[1].Amount)
	assert.Equal(t, "Bard Fairies", loaded.GlitterProducers[1].Name)
	assert.Equal(t, 99.0, loaded.Ascension.RoyalEssence)
	assert.Equal(t, 2, loaded.Ascension.Prestige["royal-speed"])
	assert.Equal(t, 123456.0, loaded.UpgradesSeed)
	require.Len(t, loaded.Upgrades, 1)
	assert.Equal(t, "Fairy Power", loaded.Upgrades[0].Name)
	assert.Equal(t, later, loaded.LastSaveTime)
}

func TestMerge_OldDocumentFallsBackToDefaults(t *testing.T) {
	d, err := Decode([]byte(`{"fairies":{"amount":3.7},"unicorns":{"amount":1}}`))
	require.NoError(t, err)

	st, err := d.Merge(config.Default(), testNow)
	require.NoError(t, err)

	// Fractional amounts floor; prices recompute from what survived.
	assert.Equal(t, 3.0, st.Fairies.Amount)
	assert.Equal(t, 14.0, st.Fairies.Cost) // ceil(10 * 1.1^3)
	assert.Equal(t, 111.0, st.Unicorns.Cost)

	// Everything the document lacks keeps its defaults.
	assert.Equal(t, 1.0, st.Queen.Speed)
	assert.Equal(t, config.Default().QueenMaxDistance, st.Queen.MaxDistance)
	assert.Equal(t, 10.0, st.ZombieFairies.Autobuyer.KeepMinimum)
	assert.Equal(t, 5.0, st.UpgradeCosts["fairies"])
	assert.Equal(t, 1, st.BulkModes.Glitter)
	assert.NotZero(t, st.UpgradesSeed)
}

func TestMerge_ExtraProducerRowsAreIgnored(t *testing.T) {
	d, err := Decode([]byte(`{
		"fairies": {"amount": 0},
		"unicorns": {"amount": 0},
		"glitter_producers": [{"amount":1},{"amount":2},{"amount":3},{"amount":4},{"amount":99}]
	}`))
	require.NoError(t, err)

	st, err := d.Merge(config.Default(), testNow)
	require.NoError(t, err)

	assert.Len(t, st.GlitterProducers, 4)
	assert.Equal(t, 4.0, st.GlitterProducers[3].Amount)
	assert.Equal(t, 10.0, st.GlitterProducers[0].BaseCost)
}

func TestDecode_RejectsDocumentsWithoutCreatures(t *testing.T) {
	_, err := Decode([]byte(`{"glitter": 5}`))
	assert.ErrorIs(t, err, ErrInvalidSave)

	_, err = Decode([]byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidSave)
}

func TestDecodeImport_ExportEnvelopeRoundTrip(t *testing.T) {
	st := testState(t)

	encoded, err := EncodeExport(st, testNow)
	require.NoError(t, err)

	d, err := DecodeImport(encoded)
	require.NoError(t, err)

	loaded, err := d.Merge(config.Default(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 42.0, loaded.Fairies.Amount)
	assert.Equal(t, 99.0, loaded.Ascension.RoyalEssence)
}

func TestDecodeImport_AcceptsBareJSON(t *testing.T) {
	d, err := DecodeImport(`{"fairies":{"amount":7},"unicorns":{"amount":0}}`)
	require.NoError(t, err)

	st, err := d.Merge(config.Default(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 7.0, st.Fairies.Amount)
}

func TestOfflineSeconds(t *testing.T) {
	var d Doc
	assert.Equal(t, 0.0, d.OfflineSeconds(testNow))

	saved := testNow.Add(-90 * time.Second)
	d.LastSaveTime = &saved
	assert.Equal(t, 90.0, d.OfflineSeconds(testNow))
	assert.Equal(t, 0.0, d.OfflineSeconds(saved.Add(-time.Minute)))
}

func TestStore_SaveAndLoad(t *testing.T) {
	store, err := NewStore(t.TempDir(), "save.json")
	require.NoError(t, err)

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	st := testState(t)
	require.NoError(t, store.Save(st))

	d, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)

	loaded, err := d.Merge(config.Default(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 42.0, loaded.Fairies.Amount)
	assert.Equal(t, 25.0, loaded.ZombieFairies.Autobuyer.KeepMinimum)
}
