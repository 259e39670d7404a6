package acquire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/lmed/internal/instrument"
)

func TestItemsFromUniverse(t *testing.T) {
	u, err := instrument.BuildUniverse(time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), 1)
	require.NoError(t, err)

	items := ItemsFromUniverse(u)
	require.Len(t, items, 3)
	assert.Equal(t, "CMCU0", items[0].RIC)
	assert.Equal(t, "Cash", items[0].Description)
	assert.Equal(t, "CMCU3", items[1].RIC)
	assert.Equal(t, "CMCUN25", items[2].RIC)
}

func TestItemsFromSpreads(t *testing.T) {
	u, err := instrument.BuildUniverse(time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), 1)
	require.NoError(t, err)
	spreads, err := instrument.Combinations(u)
	require.NoError(t, err)

	items := ItemsFromSpreads(spreads)
	require.Len(t, items, 3)
	assert.Equal(t, "CMCU0-3", items[0].RIC)
	assert.Equal(t, "Cash vs 3Month", items[0].Description)
	assert.Equal(t, "CMCU0-N25", items[1].RIC)
	assert.Equal(t, "CMCU3-N25", items[2].RIC)
}

func TestOutcomeKindLabels(t *testing.T) {
	labels := map[OutcomeKind]string{
		SuccessWithTrades: "success_with_trades",
		SuccessNoTrades:   "success_no_trades",
		NoDataAvailable:   "no_data",
		InvalidInstrument: "invalid_instrument",
		TransientFailure:  "transient_error",
		FatalFailure:      "fatal_error",
	}
	for kind, label := range labels {
		assert.Equal(t, label, kind.String())
	}

	assert.True(t, SuccessWithTrades.IsSuccess())
	assert.True(t, SuccessNoTrades.IsSuccess())
	assert.False(t, NoDataAvailable.IsSuccess())
	assert.False(t, FatalFailure.IsSuccess())
}
