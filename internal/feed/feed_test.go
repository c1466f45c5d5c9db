package feed_test

import (
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huginn/internal/common"
	"huginn/internal/feed"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReaderNumericCodes(t *testing.T) {
	input := strings.Join([]string{
		"Time,Type,OrderID,Size,Price,Direction",
		"34200.01,1,11,100,585.25,1",
		"34200.02,2,11,40,585.25,1",
		"34200.03,3,12,0,585.50,-1",
		"34200.04,4,13,25,585.00,-1",
		"34200.05,5,14,10,584.75,1",
		"34200.06,7,0,0,,1",
	}, "\n")

	events, err := feed.NewReader(strings.NewReader(input)).ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 6)

	assert.Equal(t, common.NewLimit, events[0].Kind)
	assert.Equal(t, uint64(11), events[0].OrderID)
	assert.Equal(t, uint64(100), events[0].Size)
	assert.True(t, events[0].Price.Equal(dec("585.25")))
	assert.Equal(t, common.Buy, events[0].Side)

	assert.Equal(t, common.Cancel, events[1].Kind)
	assert.Equal(t, common.Delete, events[2].Kind)
	assert.Equal(t, common.Sell, events[2].Side)
	assert.Equal(t, common.Execute, events[3].Kind)
	assert.Equal(t, common.Execute, events[4].Kind, "hidden executions map to the same kind")
	assert.Equal(t, common.Halt, events[5].Kind)
}

func TestReaderNamedTypes(t *testing.T) {
	input := strings.Join([]string{
		"1.0,Limit,1,50,10.00,1",
		"2.0,Market,2,20,,-1",
	}, "\n")

	events, err := feed.NewReader(strings.NewReader(input)).ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, common.NewLimit, events[0].Kind)
	assert.True(t, events[0].Price.Equal(dec("10.00")))

	assert.Equal(t, common.NewMarket, events[1].Kind)
	assert.Equal(t, common.Sell, events[1].Side)
	assert.True(t, events[1].Price.IsZero(), "market orders carry no price")
}

func TestReaderNoHeader(t *testing.T) {
	input := "34200.01,1,11,100,585.25,1\n"

	events, err := feed.NewReader(strings.NewReader(input)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestReaderBadRecord(t *testing.T) {
	input := strings.Join([]string{
		"1.0,9,1,50,10.00,1",
		"2.0,1,2,50,10.00,1",
	}, "\n")

	r := feed.NewReader(strings.NewReader(input))
	_, err := r.Next()
	require.ErrorIs(t, err, feed.ErrBadRecord)
	assert.Contains(t, err.Error(), "line 1")

	// The reader keeps going past a bad row.
	ev, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), ev.OrderID)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderBadDirection(t *testing.T) {
	input := "1.0,1,1,50,10.00,2\n"

	_, err := feed.NewReader(strings.NewReader(input)).Next()
	assert.ErrorIs(t, err, feed.ErrBadRecord)
}

func TestReaderBadNumbers(t *testing.T) {
	for _, input := range []string{
		"1.0,1,abc,50,10.00,1",
		"1.0,1,1,x,10.00,1",
		"1.0,1,1,50,ten,1",
	} {
		_, err := feed.NewReader(strings.NewReader(input)).Next()
		assert.ErrorIs(t, err, feed.ErrBadRecord, input)
	}
}
