package meme

import (
	"context"
	"testing"

	sharedmeme "github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionTableCoversEveryAction(t *testing.T) {
	table := (&Module{}).buildActionTable()
	assert.Nil(t, table[sharedmeme.ActionNone])
	for a := sharedmeme.ActionNone + 1; int(a) < sharedmeme.ActionCount; a++ {
		assert.NotNil(t, table[a], "no handler for %s", a)
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	var table actionTable
	called := false
	table[sharedmeme.ActionVoteUp] = func(context.Context, *event) { called = true }

	assert.False(t, table.dispatch(context.Background(), sharedmeme.ActionNone, nil))
	assert.False(t, table.dispatch(context.Background(), sharedmeme.Action(200), nil))
	assert.True(t, table.dispatch(context.Background(), sharedmeme.ActionVoteUp, nil))
	assert.True(t, called)
}

func TestParseUserIDs(t *testing.T) {
	ids, err := parseUserIDs("12, <@34>\n<@!56>  78")
	require.NoError(t, err)
	assert.Equal(t, []int64{12, 34, 56, 78}, ids)

	ids, err = parseUserIDs("   ")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = parseUserIDs("12 bob")
	assert.Error(t, err)
}

func TestSbanReport(t *testing.T) {
	assert.Equal(t, "Ban lifted.", sbanReport([]int64{1}, 1))
	assert.Equal(t, "Lifted 3 bans.", sbanReport([]int64{1, 2, 3}, 3))
	assert.Equal(t, "Lifted 1 of 3 bans. User 2 was not banned, stopped there.", sbanReport([]int64{1, 2, 3}, 1))
}

func TestSettingsText(t *testing.T) {
	assert.Equal(t, msgAlreadyCredited, settingsText(true, true))
	assert.Equal(t, msgNowCredited, settingsText(false, true))
	assert.Equal(t, msgNowAnonymous, settingsText(true, false))
	assert.Equal(t, msgAlreadyAnonymous, settingsText(false, false))
}
