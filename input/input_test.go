package input

import (
	"context"
	"errors"
	"github.com/lefinal/meh"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestShouldAbortPrompt(t *testing.T) {
	assert.True(t, shouldAbortPrompt(context.Background(), promptui.ErrInterrupt))
	assert.True(t, shouldAbortPrompt(context.Background(), promptui.ErrEOF))
	assert.True(t, shouldAbortPrompt(context.Background(), errors.New("^C")))
	assert.False(t, shouldAbortPrompt(context.Background(), errors.New("invalid")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, shouldAbortPrompt(ctx, nil), "should abort when context is done")
}

func TestAbortErr(t *testing.T) {
	err := abortErr(context.Background(), promptui.ErrInterrupt)
	assert.Equal(t, meh.ErrBadInput, meh.ErrorCode(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = abortErr(ctx, nil)
	assert.Equal(t, meh.ErrBadInput, meh.ErrorCode(err))
}

func TestCreateErrorMessage(t *testing.T) {
	assert.Equal(t, "invalid value entered", createErrorMessage("invalid value entered", nil, ""))
	assert.Equal(t, "invalid value entered (bad date): 2005", createErrorMessage("invalid value entered", errors.New("bad date"), "2005"))
}

func TestStdinRequestSelectionWithoutOptions(t *testing.T) {
	_, err := (&Stdin{}).RequestSelection(context.Background(), "Select", nil, 0)
	assert.Equal(t, meh.ErrBadInput, meh.ErrorCode(err))
}
