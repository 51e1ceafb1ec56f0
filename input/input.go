// Package input requests values from the user in the terminal.
package input

import (
	"context"
	"errors"
	"fmt"
	"github.com/lefinal/meh"
	"github.com/manifoldco/promptui"
	"strings"
)

// Input requests values from the user. All methods return a bad-input error if
// the user aborts or the context is done.
type Input interface {
	// RequestConfirm prompts the user with the given one for confirmation. If no
	// input was provided, the given default value will be returned.
	RequestConfirm(ctx context.Context, prompt string, defaultValue bool) (bool, error)
	// Request prompts the user for free text. The current value is offered for
	// editing. If check is not nil, input is only accepted once check passes.
	Request(ctx context.Context, prompt string, current string, check func(s string) error) (string, error)
	// RequestSelection prompts the user to select one of the given labels. The
	// cursor starts at the given index. It returns the selected index.
	RequestSelection(ctx context.Context, prompt string, labels []string, cursor int) (int, error)
}

// Stdin is an Input reading from the terminal.
type Stdin struct {
}

func shouldAbortPrompt(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) ||
		(err != nil && err.Error() == "^C")
}

func abortErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return meh.NewBadInputErrFromErr(ctx.Err(), "canceled", nil)
	}
	return meh.NewBadInputErrFromErr(err, "canceled", nil)
}

func createErrorMessage(message string, err error, value string) string {
	errDescription := message
	if err != nil && err.Error() != "" {
		errDescription += fmt.Sprintf(" (%s)", err.Error())
	}
	if value != "" {
		errDescription += fmt.Sprintf(": %s", value)
	}
	return errDescription
}

// RequestConfirm asks for y/n.
func (input *Stdin) RequestConfirm(ctx context.Context, prompt string, defaultValue bool) (bool, error) {
	defaultValueStr := "n"
	if defaultValue {
		defaultValueStr = "y"
	}
	for {
		myPrompt := promptui.Prompt{
			Label:     prompt,
			Default:   defaultValueStr,
			IsConfirm: true,
		}
		resultStr, err := myPrompt.Run()
		// promptui reports a declined confirmation as error with empty message.
		if err == nil || err.Error() == "" {
			switch strings.ToLower(resultStr) {
			case "y":
				return true, nil
			case "n":
				return false, nil
			case "":
				return defaultValue, nil
			}
		}
		if shouldAbortPrompt(ctx, err) {
			return false, abortErr(ctx, err)
		}
		fmt.Println(createErrorMessage("invalid value entered", err, resultStr))
	}
}

// Request asks for free text with the current value as editable default.
func (input *Stdin) Request(ctx context.Context, prompt string, current string, check func(s string) error) (string, error) {
	for {
		myPrompt := promptui.Prompt{
			Label:     prompt,
			Default:   current,
			AllowEdit: true,
			Validate:  check,
		}
		result, err := myPrompt.Run()
		if err == nil {
			return result, nil
		}
		if shouldAbortPrompt(ctx, err) {
			return "", abortErr(ctx, err)
		}
		fmt.Println(createErrorMessage("invalid value entered", err, result))
	}
}

// RequestSelection shows a selection list.
func (input *Stdin) RequestSelection(ctx context.Context, prompt string, labels []string, cursor int) (int, error) {
	if len(labels) == 0 {
		return 0, meh.NewBadInputErr("no options to select from", meh.Details{"prompt": prompt})
	}
	if cursor < 0 || cursor >= len(labels) {
		cursor = 0
	}
	for {
		myPrompt := promptui.Select{
			Label:     prompt,
			Items:     labels,
			CursorPos: cursor,
			Size:      len(labels),
		}
		resultIndex, result, err := myPrompt.Run()
		if err == nil {
			return resultIndex, nil
		}
		if shouldAbortPrompt(ctx, err) {
			return 0, abortErr(ctx, err)
		}
		fmt.Println(createErrorMessage("invalid value entered", err, result))
	}
}
