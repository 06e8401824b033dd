package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errUsage = errors.New("usage: breaks <session-id> | addbreak <session-id> <from> <to> | editbreak <break-id> <from> <to> | delbreak <break-id> | edithours <session-id> <from> <to>")

func parseID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errUsage
	}
	return id, nil
}

// parseStamp turns the single-token CLI form YYYY-MM-DDTHH:MM:SS into the
// wire form with a space.
func parseStamp(arg string) string {
	return strings.Replace(arg, "T", " ", 1)
}

func parseIDAndBounds(args []string) (int64, string, string, error) {
	id, err := parseID(args)
	if err != nil {
		return 0, "", "", err
	}
	if len(args) < 3 {
		return 0, "", "", errUsage
	}
	return id, parseStamp(args[1]), parseStamp(args[2]), nil
}

func (a *App) Breaks(ctx context.Context, args []string) error {
	sessionID, err := parseID(args)
	if err != nil {
		return err
	}

	list, err := a.api.ListBreaks(ctx, sessionID)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		printlnFn("no breaks")
		return nil
	}
	for _, b := range list {
		end := "(open)"
		if b.BreakEndAt != nil {
			end = *b.BreakEndAt
		}
		printlnFn(fmt.Sprintf("#%d  %s .. %s", b.ID, b.BreakStartAt, end))
	}
	return nil
}

func (a *App) AddBreak(ctx context.Context, args []string) error {
	sessionID, start, end, err := parseIDAndBounds(args)
	if err != nil {
		return err
	}

	id, err := a.api.AddBreak(ctx, sessionID, start, end)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("break added (#%d)", id))
	return nil
}

func (a *App) EditBreak(ctx context.Context, args []string) error {
	breakID, start, end, err := parseIDAndBounds(args)
	if err != nil {
		return err
	}

	msg, err := a.api.UpdateBreak(ctx, breakID, start, end)
	if err != nil {
		return err
	}
	printlnFn(msg)
	return nil
}

func (a *App) DeleteBreak(ctx context.Context, args []string) error {
	breakID, err := parseID(args)
	if err != nil {
		return err
	}

	msg, err := a.api.DeleteBreak(ctx, breakID)
	if err != nil {
		return err
	}
	printlnFn(msg)
	return nil
}

func (a *App) EditHours(ctx context.Context, args []string) error {
	sessionID, start, end, err := parseIDAndBounds(args)
	if err != nil {
		return err
	}

	msg, err := a.api.UpdateSession(ctx, sessionID, start, end)
	if err != nil {
		return err
	}
	printlnFn(msg)
	return nil
}
