package cli

import (
	"context"
	"fmt"
)

func (a *App) Status(ctx context.Context) error {
	s, err := a.api.Status(ctx)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s: %s", s.WorkDate, s.Status)
	if s.SessionID != nil {
		line = fmt.Sprintf("%s (session %d)", line, *s.SessionID)
	}
	printlnFn(line)
	return nil
}

func (a *App) Punch(ctx context.Context, action string) error {
	r, err := a.api.Punch(ctx, action)
	if err != nil {
		return err
	}
	printlnFn(r.Message)
	return nil
}
