package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"eks-log-analyzer/internal/usecase"
)

var exitWords = map[string]struct{}{
	"exit": {},
	"quit": {},
	"q":    {},
}

// RunLoop drives the turn-taking question/answer cycle: print the prompt,
// block on a line of input, dispatch, print the answer, repeat.
//
// The scanner is shared with any earlier prompts on the same input so lines
// buffered during read-ahead are not lost between them.
//
// Empty input is skipped without a dispatch. Exit words (case-insensitive)
// and end of input terminate the loop cleanly. Context cancellation
// (interrupt) terminates it with a user-abort error so callers can tell a
// deliberate abort from a failure; a dispatch error is displayed and the
// loop continues — a single bad turn never ends the session.
func RunLoop(ctx context.Context, scanner *bufio.Scanner, out io.Writer, prompt, thinking string, ask func(context.Context, string) (string, error)) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, "\n"+promptStyle.Render(prompt)+" ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\n\nSession ended by user.")
			return usecase.NewUserAbort(ctx.Err())
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out, "\nGoodbye!")
				return nil
			}
			question := strings.TrimSpace(line)
			if question == "" {
				continue
			}
			if _, isExit := exitWords[strings.ToLower(question)]; isExit {
				fmt.Fprintln(out, "\nGoodbye!")
				return nil
			}
			if thinking != "" {
				fmt.Fprintln(out, "\n"+statusStyle.Render(thinking))
			}
			answer, err := ask(ctx, question)
			if err != nil {
				fmt.Fprintln(out, "\n"+errorStyle.Render(fmt.Sprintf("Error: %v", err)))
				continue
			}
			fmt.Fprintf(out, "\n%s\n%s\n", headerStyle.Render("Answer:"), answerStyle.Render(answer))
		}
	}
}
