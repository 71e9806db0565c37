// cmd/assistant/main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/javajoker/marketflow-backend/internal/assistant"
)

const (
	urlFlag     = "url"
	timeoutFlag = "timeout"
	systemFlag  = "system"
)

func main() {
	baseURL := pflag.StringP(urlFlag, "u", "http://localhost:3000", "MarketFlow server base URL")
	timeout := pflag.DurationP(timeoutFlag, "t", 90*time.Second, "per-message relay timeout")
	system := pflag.StringP(systemFlag, "s", assistant.SalesSystemPrompt, "system prompt sent with each message")
	pflag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	widget := assistant.NewWidget(*baseURL,
		assistant.WithHTTPClient(&http.Client{Timeout: *timeout}),
		assistant.WithSystemPrompt(*system),
	)

	if err := run(ctx, widget, os.Stdin, os.Stdout); err != nil {
		logrus.Fatal("Assistant stopped: ", err)
	}
}

// run opens the widget and relays each input line until /quit, EOF or ctx
// is done. /toggle opens or closes the widget and /history prints the
// transcript.
func run(ctx context.Context, widget *assistant.Widget, in io.Reader, out io.Writer) error {
	for _, msg := range widget.Transcript() {
		printMessage(out, msg)
	}
	fmt.Fprintf(out, "[%s]\n", widget.Toggle())

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/toggle":
			fmt.Fprintf(out, "[%s]\n", widget.Toggle())
			continue
		case "/history":
			for _, msg := range widget.Transcript() {
				printMessage(out, msg)
			}
			continue
		}

		msg, err := widget.Send(ctx, line)
		switch {
		case errors.Is(err, assistant.ErrClosed):
			fmt.Fprintln(out, "[closed] type /toggle to open the assistant")
			continue
		case errors.Is(err, assistant.ErrBusy):
			fmt.Fprintln(out, "[awaiting_reply] wait for the current reply")
			continue
		case err != nil:
			logrus.WithError(err).Warn("Chat relay request failed")
		}
		printMessage(out, msg)
	}
	return scanner.Err()
}

func printMessage(out io.Writer, msg assistant.Message) {
	fmt.Fprintf(out, "%s> %s\n", msg.Role, msg.Text)
}
