package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pet-care-portal/internal/domain/calendar"
	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/httpclient"
)

var (
	eventsURL     string
	eventsToken   string
	eventsUserID  string
	eventsTimeout time.Duration
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Fetch the admin agendas from a running portal",
	Args:  cobra.NoArgs,
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&eventsURL, "url", "http://localhost:8080", "Portal base URL")
	eventsCmd.Flags().StringVar(&eventsToken, "token", "", "Access token (Bearer)")
	eventsCmd.Flags().StringVar(&eventsUserID, "debug-user", "", "User id for servers running in dev mode")
	eventsCmd.Flags().DurationVar(&eventsTimeout, "timeout", httpclient.DefaultTimeout, "Request timeout")
}

func runEvents(cmd *cobra.Command, _ []string) error {
	c, err := httpclient.NewWithBaseURL(eventsURL, eventsTimeout)
	if err != nil {
		return err
	}
	c.Headers = map[string]string{}
	if t := strings.TrimSpace(eventsToken); t != "" {
		c.Headers["Authorization"] = "Bearer " + t
	}
	if uid := strings.TrimSpace(eventsUserID); uid != "" {
		c.Headers[middleware.DebugUserHeader] = uid
	}

	agendas, err := calendar.FetchEvents(cmd.Context(), c)
	if err != nil {
		// el mensaje del backend se muestra tal cual
		var envErr *httpclient.EnvelopeError
		if errors.As(err, &envErr) {
			return envErr
		}
		return fmt.Errorf("fetch agendas: %w", err)
	}
	return render(cmd.OutOrStdout(), outputFormat, agendas)
}
