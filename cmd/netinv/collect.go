package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/netfleet/netinv/pkg/collector"
	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/platform"
	"github.com/netfleet/netinv/pkg/runctx"
)

// runCollection loads the fleet file and fans out one primary intent
// (plus any enabled secondary intents) across every device, recording a
// per-device outcome on the shared RunContext as it goes, per spec.md §7's
// structured summary.
func runCollection(intent platform.Intent, sc collector.SecondaryConfig) ([]collector.DeviceResult, error) {
	if err := requireDevicesFile(); err != nil {
		return nil, err
	}
	devices, err := loadFleet(app.devicesFile)
	if err != nil {
		return nil, exitf(2, "%w", err)
	}

	results := app.engine.Run(devices, app.creds, intent, sc)
	for _, r := range results {
		app.run.RecordDevice(deviceOutcome(r, intent))
	}
	return results, nil
}

// deviceOutcome classifies one DeviceResult into the succeeded/partial/
// failed taxonomy spec.md §7 requires: a hard error is failed (or, for an
// authentication failure, propagated as a run-fatal condition by the
// caller); zero rows where the primary intent needed at least one is
// partial; anything else succeeded. "backup" has no structured rows by
// design, so for it an empty RawOutput (not a zero row count) is what
// marks the intent partial.
func deviceOutcome(r collector.DeviceResult, intent platform.Intent) model.DeviceOutcome {
	out := model.DeviceOutcome{Device: r.Device.Key(), Intents: map[string]model.IntentOutcome{}}

	switch {
	case r.Err != nil:
		out.Errors = append(out.Errors, r.Err.Error())
		if model.Classify(r.Err) == model.CategoryParse {
			out.Intents[string(intent)] = model.OutcomePartial
		} else {
			out.Intents[string(intent)] = model.OutcomeFailed
		}
	case intent == platform.IntentBackup:
		if r.RawOutput == "" {
			out.Errors = append(out.Errors, model.ErrNoRows.Error())
			out.Intents[string(intent)] = model.OutcomePartial
		} else {
			out.Intents[string(intent)] = model.OutcomeSucceeded
		}
	case len(r.PrimaryRows) == 0:
		out.Errors = append(out.Errors, model.ErrNoRows.Error())
		out.Intents[string(intent)] = model.OutcomePartial
	default:
		out.Intents[string(intent)] = model.OutcomeSucceeded
	}
	return out
}

// finishRun appends a history entry for the accumulated RunContext and
// exits the process with the exit code spec.md §6 defines (0 or 1 — a
// configuration/auth/internal failure exits earlier via exitf and never
// reaches here).
func finishRun() {
	summary := app.run.Summary()
	entry := runctx.NewHistoryEntry(app.run, time.Now(), summary)
	if err := app.history.Append(entry); err != nil {
		app.log.WithError(err).Warn("writing history entry failed")
	}
	printRunSummary(summary)
	os.Exit(summary.ExitCode())
}

func printRunSummary(summary model.RunSummary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	printf := func(format string, args ...any) { fmt.Fprintf(w, format+"\n", args...) }
	printf("RUN\t%s", summary.RunID)
	for kind, c := range summary.Counters {
		printf("%s\tcreated=%d updated=%d deleted=%d skipped=%d failed=%d", kind, c.Created, c.Updated, c.Deleted, c.Skipped, c.Failed)
	}
	printf("DEVICE\tINTENTS\tERRORS")
	for _, d := range summary.Devices {
		printf("%s\t%s\t%d", d.Device, intentsSummary(d.Intents), len(d.Errors))
	}
}

func intentsSummary(intents map[string]model.IntentOutcome) string {
	if len(intents) == 0 {
		return "-"
	}
	out := ""
	for intent, outcome := range intents {
		if out != "" {
			out += ","
		}
		out += intent + "=" + string(outcome)
	}
	return out
}
