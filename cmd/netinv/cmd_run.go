package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/netfleet/netinv/pkg/model"
)

var runCmd = &cobra.Command{
	Use:   "run <command>",
	Short: "Run an arbitrary command against every device in the fleet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireDevicesFile(); err != nil {
			return err
		}
		devices, err := loadFleet(app.devicesFile)
		if err != nil {
			return exitf(2, "%w", err)
		}

		results := runAdHoc(devices, args[0])
		for _, res := range results {
			outcome := model.DeviceOutcome{Device: res.device.Key(), Intents: map[string]model.IntentOutcome{"run": model.OutcomeSucceeded}}
			if res.err != nil {
				outcome.Intents["run"] = model.OutcomeFailed
				outcome.Errors = []string{res.err.Error()}
				fmt.Printf("=== %s (error: %v) ===\n", res.device.Key(), res.err)
			} else {
				fmt.Printf("=== %s ===\n%s\n", res.device.Key(), res.output)
			}
			app.run.RecordDevice(outcome)
		}

		finishRun()
		return nil
	},
}

type adHocResult struct {
	device model.Device
	output string
	err    error
}

// runAdHoc fans a single ad-hoc command out across devices with the same
// bounded-worker-pool shape as collector.Engine.Run, but without any
// platform/intent lookup or parsing — this is a raw command, not a
// registered one.
func runAdHoc(devices []model.Device, command string) []adHocResult {
	poolSize := app.engineCfg.WorkerPoolSize
	if poolSize <= 0 || poolSize > len(devices) {
		poolSize = len(devices)
	}

	jobs := make(chan model.Device)
	outs := make(chan adHocResult)

	var wg sync.WaitGroup
	wg.Add(poolSize)
	for i := 0; i < poolSize; i++ {
		go func() {
			defer wg.Done()
			for d := range jobs {
				outs <- runAdHocOne(d, command)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, d := range devices {
			jobs <- d
		}
	}()

	go func() {
		wg.Wait()
		close(outs)
	}()

	var results []adHocResult
	for r := range outs {
		results = append(results, r)
	}
	return results
}

func runAdHocOne(device model.Device, command string) adHocResult {
	entry, err := app.registry.Resolve(device.Platform)
	if err != nil {
		return adHocResult{device: device, err: err}
	}
	sess, err := app.engine.Conn.Open(device, app.creds, entry.NoPagerCommand)
	if err != nil {
		return adHocResult{device: device, err: err}
	}
	defer sess.Close()

	out, err := sess.Run(command, app.engine.Conn.CommandDeadline())
	if err != nil {
		return adHocResult{device: device, err: err}
	}
	return adHocResult{device: device, output: out}
}
